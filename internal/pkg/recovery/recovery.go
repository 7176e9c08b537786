// Package recovery issues and verifies password recovery links.
package recovery

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentcourt/ftpr/app/models"
)

const (
	purpose = "recovery"
	// TTL is how long a recovery link stays valid.
	TTL = time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired recovery link")

type claims struct {
	Purpose string `json:"purpose"`
	// PasswordVersion pins the token to the password it was issued for, so
	// a link stops working once it has been used.
	PasswordVersion int64 `json:"pwd"`
	jwt.RegisteredClaims
}

// Issuer signs recovery tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("recovery secret is empty")
	}
	return &Issuer{secret: []byte(secret), now: time.Now}, nil
}

// Issue returns a signed token for account.
func (i *Issuer) Issue(account *models.Account) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Purpose:         purpose,
		PasswordVersion: account.PasswordVersion(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	})
	return token.SignedString(i.secret)
}

// Link builds the confirm URL the email points at.
func (i *Issuer) Link(baseURL string, account *models.Account) (string, error) {
	token, err := i.Issue(account)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/auth/confirm?token=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(token)), nil
}

// Subject verifies the signature, expiry and purpose and returns the
// account id without checking the password version.
func (i *Issuer) Subject(token string) (string, int64, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || c.Purpose != purpose || c.Subject == "" {
		return "", 0, ErrInvalidToken
	}
	return c.Subject, c.PasswordVersion, nil
}

// Verify checks token against the account it names. lookup loads the
// account by id.
func (i *Issuer) Verify(token string, lookup func(id string) (*models.Account, error)) (*models.Account, error) {
	id, version, err := i.Subject(token)
	if err != nil {
		return nil, err
	}
	account, err := lookup(id)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if account.PasswordVersion() != version {
		return nil, ErrInvalidToken
	}
	return account, nil
}
