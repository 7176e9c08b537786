package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Account is the authentication identity. The sign-up metadata columns are
// what a Profile gets provisioned from on first sign-in.
type Account struct {
	ID                string     `gorm:"type:char(36);primaryKey" json:"id"`
	Email             string     `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,max=200"`
	Password          string     `gorm:"type:text" json:"-" validate:"required"`
	MetadataRole      string     `gorm:"type:varchar(20);default:'landlord'" json:"metadata_role" validate:"oneof=admin landlord contractor"`
	MetadataUsername  string     `gorm:"type:varchar(150)" json:"metadata_username"`
	MetadataFullName  string     `gorm:"type:varchar(200)" json:"metadata_full_name"`
	LastSignInAt      *time.Time `gorm:"type:timestamp;default:null" json:"last_sign_in_at"`
	PasswordChangedAt *time.Time `gorm:"type:timestamp(6);default:null" json:"-"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName keeps auth identities apart from profiles.
func (Account) TableName() string {
	return "auth_users"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (a *Account) Validate() error {
	return validator.New().Struct(a)
}

// NewAccount hashes the password and fills the sign-up metadata.
func NewAccount(email, password, role, username, fullName string) (*Account, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &Account{
		Email:            email,
		Password:         pw,
		MetadataRole:     role,
		MetadataUsername: username,
		MetadataFullName: fullName,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies the provided password against the stored hash
func (a *Account) CheckPassword(password string) bool {
	return CheckPasswordHash(password, a.Password)
}

// SetPassword hashes the new password and stamps PasswordChangedAt, which
// invalidates outstanding recovery links.
func (a *Account) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	a.Password = hashed
	now := time.Now()
	a.PasswordChangedAt = &now
	return nil
}

// PasswordVersion is bound into recovery tokens.
func (a *Account) PasswordVersion() int64 {
	if a.PasswordChangedAt == nil {
		return 0
	}
	return a.PasswordChangedAt.UnixMicro()
}
