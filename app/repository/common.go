package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a conditional write matched no row because the
	// record changed underneath the caller.
	ErrConflict         = errors.New("record was modified concurrently")
	ErrInvalidReference = errors.New("referenced record does not belong to this landlord")
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// ListOptions controls pagination and filtering for list endpoints.
type ListOptions struct {
	Offset int
	Limit  int
	Search string
	Role   string
	Status string
}

// Normalized clamps pagination to the bounds every list query uses.
func (o ListOptions) Normalized() ListOptions {
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
	o.Search = strings.TrimSpace(o.Search)
	return o
}

// Scope restricts landlord-owned records to the acting user. Admins see
// everything; a zero Scope sees nothing.
type Scope struct {
	UserID string
	Role   string
}

func NewScope(userID, role string) Scope {
	return Scope{UserID: userID, Role: role}
}

// AdminScope is used by background work acting on behalf of the system.
func AdminScope() Scope {
	return Scope{Role: models.ROLE_ADMIN}
}

func (s Scope) IsAdmin() bool {
	return s.Role == models.ROLE_ADMIN
}

func (s Scope) apply(db *gorm.DB, column string) *gorm.DB {
	if s.IsAdmin() {
		return db
	}
	return db.Where(column+" = ?", s.UserID)
}

// searchLike adds a case-insensitive substring match over columns.
// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func searchLike(db *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		args[i] = pattern
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
