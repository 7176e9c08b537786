package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/models"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// IsAdmin reports whether the user carries the admin role.
func (u UserContext) IsAdmin() bool {
	return u.IsLoggedIn && u.Role == models.ROLE_ADMIN
}

// IsLandlord reports whether the user carries the landlord role.
func (u UserContext) IsLandlord() bool {
	return u.IsLoggedIn && u.Role == models.ROLE_LANDLORD
}

// IsContractor reports whether the user carries the contractor role.
func (u UserContext) IsContractor() bool {
	return u.IsLoggedIn && u.Role == models.ROLE_CONTRACTOR
}

// HomePath is where the user lands after login or a role mismatch.
func (u UserContext) HomePath() string {
	return HomePathFor(u.Role)
}

// HomePathFor maps a role to its portal root.
func HomePathFor(role string) string {
	switch role {
	case models.ROLE_ADMIN:
		return "/admin"
	case models.ROLE_CONTRACTOR:
		return "/contractor"
	default:
		return "/dashboard"
	}
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(LocalsKey).(UserContext); ok {
		return ctx
	}
	return UserContext{}
}

// SetUserContext stores uc on the request.
func SetUserContext(c *fiber.Ctx, uc UserContext) {
	c.Locals(LocalsKey, uc)
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or "" if not logged in
func GetUserID(c *fiber.Ctx) string {
	return GetUserContext(c).UserID
}
