package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/controllers"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

func loggedIn(c *fiber.Ctx) bool {
	b, ok := c.Locals(usercontext.KeyFromProtected).(bool)
	return ok && b
}

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !loggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireRole lets only the given roles through. Anyone else is sent to the
// home page of their own role.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !loggedIn(c) {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		uc := usercontext.GetUserContext(c)
		if !slices.Contains(roles, uc.Role) {
			return c.Redirect(uc.HomePath(), fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !loggedIn(c) {
		return controllers.Fail(c, fiber.StatusUnauthorized, controllers.CodeUnauthorized, "login required")
	}
	return c.Next()
}

// RequireAPIRole is the JSON counterpart of RequireRole.
func RequireAPIRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !loggedIn(c) {
			return controllers.Fail(c, fiber.StatusUnauthorized, controllers.CodeUnauthorized, "login required")
		}
		if !slices.Contains(roles, usercontext.GetUserContext(c).Role) {
			return controllers.Fail(c, fiber.StatusForbidden, controllers.CodeForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RedirectIfAuthenticated keeps signed-in users off the guest pages.
func RedirectIfAuthenticated(c *fiber.Ctx) error {
	if loggedIn(c) {
		return c.Redirect(usercontext.GetUserContext(c).HomePath(), fiber.StatusSeeOther)
	}
	return c.Next()
}
