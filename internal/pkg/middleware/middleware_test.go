package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/cache"
	"github.com/rentcourt/ftpr/internal/pkg/session"
	"github.com/rentcourt/ftpr/internal/pkg/testutil"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

// newSessionApp signs requests in through a /as/:role route that writes the
// session the way the login handler does.
func newSessionApp(t *testing.T) *fiber.App {
	t.Helper()
	rdb, _ := testutil.NewRedis(t)
	cache.SetClient(rdb)
	store := session.NewMemorySessionStore()

	app := fiber.New()
	app.Get("/as/:role", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		require.NoError(t, err)
		sess.Set(usercontext.KeyUserID, "u-"+c.Params("role"))
		sess.Set(usercontext.KeyUsername, c.Params("role"))
		sess.Set(usercontext.KeyRole, c.Params("role"))
		sess.Set(usercontext.KeySignedInAt, time.Now().UnixMicro())
		require.NoError(t, sess.Save())
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Use(UserContextMiddleware)
	return app
}

func signIn(t *testing.T, app *fiber.App, role string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/as/"+role, nil), -1)
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func get(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUserContextFromSession(t *testing.T) {
	app := newSessionApp(t)
	var seen usercontext.UserContext
	app.Get("/whoami", func(c *fiber.Ctx) error {
		seen = usercontext.GetUserContext(c)
		return c.SendStatus(fiber.StatusOK)
	})

	get(t, app, "/whoami", nil)
	assert.False(t, seen.IsLoggedIn)

	get(t, app, "/whoami", signIn(t, app, models.ROLE_CONTRACTOR))
	assert.True(t, seen.IsLoggedIn)
	assert.True(t, seen.IsContractor())
	assert.Equal(t, "u-contractor", seen.UserID)
}

func TestRequireRoleRedirectsToOwnHome(t *testing.T) {
	app := newSessionApp(t)
	app.Get("/admin", RequireRole(models.ROLE_ADMIN), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp := get(t, app, "/admin", nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	resp = get(t, app, "/admin", signIn(t, app, models.ROLE_LANDLORD))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get(fiber.HeaderLocation))

	resp = get(t, app, "/admin", signIn(t, app, models.ROLE_ADMIN))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAPIRole(t *testing.T) {
	app := newSessionApp(t)
	app.Get("/api/jobs", RequireAPIRole(models.ROLE_CONTRACTOR), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/jobs", nil).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/api/jobs", signIn(t, app, models.ROLE_ADMIN)).StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/jobs", signIn(t, app, models.ROLE_CONTRACTOR)).StatusCode)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	app := newSessionApp(t)
	app.Get("/login", RedirectIfAuthenticated, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	assert.Equal(t, fiber.StatusOK, get(t, app, "/login", nil).StatusCode)
	resp := get(t, app, "/login", signIn(t, app, models.ROLE_ADMIN))
	assert.Equal(t, "/admin", resp.Header.Get(fiber.HeaderLocation))
}

func TestRevokedSessionIsSignedOut(t *testing.T) {
	app := newSessionApp(t)
	app.Get("/api/admin", RequireAPIRole(models.ROLE_ADMIN), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin", RequireRole(models.ROLE_ADMIN), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	old := signIn(t, app, models.ROLE_ADMIN)
	require.Equal(t, fiber.StatusOK, get(t, app, "/api/admin", old).StatusCode)

	require.NoError(t, session.RevokeUser("u-admin"))

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/admin", old).StatusCode)
	resp := get(t, app, "/admin", old)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	// Signing in again after the revocation works.
	time.Sleep(time.Millisecond)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/admin", signIn(t, app, models.ROLE_ADMIN)).StatusCode)
}

func TestRevocationOnlyAffectsThatUser(t *testing.T) {
	app := newSessionApp(t)
	app.Get("/api/me", RequireAPIRole(models.ROLE_LANDLORD, models.ROLE_CONTRACTOR), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	landlord := signIn(t, app, models.ROLE_LANDLORD)
	contractor := signIn(t, app, models.ROLE_CONTRACTOR)
	require.NoError(t, session.RevokeUser("u-landlord"))

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/me", landlord).StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/me", contractor).StatusCode)
}
