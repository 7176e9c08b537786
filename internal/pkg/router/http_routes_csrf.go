package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/rentcourt/ftpr/app/controllers"
	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/env"
	"github.com/rentcourt/ftpr/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Path(), "/webhooks/")
		},
	}

	// Brute-force guard for the credential forms, per client IP
	authLimiter := limiter.New(limiter.Config{
		Max:          env.GetInt("AUTH_RATE_LIMIT", 10),
		Expiration:   time.Minute,
		LimitReached: controllers.HandleFlashAuthRateLimit,
	})

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", controllers.HandleStart)

	// Auth
	group.Get("/login", middleware.RedirectIfAuthenticated, controllers.HandleAuthLogin)
	group.Post("/login", authLimiter, middleware.RedirectIfAuthenticated, controllers.HandleAuthLogin)
	group.Get("/signup", middleware.RedirectIfAuthenticated, controllers.HandleAuthSignup)
	group.Post("/signup", authLimiter, middleware.RedirectIfAuthenticated, controllers.HandleAuthSignup)
	group.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
	group.Get("/auth/forgot-password", controllers.HandleForgotPassword)
	group.Post("/auth/forgot-password", authLimiter, controllers.HandleForgotPassword)
	group.Get("/auth/confirm", controllers.HandleAuthConfirm)
	group.Get("/auth/reset-password", controllers.HandleResetPassword)
	group.Post("/auth/reset-password", controllers.HandleResetPassword)
	group.Get("/auth/auth-code-error", controllers.HandleAuthCodeError)

	// Portals
	landlord := middleware.RequireRole(models.ROLE_LANDLORD, models.ROLE_ADMIN)
	admin := middleware.RequireRole(models.ROLE_ADMIN)
	contractor := middleware.RequireRole(models.ROLE_CONTRACTOR)
	group.Get("/dashboard", landlord, controllers.HandlePortal)
	group.Get("/dashboard/*", landlord, controllers.HandlePortal)
	group.Get("/admin", admin, controllers.HandlePortal)
	group.Get("/admin/*", admin, controllers.HandlePortal)
	group.Get("/contractor", contractor, controllers.HandlePortal)
	group.Get("/contractor/*", contractor, controllers.HandlePortal)
}
