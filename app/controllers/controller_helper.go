package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/hcaptcha"
	"github.com/rentcourt/ftpr/internal/pkg/session"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
	"github.com/rentcourt/ftpr/internal/pkg/viewmodel"
)

const mainLayout = "layouts/main"

// revokeSessions signs userID out everywhere. The next request from any of
// their sessions is treated as anonymous.
func revokeSessions(userID string) error {
	if err := session.RevokeUser(userID); err != nil {
		log.Errorf("[Auth] Failed to revoke sessions for %s: %v", userID, err)
		return err
	}
	return nil
}

func isLoggedIn(c *fiber.Ctx) bool {
	b, ok := c.Locals(usercontext.KeyFromProtected).(bool)
	return ok && b
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

// layoutFor fills the page shell for the current request.
func layoutFor(c *fiber.Ctx, page, title string) viewmodel.Layout {
	uc := usercontext.GetUserContext(c)
	l := viewmodel.Layout{
		Page:            page,
		Title:           "FTPR Portal | " + title,
		FromProtected:   isLoggedIn(c),
		Msg:             flash.Get(c),
		Username:        uc.Username,
		Role:            uc.Role,
		CSRFToken:       csrfToken(c),
		HCaptchaSitekey: hcaptcha.Sitekey(),
	}
	if uc.IsLoggedIn {
		l.Navigation = viewmodel.NavigationFor(uc.Role)
	}
	if t, ok := l.Msg["type"].(string); ok && t == "error" {
		l.IsError = true
	}
	return l
}

func render(c *fiber.Ctx, view string, layout viewmodel.Layout, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Layout"] = layout
	return c.Render(view, data, mainLayout)
}

// flashError redirects to path with an error message.
func flashError(c *fiber.Ctx, path, message string) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect(path)
}

func flashSuccess(c *fiber.Ctx, path, message string) error {
	fm := fiber.Map{
		"type":    "success",
		"message": message,
	}
	return flash.WithSuccess(c, fm).Redirect(path)
}

// validationMessage turns form errors into one flash line.
func validationMessage(err error) string {
	return "Please check " + strings.TrimPrefix(err.Error(), "validation failed: ")
}

func scopeOf(uc usercontext.UserContext) repository.Scope {
	return repository.NewScope(uc.UserID, uc.Role)
}
