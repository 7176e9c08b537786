package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
)

// HandleFlashAuthRateLimit is the limiter's LimitReached handler for the
// sign-in forms. It sends the user back to the form they posted.
func HandleFlashAuthRateLimit(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "error",
		"message": "Too many attempts. Please wait a minute and try again.",
	}
	flash.WithError(c, fm)
	return c.Redirect(c.Path(), fiber.StatusSeeOther)
}
