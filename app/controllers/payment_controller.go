package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/internal/pkg/payments"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
)

// HandlePaymentWebhook receives payment provider events. It sits outside
// CSRF protection; the signature header authenticates the sender.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)
	result, err := GetServices().Payments.HandleWebhook(c.UserContext(), body, c.Get(payments.SignatureHeader))
	if err != nil {
		return FailError(c, err)
	}
	if !result.Duplicate && !result.Ignored {
		statistics.Invalidate()
	}
	return OK(c, result)
}
