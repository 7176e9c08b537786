package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/forms"
	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/casework"
	"github.com/rentcourt/ftpr/internal/pkg/contractorjobs"
	"github.com/rentcourt/ftpr/internal/pkg/documents"
	"github.com/rentcourt/ftpr/internal/pkg/payments"
)

// Error codes carried in the API envelope.
const (
	CodeBadRequest        = "bad_request"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeValidation        = "validation_failed"
	CodeConflict          = "conflict"
	CodeInvalidTransition = "invalid_transition"
	CodeLocked            = "locked"
	CodeInvalidSignature  = "invalid_signature"
	CodeInternal          = "internal_error"
)

// APIError is the error half of the envelope.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Envelope is the shape of every JSON API response. Exactly one of Data and
// Error is set.
type Envelope struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// ListPage wraps list payloads with the total row count.
type ListPage struct {
	Items  any   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Data: data})
}

func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Data: data})
}

// Fail writes an error envelope.
func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Envelope{Error: &APIError{Code: code, Message: message}})
}

// FailValidation writes a 422 with per-field messages.
func FailValidation(c *fiber.Ctx, fields forms.ValidationErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{Error: &APIError{
		Code:    CodeValidation,
		Message: "Please correct the highlighted fields.",
		Fields:  fields,
	}})
}

// FailError maps domain errors to their HTTP status. Anything unknown is
// logged and reported as a generic 500.
func FailError(c *fiber.Ctx, err error) error {
	if fields, ok := forms.AsValidationErrors(err); ok {
		return FailValidation(c, fields)
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return Fail(c, fiber.StatusNotFound, CodeNotFound, "Record not found.")
	case errors.Is(err, repository.ErrInvalidReference):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{Error: &APIError{
			Code:    CodeValidation,
			Message: err.Error(),
			Fields:  map[string]string{"property_id": "must be one of your properties with this tenant"},
		}})
	case errors.Is(err, models.ErrInvalidTransition):
		return Fail(c, fiber.StatusConflict, CodeInvalidTransition, err.Error())
	case errors.Is(err, repository.ErrConflict):
		return Fail(c, fiber.StatusConflict, CodeConflict, "This record was changed by someone else. Reload and try again.")
	case errors.Is(err, models.ErrCaseLocked), errors.Is(err, models.ErrCountyLocked):
		return Fail(c, fiber.StatusConflict, CodeLocked, err.Error())
	case errors.Is(err, casework.ErrForbidden), errors.Is(err, contractorjobs.ErrForbidden):
		return Fail(c, fiber.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, contractorjobs.ErrNotContractor):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{Error: &APIError{
			Code:    CodeValidation,
			Message: err.Error(),
			Fields:  map[string]string{"contractor_id": "must be a contractor"},
		}})
	case errors.Is(err, documents.ErrUnknownTemplate):
		return Fail(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, payments.ErrMissingSignature),
		errors.Is(err, payments.ErrInvalidSignature),
		errors.Is(err, payments.ErrSignatureExpired):
		return Fail(c, fiber.StatusBadRequest, CodeInvalidSignature, err.Error())
	case errors.Is(err, ErrMalformedBody):
		return Fail(c, fiber.StatusBadRequest, CodeBadRequest, "Request body could not be parsed.")
	case errors.Is(err, payments.ErrInvalidPayload):
		return Fail(c, fiber.StatusBadRequest, CodeBadRequest, err.Error())
	}
	log.Errorf("[API] %s %s: %v", c.Method(), c.Path(), err)
	return Fail(c, fiber.StatusInternalServerError, CodeInternal, "Something went wrong. Please try again.")
}

// ErrMalformedBody is returned by bindForm when the request body cannot be
// decoded into the form.
var ErrMalformedBody = errors.New("request body could not be parsed")

// bindForm parses the request body into form. JSON and form posts are both
// accepted.
func bindForm(c *fiber.Ctx, form any) error {
	if err := c.BodyParser(form); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

func listOptions(c *fiber.Ctx) repository.ListOptions {
	return repository.ListOptions{
		Offset: queryInt(c, "offset", 0),
		Limit:  queryInt(c, "limit", 50),
		Search: c.Query("q"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func page(items any, total int64, opts repository.ListOptions) ListPage {
	opts = opts.Normalized()
	return ListPage{Items: items, Total: total, Offset: opts.Offset, Limit: opts.Limit}
}
