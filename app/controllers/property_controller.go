package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/forms"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

func HandleListProperties(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	opts := listOptions(c)
	items, total, err := GetServices().Repos.Property.List(scopeOf(uc), opts)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, page(items, total, opts))
}

func HandleCreateProperty(c *fiber.Ctx) error {
	var form forms.PropertyForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}

	uc := usercontext.GetUserContext(c)
	property := form.ToModel(uc.UserID)
	if err := GetServices().Repos.Property.Create(scopeOf(uc), property); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return Created(c, property)
}

func HandleGetProperty(c *fiber.Ctx) error {
	property, err := GetServices().Repos.Property.GetByID(scopeOf(usercontext.GetUserContext(c)), c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, property)
}

// HandleUpdateProperty rejects county changes once a case uses the property.
func HandleUpdateProperty(c *fiber.Ctx) error {
	var form forms.PropertyForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}
	property, err := GetServices().Repos.Property.Update(scopeOf(usercontext.GetUserContext(c)), c.Params("id"), form.Updates())
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, property)
}

func HandleDeleteProperty(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := GetServices().Repos.Property.Delete(scopeOf(usercontext.GetUserContext(c)), id); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return OK(c, fiber.Map{"deleted": id})
}
