package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/forms"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
	"github.com/rentcourt/ftpr/internal/pkg/viewmodel"
)

// tenantTableLimit bounds how many tenants the search table loads.
const tenantTableLimit = 200

// HandleListTenants loads the tenant table and filters it by ?q= in
// memory, so the empty state can tell "no tenants" from "no matches".
func HandleListTenants(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	opts := repository.ListOptions{Limit: tenantTableLimit}
	items, _, err := GetServices().Repos.Tenant.List(scopeOf(uc), opts)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, viewmodel.FilterTenants(items, c.Query("q")))
}

func HandleCreateTenant(c *fiber.Ctx) error {
	var form forms.TenantForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}

	uc := usercontext.GetUserContext(c)
	tenant := form.ToModel(uc.UserID)
	if err := GetServices().Repos.Tenant.Create(scopeOf(uc), tenant); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return Created(c, tenant)
}

// HandleGetTenant returns the tenant and its edit-form values.
func HandleGetTenant(c *fiber.Ctx) error {
	tenant, err := GetServices().Repos.Tenant.GetByID(scopeOf(usercontext.GetUserContext(c)), c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, fiber.Map{
		"tenant": tenant,
		"form":   forms.TenantFormFromModel(tenant),
	})
}

func HandleUpdateTenant(c *fiber.Ctx) error {
	var form forms.TenantForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}
	tenant, err := GetServices().Repos.Tenant.Update(scopeOf(usercontext.GetUserContext(c)), c.Params("id"), form.Updates())
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, tenant)
}

func HandleDeleteTenant(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := GetServices().Repos.Tenant.Delete(scopeOf(usercontext.GetUserContext(c)), id); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return OK(c, fiber.Map{"deleted": id})
}
