package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/forms"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
	"github.com/rentcourt/ftpr/internal/pkg/viewmodel"
)

// AdminController serves the admin directory endpoints.
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{repos: repos}
}

func adminController() *AdminController {
	return NewAdminController(GetServices().Repos)
}

type userDetail struct {
	Profile            any                               `json:"profile"`
	DeleteConfirmation viewmodel.DeleteConfirmationState `json:"delete_confirmation"`
}

func (ac *AdminController) HandleUsers(c *fiber.Ctx) error {
	opts := listOptions(c)
	items, total, err := ac.repos.Profile.List(opts)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, page(items, total, opts))
}

// HandleUser returns the profile and the phrase the delete dialog expects.
func (ac *AdminController) HandleUser(c *fiber.Ctx) error {
	profile, err := ac.repos.Profile.GetByID(c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, userDetail{
		Profile:            profile,
		DeleteConfirmation: viewmodel.DeleteConfirmation(profile.Username, ""),
	})
}

func (ac *AdminController) HandleUserUpdate(c *fiber.Ctx) error {
	var form forms.ProfileUpdateForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}
	if form.Role != nil {
		if err := revokeSessions(c.Params("id")); err != nil {
			return FailError(c, err)
		}
	}
	profile, err := ac.repos.Profile.Update(c.Params("id"), form.Updates())
	if err != nil {
		return FailError(c, err)
	}
	if form.Role != nil {
		statistics.Invalidate()
	}
	return OK(c, profile)
}

// HandleUserDelete deletes a user and everything they own, but only when
// the posted confirmation is exactly "DELETE <username>". Anything else is
// rejected without touching the database.
func (ac *AdminController) HandleUserDelete(c *fiber.Ctx) error {
	var form forms.DeleteConfirmationForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}

	id := c.Params("id")
	profile, err := ac.repos.Profile.GetByID(id)
	if err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(profile.Username); err != nil {
		return FailError(c, err)
	}
	if id == usercontext.GetUserID(c) {
		return FailValidation(c, forms.ValidationErrors{"confirmation": "you cannot delete your own account"})
	}

	if err := revokeSessions(id); err != nil {
		return FailError(c, err)
	}
	if err := ac.repos.Profile.Delete(id); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	log.Infof("[Admin] %s deleted user %s (%s)", usercontext.GetUserID(c), id, profile.Username)
	return OK(c, fiber.Map{"deleted": id})
}

func (ac *AdminController) HandleContractors(c *fiber.Ctx) error {
	opts := listOptions(c)
	items, total, err := ac.repos.Contractor.List(opts)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, page(items, total, opts))
}

// HandleContractorCreate creates the account and profile together and
// returns the stored profile.
func (ac *AdminController) HandleContractorCreate(c *fiber.Ctx) error {
	var form forms.ContractorForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}

	if _, err := ac.repos.Account.GetByEmail(form.Email); err == nil {
		return FailValidation(c, forms.ValidationErrors{"email": "is already registered"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return FailError(c, err)
	}

	account, err := form.ToAccount()
	if err != nil {
		return FailError(c, err)
	}
	profile, err := GetServices().ContractorJobs.CreateContractor(account)
	if err != nil {
		return FailError(c, err)
	}
	if updates := form.ProfileUpdates(); len(updates) > 0 {
		if profile, err = ac.repos.Contractor.Update(profile.ID, updates); err != nil {
			return FailError(c, err)
		}
	}
	statistics.Invalidate()
	return Created(c, profile)
}

func (ac *AdminController) HandleContractor(c *fiber.Ctx) error {
	profile, err := ac.repos.Contractor.GetByID(c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, profile)
}

func (ac *AdminController) HandleContractorUpdate(c *fiber.Ctx) error {
	var form forms.ProfileUpdateForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}
	profile, err := ac.repos.Contractor.Update(c.Params("id"), form.Updates())
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, profile)
}

func (ac *AdminController) HandleContractorDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := ac.repos.Contractor.GetByID(id); err != nil {
		return FailError(c, err)
	}
	if err := revokeSessions(id); err != nil {
		return FailError(c, err)
	}
	if err := ac.repos.Contractor.Delete(id); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return OK(c, fiber.Map{"deleted": id})
}

func (ac *AdminController) HandleLawFirms(c *fiber.Ctx) error {
	opts := listOptions(c)
	items, total, err := ac.repos.LawFirm.List(opts)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, page(items, total, opts))
}

func (ac *AdminController) HandleLawFirmCreate(c *fiber.Ctx) error {
	var form forms.LawFirmForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}
	firm := form.ToModel()
	if err := ac.repos.LawFirm.Create(firm); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return Created(c, firm)
}

func (ac *AdminController) HandleLawFirm(c *fiber.Ctx) error {
	firm, err := ac.repos.LawFirm.GetByID(c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, firm)
}

func (ac *AdminController) HandleLawFirmUpdate(c *fiber.Ctx) error {
	var form forms.LawFirmForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}
	firm, err := ac.repos.LawFirm.Update(c.Params("id"), form.Updates())
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, firm)
}

func (ac *AdminController) HandleLawFirmDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ac.repos.LawFirm.Delete(id); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return OK(c, fiber.Map{"deleted": id})
}

// Adapter functions for the router.

func HandleAdminUsers(c *fiber.Ctx) error       { return adminController().HandleUsers(c) }
func HandleAdminUser(c *fiber.Ctx) error        { return adminController().HandleUser(c) }
func HandleAdminUserUpdate(c *fiber.Ctx) error  { return adminController().HandleUserUpdate(c) }
func HandleAdminUserDelete(c *fiber.Ctx) error  { return adminController().HandleUserDelete(c) }
func HandleAdminContractors(c *fiber.Ctx) error { return adminController().HandleContractors(c) }
func HandleAdminContractorCreate(c *fiber.Ctx) error {
	return adminController().HandleContractorCreate(c)
}
func HandleAdminContractor(c *fiber.Ctx) error { return adminController().HandleContractor(c) }
func HandleAdminContractorUpdate(c *fiber.Ctx) error {
	return adminController().HandleContractorUpdate(c)
}
func HandleAdminContractorDelete(c *fiber.Ctx) error {
	return adminController().HandleContractorDelete(c)
}
func HandleAdminLawFirms(c *fiber.Ctx) error      { return adminController().HandleLawFirms(c) }
func HandleAdminLawFirmCreate(c *fiber.Ctx) error { return adminController().HandleLawFirmCreate(c) }
func HandleAdminLawFirm(c *fiber.Ctx) error       { return adminController().HandleLawFirm(c) }
func HandleAdminLawFirmUpdate(c *fiber.Ctx) error { return adminController().HandleLawFirmUpdate(c) }
func HandleAdminLawFirmDelete(c *fiber.Ctx) error { return adminController().HandleLawFirmDelete(c) }
