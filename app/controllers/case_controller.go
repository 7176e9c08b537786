package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/forms"
	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/casework"
	"github.com/rentcourt/ftpr/internal/pkg/pricing"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

// caseDetail is the case page payload.
type caseDetail struct {
	Case     *models.LegalCase        `json:"case"`
	Workflow casework.Workflow        `json:"workflow"`
	Events   []models.CaseStatusEvent `json:"events"`
}

func HandleListCases(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	opts := listOptions(c)
	items, total, err := GetServices().Repos.LegalCase.List(scopeOf(uc), opts)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, page(items, total, opts))
}

// HandleCreateCase opens a notice draft priced by the property's county.
func HandleCreateCase(c *fiber.Ctx) error {
	var form forms.CaseForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}

	uc := usercontext.GetUserContext(c)
	repos := GetServices().Repos
	property, err := repos.Property.GetByID(scopeOf(uc), form.PropertyID)
	if errors.Is(err, repository.ErrNotFound) {
		return FailError(c, repository.ErrInvalidReference)
	}
	if err != nil {
		return FailError(c, err)
	}

	legalCase := form.ToModel(uc.UserID, pricing.PriceForCounty(property.County))
	if err := repos.LegalCase.Create(scopeOf(uc), legalCase); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()

	created, err := repos.LegalCase.GetByID(scopeOf(uc), legalCase.ID)
	if err != nil {
		return FailError(c, err)
	}
	return Created(c, created)
}

func HandleGetCase(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	repos := GetServices().Repos
	legalCase, err := repos.LegalCase.GetByID(scopeOf(uc), c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	events, err := repos.LegalCase.Events(scopeOf(uc), legalCase.ID)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, caseDetail{
		Case:     legalCase,
		Workflow: casework.WorkflowFor(uc, legalCase),
		Events:   events,
	})
}

// HandleEditCase returns the edit form initialized from the stored case,
// money in major units.
func HandleEditCase(c *fiber.Ctx) error {
	legalCase, err := GetServices().Repos.LegalCase.GetByID(scopeOf(usercontext.GetUserContext(c)), c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, fiber.Map{
		"case_id":  legalCase.ID,
		"editable": legalCase.IsEditable(),
		"form":     forms.CaseFormFromModel(legalCase),
	})
}

func HandleUpdateCase(c *fiber.Ctx) error {
	var form forms.CaseForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}
	legalCase, err := GetServices().Repos.LegalCase.Update(scopeOf(usercontext.GetUserContext(c)), c.Params("id"), form.Updates())
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, legalCase)
}

func HandleDeleteCase(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := GetServices().Repos.LegalCase.Delete(scopeOf(usercontext.GetUserContext(c)), id); err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return OK(c, fiber.Map{"deleted": id})
}

func HandleGetCaseWorkflow(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	legalCase, err := GetServices().Repos.LegalCase.GetByID(scopeOf(uc), c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, casework.WorkflowFor(uc, legalCase))
}

// HandleTransitionCase applies one confirmed status change. A concurrent
// change by another session is reported as a conflict, never retried.
func HandleTransitionCase(c *fiber.Ctx) error {
	var form forms.TransitionForm
	if err := bindForm(c, &form); err != nil {
		return FailError(c, err)
	}
	if err := form.Validate(); err != nil {
		return FailError(c, err)
	}

	uc := usercontext.GetUserContext(c)
	legalCase, err := GetServices().Cases.Transition(c.UserContext(), uc, c.Params("id"), models.CaseStatus(form.To), form.Notes)
	if err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return OK(c, fiber.Map{
		"case":     legalCase,
		"workflow": casework.WorkflowFor(uc, legalCase),
	})
}
