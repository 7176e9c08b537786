package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/forms"
	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

type assignRequest struct {
	ContractorID string `form:"contractor_id" json:"contractor_id"`
}

func jobListOptions(c *fiber.Ctx) (repository.JobListOptions, error) {
	opts := repository.JobListOptions{
		Offset: queryInt(c, "offset", 0),
		Limit:  queryInt(c, "limit", 50),
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		status := models.ContractorStatus(s)
		if !status.IsValid() {
			return opts, forms.ValidationErrors{"status": "must be a contractor status"}
		}
		opts.Status = status
	}
	return opts, nil
}

func jobsPage(c *fiber.Ctx, list func(repository.JobListOptions) ([]models.ContractorJob, int64, error)) error {
	opts, err := jobListOptions(c)
	if err != nil {
		return FailError(c, err)
	}
	items, total, err := list(opts)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, ListPage{Items: items, Total: total, Offset: opts.Offset, Limit: opts.Limit})
}

func jobResult(c *fiber.Ctx, job *models.ContractorJob, err error) error {
	if err != nil {
		return FailError(c, err)
	}
	statistics.Invalidate()
	return OK(c, job)
}

// HandleAdminJobs lists every submitted job, optionally by ?status=.
func HandleAdminJobs(c *fiber.Ctx) error {
	return jobsPage(c, GetServices().ContractorJobs.List)
}

func HandleAdminJobAssign(c *fiber.Ctx) error {
	var req assignRequest
	if err := bindForm(c, &req); err != nil {
		return FailError(c, err)
	}
	if strings.TrimSpace(req.ContractorID) == "" {
		return FailValidation(c, forms.ValidationErrors{"contractor_id": "is required"})
	}
	job, err := GetServices().ContractorJobs.Assign(c.UserContext(), c.Params("id"), req.ContractorID)
	return jobResult(c, job, err)
}

func HandleAdminJobUnassign(c *fiber.Ctx) error {
	job, err := GetServices().ContractorJobs.Unassign(c.UserContext(), c.Params("id"))
	return jobResult(c, job, err)
}

// HandleContractorJobs lists the acting contractor's own jobs.
func HandleContractorJobs(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	return jobsPage(c, func(opts repository.JobListOptions) ([]models.ContractorJob, int64, error) {
		return GetServices().ContractorJobs.Mine(uc, opts)
	})
}

// HandleAvailableJobs is the open board.
func HandleAvailableJobs(c *fiber.Ctx) error {
	return jobsPage(c, GetServices().ContractorJobs.Available)
}

func HandleContractorJobClaim(c *fiber.Ctx) error {
	job, err := GetServices().ContractorJobs.Claim(c.UserContext(), usercontext.GetUserContext(c), c.Params("id"))
	return jobResult(c, job, err)
}

func HandleContractorJobStart(c *fiber.Ctx) error {
	job, err := GetServices().ContractorJobs.Start(c.UserContext(), usercontext.GetUserContext(c), c.Params("id"))
	return jobResult(c, job, err)
}

func HandleContractorJobComplete(c *fiber.Ctx) error {
	job, err := GetServices().ContractorJobs.Complete(c.UserContext(), usercontext.GetUserContext(c), c.Params("id"))
	return jobResult(c, job, err)
}
