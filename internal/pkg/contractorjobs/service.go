package contractorjobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/env"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/mail"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

var (
	// ErrJobConflict means the job was not in the state the action expects,
	// or another contractor got there first.
	ErrJobConflict   = repository.ErrConflict
	ErrNotContractor = errors.New("assignee is not a contractor")
	ErrForbidden     = errors.New("only contractors can work jobs")
)

// Service moves jobs along UNASSIGNED -> ASSIGNED -> IN_PROGRESS -> COMPLETED.
type Service struct {
	repos  *repository.Repositories
	jobs   jobqueue.Enqueuer
	now    func() time.Time
	appURL string
}

func NewService(repos *repository.Repositories, jobs jobqueue.Enqueuer) *Service {
	return &Service{
		repos:  repos,
		jobs:   jobs,
		now:    time.Now,
		appURL: strings.TrimRight(env.GetEnv("APP_URL", "http://localhost:4000"), "/"),
	}
}

// List is the admin view of every submitted job.
func (s *Service) List(opts repository.JobListOptions) ([]models.ContractorJob, int64, error) {
	return s.repos.ContractorJob.List(opts)
}

// Mine lists the jobs assigned to the contractor.
func (s *Service) Mine(actor usercontext.UserContext, opts repository.JobListOptions) ([]models.ContractorJob, int64, error) {
	if !actor.IsContractor() {
		return nil, 0, ErrForbidden
	}
	opts.ContractorID = actor.UserID
	opts.Open = false
	return s.repos.ContractorJob.List(opts)
}

// Available lists unassigned jobs on active cases.
func (s *Service) Available(opts repository.JobListOptions) ([]models.ContractorJob, int64, error) {
	opts.Open = true
	opts.ContractorID = ""
	opts.Status = ""
	return s.repos.ContractorJob.List(opts)
}

// Assign gives a job to a contractor. Reassigning an assigned job is allowed
// until work starts.
func (s *Service) Assign(ctx context.Context, caseID, contractorID string) (*models.ContractorJob, error) {
	if _, err := s.repos.Contractor.GetByID(contractorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotContractor
		}
		return nil, err
	}
	cond := repository.JobCondition{
		From:         []models.ContractorStatus{models.ContractorUnassigned, models.ContractorAssigned},
		CaseStatuses: repository.OpenCaseStatuses(),
	}
	return s.advance(ctx, caseID, cond, map[string]any{
		"contractor_id":     contractorID,
		"contractor_status": models.ContractorAssigned,
		"assigned_at":       s.now(),
	})
}

// Unassign returns an assigned job to the open board.
func (s *Service) Unassign(ctx context.Context, caseID string) (*models.ContractorJob, error) {
	cond := repository.JobCondition{From: []models.ContractorStatus{models.ContractorAssigned}}
	return s.advance(ctx, caseID, cond, map[string]any{
		"contractor_id":     nil,
		"contractor_status": models.ContractorUnassigned,
		"assigned_at":       nil,
	})
}

// Claim assigns an open job to the acting contractor.
func (s *Service) Claim(ctx context.Context, actor usercontext.UserContext, caseID string) (*models.ContractorJob, error) {
	if !actor.IsContractor() {
		return nil, ErrForbidden
	}
	cond := repository.JobCondition{
		From:         []models.ContractorStatus{models.ContractorUnassigned},
		CaseStatuses: repository.OpenCaseStatuses(),
	}
	return s.advance(ctx, caseID, cond, map[string]any{
		"contractor_id":     actor.UserID,
		"contractor_status": models.ContractorAssigned,
		"assigned_at":       s.now(),
	})
}

// Start marks the contractor's assigned job as in progress.
func (s *Service) Start(ctx context.Context, actor usercontext.UserContext, caseID string) (*models.ContractorJob, error) {
	if !actor.IsContractor() {
		return nil, ErrForbidden
	}
	cond := repository.JobCondition{
		From:         []models.ContractorStatus{models.ContractorAssigned},
		ContractorID: actor.UserID,
	}
	return s.advance(ctx, caseID, cond, map[string]any{
		"contractor_status": models.ContractorInProgress,
	})
}

// Complete closes the contractor's in-progress job.
func (s *Service) Complete(ctx context.Context, actor usercontext.UserContext, caseID string) (*models.ContractorJob, error) {
	if !actor.IsContractor() {
		return nil, ErrForbidden
	}
	cond := repository.JobCondition{
		From:         []models.ContractorStatus{models.ContractorInProgress},
		ContractorID: actor.UserID,
	}
	return s.advance(ctx, caseID, cond, map[string]any{
		"contractor_status":       models.ContractorCompleted,
		"contractor_completed_at": s.now(),
	})
}

func (s *Service) advance(ctx context.Context, caseID string, cond repository.JobCondition, updates map[string]any) (*models.ContractorJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.repos.ContractorJob.Advance(caseID, cond, updates); err != nil {
		return nil, err
	}
	log.Infof("[ContractorJobs] Job %s -> %v", caseID, updates["contractor_status"])
	return s.repos.ContractorJob.Get(caseID)
}

// CreateContractor stores a contractor account and profile in one
// transaction and queues the welcome email. The returned profile is the one
// written by the transaction.
func (s *Service) CreateContractor(account *models.Account) (*models.Profile, error) {
	profile, err := s.repos.Contractor.Create(account)
	if err != nil {
		return nil, err
	}
	log.Infof("[ContractorJobs] Created contractor %s", profile.ID)

	if s.jobs != nil {
		msg, err := mail.ContractorWelcomeEmail(profile.Email, profile.DisplayName(), s.appURL+"/login")
		if err == nil {
			err = jobqueue.EnqueueEmail(s.jobs, msg)
		}
		if err != nil {
			log.Errorf("[ContractorJobs] Failed to queue welcome email for %s: %v", profile.ID, err)
		}
	}
	return profile, nil
}
