package casework

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/documents"
	"github.com/rentcourt/ftpr/internal/pkg/env"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/mail"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

var (
	// ErrStatusConflict means the case left the expected status before the
	// write landed, usually because another session moved it first.
	ErrStatusConflict = repository.ErrConflict
	ErrForbidden      = errors.New("not allowed to change this case's status")
)

// Service applies confirmed status transitions.
type Service struct {
	repos       *repository.Repositories
	jobs        jobqueue.Enqueuer
	notifyEmail string
	appURL      string
}

// NewService wires the service; jobs may be nil to skip follow-up work.
func NewService(repos *repository.Repositories, jobs jobqueue.Enqueuer) *Service {
	return &Service{
		repos:       repos,
		jobs:        jobs,
		notifyEmail: env.GetEnv("ADMIN_NOTIFY_EMAIL", ""),
		appURL:      strings.TrimRight(env.GetEnv("APP_URL", "http://localhost:4000"), "/"),
	}
}

// MayTransition is the role gate. Landlords submit or cancel their own
// drafts and may still cancel after submitting. Admins take any allowed
// transition. Contractors take none.
func MayTransition(role string, from, to models.CaseStatus) bool {
	if !models.CanTransition(from, to) {
		return false
	}
	switch role {
	case models.ROLE_ADMIN:
		return true
	case models.ROLE_LANDLORD:
		switch to {
		case models.CaseStatusSubmitted:
			return from == models.CaseStatusNoticeDraft
		case models.CaseStatusCancelled:
			return from == models.CaseStatusNoticeDraft || from == models.CaseStatusSubmitted
		}
	}
	return false
}

// WorkflowFor builds the status panel as actor sees it.
func WorkflowFor(actor usercontext.UserContext, c *models.LegalCase) Workflow {
	return ActionsFor(c.Status, func(from, to models.CaseStatus) bool {
		return MayTransition(actor.Role, from, to)
	})
}

// Transition moves a case to status to with one conditional write and one
// event row. It returns the updated case.
func (s *Service) Transition(ctx context.Context, actor usercontext.UserContext, caseID string, to models.CaseStatus, notes string) (*models.LegalCase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if actor.IsContractor() || !actor.IsLoggedIn {
		return nil, ErrForbidden
	}

	scope := repository.NewScope(actor.UserID, actor.Role)
	c, err := s.repos.LegalCase.GetByID(scope, caseID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(c.Status, to) {
		return nil, models.ErrInvalidTransition
	}
	if !MayTransition(actor.Role, c.Status, to) {
		return nil, ErrForbidden
	}

	event := &models.CaseStatusEvent{Notes: strings.TrimSpace(notes), ActorID: actor.UserID}
	if err := s.repos.LegalCase.TransitionStatus(c.ID, c.Status, to, event); err != nil {
		return nil, err
	}
	log.Infof("[Casework] Case %s moved %s -> %s by %s", c.ID, c.Status, to, actor.UserID)

	updated, err := s.repos.LegalCase.GetByID(scope, caseID)
	if err != nil {
		return nil, err
	}
	if to == models.CaseStatusSubmitted {
		s.afterSubmit(updated)
	}
	return updated, nil
}

// afterSubmit queues archiving and the admin notification. The transition
// is already committed, so failures here are logged only.
func (s *Service) afterSubmit(c *models.LegalCase) {
	if s.jobs == nil {
		return
	}
	for _, t := range documents.All() {
		payload := jobqueue.ArchiveDocumentJobPayload{CaseID: c.ID, DocType: t.Key}
		if _, err := s.jobs.EnqueueJob(jobqueue.JobTypeArchiveDocument, payload.ToMap()); err != nil {
			log.Errorf("[Casework] Failed to queue %s archive for case %s: %v", t.Key, c.ID, err)
		}
	}

	if s.notifyEmail == "" {
		return
	}
	data := mail.CaseSubmitted{
		CaseID: c.ID,
		Link:   s.appURL + "/admin?case=" + c.ID,
	}
	if c.Property != nil {
		data.Address = c.Property.FullAddress()
		data.County = c.Property.County
	}
	if landlord, err := s.repos.Profile.GetByID(c.LandlordID); err == nil {
		data.Landlord = landlord.DisplayName()
	}
	msg, err := mail.CaseSubmittedEmail(s.notifyEmail, data)
	if err != nil {
		log.Errorf("[Casework] Failed to render submission email for case %s: %v", c.ID, err)
		return
	}
	if err := jobqueue.EnqueueEmail(s.jobs, msg); err != nil {
		log.Errorf("[Casework] Failed to queue submission email for case %s: %v", c.ID, err)
	}
}
