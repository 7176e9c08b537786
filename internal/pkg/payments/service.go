package payments

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
)

// Result describes what a webhook delivery did.
type Result struct {
	EventID       string `json:"event_id"`
	Duplicate     bool   `json:"duplicate"`
	Ignored       bool   `json:"ignored"`
	CaseID        string `json:"case_id,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// Service applies provider webhooks to case payment status. It never
// touches the case workflow status.
type Service struct {
	repos     *repository.Repositories
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

func NewService(repos *repository.Repositories, webhookSecret string) *Service {
	return &Service{
		repos:     repos,
		secret:    webhookSecret,
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
}

// HandleWebhook verifies, dedupes and applies one delivery. Signature and
// payload errors are returned before anything is stored.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := VerifySignature(body, signature, s.secret, s.now(), s.tolerance); err != nil {
		log.Warnf("[Payments] Rejected webhook: %v", err)
		return nil, err
	}
	ev, err := ParseEvent(body)
	if err != nil {
		return nil, err
	}

	res := &Result{EventID: ev.ID, CaseID: ev.CaseID()}
	created, err := s.repos.PaymentEvent.CreateIfNotExists(&models.PaymentWebhookEvent{
		ProviderEventID: ev.ID,
		EventType:       ev.Type,
		CaseID:          res.CaseID,
		PayloadJSON:     string(body),
		SignatureValid:  true,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		res.Duplicate = true
		return res, nil
	}

	status, ok := PaymentStatusFor(ev.Type)
	if !ok {
		res.Ignored = true
		s.markProcessed(ev.ID, nil)
		return res, nil
	}
	if res.CaseID == "" {
		res.Ignored = true
		s.markProcessed(ev.ID, errors.New("event has no case_id metadata"))
		return res, nil
	}

	err = s.repos.LegalCase.SetPaymentStatus(res.CaseID, status, ev.PaymentIntentID())
	if errors.Is(err, repository.ErrNotFound) {
		res.Ignored = true
		s.markProcessed(ev.ID, err)
		return res, nil
	}
	if err != nil {
		// Drop the record so the provider's retry is applied rather than
		// acknowledged as a duplicate.
		if releaseErr := s.repos.PaymentEvent.Release(ev.ID); releaseErr != nil {
			log.Errorf("[Payments] Failed to release event %s: %v", ev.ID, releaseErr)
			s.markProcessed(ev.ID, err)
		}
		return nil, err
	}
	s.markProcessed(ev.ID, nil)

	res.PaymentStatus = status
	log.Infof("[Payments] Case %s payment status -> %s (event %s)", res.CaseID, status, ev.ID)
	return res, nil
}

func (s *Service) markProcessed(eventID string, processingErr error) {
	if err := s.repos.PaymentEvent.MarkProcessed(eventID, processingErr); err != nil {
		log.Errorf("[Payments] Failed to mark event %s processed: %v", eventID, err)
	}
}
