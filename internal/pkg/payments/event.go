package payments

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rentcourt/ftpr/app/models"
)

const (
	EventPaymentSucceeded       = "payment_intent.succeeded"
	EventPaymentPartiallyFunded = "payment_intent.partially_funded"
	EventChargeRefunded         = "charge.refunded"
)

var ErrInvalidPayload = errors.New("invalid webhook payload")

// Event is the subset of the provider's event envelope the portal reads.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string            `json:"id"`
			PaymentIntent string            `json:"payment_intent"`
			Metadata      map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a webhook body. Events without an id are keyed by a
// hash of the body so redeliveries still dedupe.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, ErrInvalidPayload
	}
	ev.Type = strings.TrimSpace(ev.Type)
	if ev.Type == "" {
		return nil, ErrInvalidPayload
	}
	if strings.TrimSpace(ev.ID) == "" {
		sum := sha256.Sum256(body)
		ev.ID = "hash:" + hex.EncodeToString(sum[:])
	}
	return &ev, nil
}

// CaseID is the case the payment belongs to.
func (e *Event) CaseID() string {
	return strings.TrimSpace(e.Data.Object.Metadata["case_id"])
}

// PaymentIntentID is the intent id, whether the object is the intent itself
// or a charge pointing at it.
func (e *Event) PaymentIntentID() string {
	if e.Data.Object.PaymentIntent != "" {
		return e.Data.Object.PaymentIntent
	}
	return e.Data.Object.ID
}

// PaymentStatusFor maps an event type to the case payment status it sets.
func PaymentStatusFor(eventType string) (string, bool) {
	switch eventType {
	case EventPaymentSucceeded:
		return models.PAYMENT_PAID, true
	case EventPaymentPartiallyFunded:
		return models.PAYMENT_PARTIAL, true
	case EventChargeRefunded:
		return models.PAYMENT_UNPAID, true
	}
	return "", false
}
