package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rentcourt/ftpr/app/models"
)

// paymentEventRepository implements the PaymentEventRepository interface
type paymentEventRepository struct {
	db *gorm.DB
}

// NewPaymentEventRepository creates a new payment event repository instance
func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &paymentEventRepository{db: db}
}

// CreateIfNotExists inserts the event and reports whether it was new.
func (r *paymentEventRepository) CreateIfNotExists(event *models.PaymentWebhookEvent) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider_event_id"}},
		DoNothing: true,
	}).Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *paymentEventRepository) MarkProcessed(providerEventID string, processingErr error) error {
	now := time.Now()
	updates := map[string]any{
		"processed_at":     &now,
		"processing_error": "",
	}
	if processingErr != nil {
		updates["processing_error"] = processingErr.Error()
	}
	return r.db.Model(&models.PaymentWebhookEvent{}).
		Where("provider_event_id = ?", providerEventID).
		Updates(updates).Error
}

func (r *paymentEventRepository) Release(providerEventID string) error {
	return r.db.Where("provider_event_id = ? AND processed_at IS NULL", providerEventID).
		Delete(&models.PaymentWebhookEvent{}).Error
}
