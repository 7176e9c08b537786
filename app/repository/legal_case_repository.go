package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

var caseSearchColumns = []string{"court_case_number", "district_court_location", "notes"}

// legalCaseRepository implements the LegalCaseRepository interface
type legalCaseRepository struct {
	db *gorm.DB
}

// NewLegalCaseRepository creates a new legal case repository instance
func NewLegalCaseRepository(db *gorm.DB) LegalCaseRepository {
	return &legalCaseRepository{db: db}
}

func (r *legalCaseRepository) List(scope Scope, opts ListOptions) ([]models.LegalCase, int64, error) {
	opts = opts.Normalized()
	q := scope.apply(r.db.Model(&models.LegalCase{}), "landlord_id")
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	q = searchLike(q, opts.Search, caseSearchColumns...)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var cases []models.LegalCase
	err := q.Preload("Property").Preload("Tenant").
		Order("created_at DESC").Offset(opts.Offset).Limit(opts.Limit).Find(&cases).Error
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (r *legalCaseRepository) GetByID(scope Scope, id string) (*models.LegalCase, error) {
	return findCase(r.db, scope, id)
}

func findCase(db *gorm.DB, scope Scope, id string) (*models.LegalCase, error) {
	var c models.LegalCase
	q := db.Preload("Property").Preload("Tenant").Where("id = ?", id)
	if err := scope.apply(q, "landlord_id").First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Create files a case against a tenant of a property the landlord owns.
// Price must already be set from the county table.
func (r *legalCaseRepository) Create(scope Scope, c *models.LegalCase) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkCaseReferences(tx, scope, c.PropertyID, c.TenantID); err != nil {
			return err
		}
		property, _ := findProperty(tx, scope, c.PropertyID)
		c.LandlordID = property.LandlordID
		c.Status = models.CaseStatusNoticeDraft
		c.PaymentStatus = models.PAYMENT_UNPAID
		c.ContractorStatus = models.ContractorUnassigned
		c.ContractorID = nil
		return tx.Create(c).Error
	})
}

func checkCaseReferences(tx *gorm.DB, scope Scope, propertyID, tenantID string) error {
	property, err := findProperty(tx, scope, propertyID)
	if err != nil {
		return ErrInvalidReference
	}
	var tenant models.Tenant
	err = tx.Where("id = ? AND property_id = ? AND landlord_id = ?", tenantID, property.ID, property.LandlordID).First(&tenant).Error
	if err != nil {
		return ErrInvalidReference
	}
	return nil
}

// Update only touches cases still in notice draft; the status check is part
// of the write.
func (r *legalCaseRepository) Update(scope Scope, id string, updates map[string]any) (*models.LegalCase, error) {
	for _, col := range []string{"id", "landlord_id", "status", "payment_status", "price", "contractor_id", "contractor_status"} {
		delete(updates, col)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		current, err := findCase(tx, scope, id)
		if err != nil {
			return err
		}
		if !current.IsEditable() {
			return models.ErrCaseLocked
		}
		propertyID, _ := updates["property_id"].(string)
		tenantID, _ := updates["tenant_id"].(string)
		if propertyID == "" {
			propertyID = current.PropertyID
		}
		if tenantID == "" {
			tenantID = current.TenantID
		}
		if propertyID != current.PropertyID || tenantID != current.TenantID {
			if err := checkCaseReferences(tx, NewScope(current.LandlordID, models.ROLE_LANDLORD), propertyID, tenantID); err != nil {
				return err
			}
		}

		if len(updates) == 0 {
			return nil
		}
		res := tx.Model(&models.LegalCase{}).
			Where("id = ? AND status = ?", id, models.CaseStatusNoticeDraft).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// MySQL reports zero rows for a no-op write, so only a status
			// change since the read counts as lost.
			var statuses []models.CaseStatus
			if err := tx.Model(&models.LegalCase{}).Where("id = ?", id).Pluck("status", &statuses).Error; err != nil {
				return err
			}
			if len(statuses) == 0 || statuses[0] != models.CaseStatusNoticeDraft {
				return models.ErrCaseLocked
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(scope, id)
}

func (r *legalCaseRepository) Delete(scope Scope, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findCase(tx, scope, id); err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", id).Delete(&models.CaseStatusEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.LegalCase{}).Error
	})
}

func (r *legalCaseRepository) TransitionStatus(id string, from, to models.CaseStatus, event *models.CaseStatusEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.LegalCase{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]any{"status": to, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		event.CaseID = id
		event.FromStatus = from
		event.ToStatus = to
		return tx.Create(event).Error
	})
}

func (r *legalCaseRepository) Events(scope Scope, id string) ([]models.CaseStatusEvent, error) {
	if _, err := findCase(r.db, scope, id); err != nil {
		return nil, err
	}
	var events []models.CaseStatusEvent
	if err := r.db.Where("case_id = ?", id).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// SetPaymentStatus writes only payment columns; case status is untouched.
func (r *legalCaseRepository) SetPaymentStatus(id, status, paymentIntentID string) error {
	var c models.LegalCase
	if err := r.db.Select("id").Where("id = ?", id).First(&c).Error; err != nil {
		return notFound(err)
	}
	updates := map[string]any{"payment_status": status}
	if paymentIntentID != "" {
		updates["payment_intent_id"] = paymentIntentID
	}
	return r.db.Model(&models.LegalCase{}).Where("id = ?", id).Updates(updates).Error
}

func (r *legalCaseRepository) CountByStatus(scope Scope) (map[models.CaseStatus]int64, error) {
	var rows []struct {
		Status models.CaseStatus
		Total  int64
	}
	err := scope.apply(r.db.Model(&models.LegalCase{}), "landlord_id").
		Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.CaseStatus]int64, len(models.CaseStatuses()))
	for _, s := range models.CaseStatuses() {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *legalCaseRepository) CountUnpaid(scope Scope) (int64, error) {
	var total int64
	err := scope.apply(r.db.Model(&models.LegalCase{}), "landlord_id").
		Where("payment_status <> ?", models.PAYMENT_PAID).Count(&total).Error
	return total, err
}
