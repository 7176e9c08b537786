package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

var propertySearchColumns = []string{"address", "city", "zip_code", "county"}

// propertyRepository implements the PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) List(scope Scope, opts ListOptions) ([]models.Property, int64, error) {
	opts = opts.Normalized()
	q := scope.apply(r.db.Model(&models.Property{}), "landlord_id")
	q = searchLike(q, opts.Search, propertySearchColumns...)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var properties []models.Property
	if err := q.Order("created_at DESC").Offset(opts.Offset).Limit(opts.Limit).Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *propertyRepository) GetByID(scope Scope, id string) (*models.Property, error) {
	return findProperty(r.db, scope, id)
}

func findProperty(db *gorm.DB, scope Scope, id string) (*models.Property, error) {
	var property models.Property
	if err := scope.apply(db.Where("id = ?", id), "landlord_id").First(&property).Error; err != nil {
		return nil, notFound(err)
	}
	return &property, nil
}

// Create stores a property for the acting landlord. Admins must set
// LandlordID explicitly.
func (r *propertyRepository) Create(scope Scope, property *models.Property) error {
	if !scope.IsAdmin() {
		property.LandlordID = scope.UserID
	}
	if property.LandlordID == "" {
		return ErrInvalidReference
	}
	return r.db.Create(property).Error
}

// Update refuses to change the county once a case has been priced against
// the property.
func (r *propertyRepository) Update(scope Scope, id string, updates map[string]any) (*models.Property, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		property, err := findProperty(tx, scope, id)
		if err != nil {
			return err
		}
		delete(updates, "landlord_id")

		if county, ok := updates["county"].(string); ok && !strings.EqualFold(county, property.County) {
			var cases int64
			if err := tx.Model(&models.LegalCase{}).Where("property_id = ?", id).Count(&cases).Error; err != nil {
				return err
			}
			if cases > 0 {
				return models.ErrCountyLocked
			}
		}
		return tx.Model(property).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(scope, id)
}

// Delete removes the property with its tenants and cases.
func (r *propertyRepository) Delete(scope Scope, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findProperty(tx, scope, id); err != nil {
			return err
		}
		caseIDs := tx.Model(&models.LegalCase{}).Select("id").Where("property_id = ?", id)
		if err := tx.Where("case_id IN (?)", caseIDs).Delete(&models.CaseStatusEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.LegalCase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Tenant{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Property{}).Error
	})
}

func (r *propertyRepository) Count(scope Scope) (int64, error) {
	var total int64
	err := scope.apply(r.db.Model(&models.Property{}), "landlord_id").Count(&total).Error
	return total, err
}
