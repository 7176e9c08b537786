package repository

import (
	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

var tenantSearchColumns = []string{"tenant_names", "email"}

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) List(scope Scope, opts ListOptions) ([]models.Tenant, int64, error) {
	opts = opts.Normalized()
	q := scope.apply(r.db.Model(&models.Tenant{}), "landlord_id")
	q = searchLike(q, opts.Search, tenantSearchColumns...)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var tenants []models.Tenant
	err := q.Preload("Property").Order("created_at DESC").Offset(opts.Offset).Limit(opts.Limit).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

func (r *tenantRepository) GetByID(scope Scope, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := scope.apply(r.db.Preload("Property").Where("id = ?", id), "landlord_id").First(&tenant).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &tenant, nil
}

// Create attaches the tenant to a property the acting landlord owns.
func (r *tenantRepository) Create(scope Scope, tenant *models.Tenant) error {
	property, err := findProperty(r.db, scope, tenant.PropertyID)
	if err != nil {
		if err == ErrNotFound {
			return ErrInvalidReference
		}
		return err
	}
	tenant.LandlordID = property.LandlordID
	return r.db.Create(tenant).Error
}

func (r *tenantRepository) Update(scope Scope, id string, updates map[string]any) (*models.Tenant, error) {
	tenant, err := r.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	delete(updates, "landlord_id")

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if propertyID, ok := updates["property_id"].(string); ok && propertyID != tenant.PropertyID {
			property, err := findProperty(tx, scope, propertyID)
			if err != nil || property.LandlordID != tenant.LandlordID {
				return ErrInvalidReference
			}
		}
		// tenant_names goes through the struct path so the JSON serializer applies
		if names, ok := updates["tenant_names"].([]string); ok {
			delete(updates, "tenant_names")
			if err := tx.Model(&models.Tenant{ID: id}).Select("tenant_names").Updates(&models.Tenant{TenantNames: names}).Error; err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Tenant{ID: id}).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(scope, id)
}

// Delete removes the tenant and any cases filed against them.
func (r *tenantRepository) Delete(scope Scope, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := scope.apply(tx.Where("id = ?", id), "landlord_id").First(&tenant).Error; err != nil {
			return notFound(err)
		}
		caseIDs := tx.Model(&models.LegalCase{}).Select("id").Where("tenant_id = ?", id)
		if err := tx.Where("case_id IN (?)", caseIDs).Delete(&models.CaseStatusEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.LegalCase{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Tenant{}).Error
	})
}

func (r *tenantRepository) Count(scope Scope) (int64, error) {
	var total int64
	err := scope.apply(r.db.Model(&models.Tenant{}), "landlord_id").Count(&total).Error
	return total, err
}
