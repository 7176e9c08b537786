package repository

import (
	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

var lawFirmSearchColumns = []string{"name", "contact_name", "email", "city"}

// lawFirmRepository implements the LawFirmRepository interface
type lawFirmRepository struct {
	db *gorm.DB
}

// NewLawFirmRepository creates a new law firm repository instance
func NewLawFirmRepository(db *gorm.DB) LawFirmRepository {
	return &lawFirmRepository{db: db}
}

func (r *lawFirmRepository) List(opts ListOptions) ([]models.LawFirm, int64, error) {
	opts = opts.Normalized()
	q := searchLike(r.db.Model(&models.LawFirm{}), opts.Search, lawFirmSearchColumns...)
	switch opts.Status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var firms []models.LawFirm
	if err := q.Order("name ASC").Offset(opts.Offset).Limit(opts.Limit).Find(&firms).Error; err != nil {
		return nil, 0, err
	}
	return firms, total, nil
}

func (r *lawFirmRepository) GetByID(id string) (*models.LawFirm, error) {
	var firm models.LawFirm
	if err := r.db.Where("id = ?", id).First(&firm).Error; err != nil {
		return nil, notFound(err)
	}
	return &firm, nil
}

func (r *lawFirmRepository) Create(firm *models.LawFirm) error {
	active := firm.IsActive
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(firm).Error; err != nil {
			return err
		}
		// is_active has a column default, so false must be written explicitly
		if !active {
			firm.IsActive = false
			return tx.Model(firm).Update("is_active", false).Error
		}
		return nil
	})
}

func (r *lawFirmRepository) Update(id string, updates map[string]any) (*models.LawFirm, error) {
	firm, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	delete(updates, "id")
	if err := r.db.Model(firm).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *lawFirmRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.LawFirm{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *lawFirmRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.LawFirm{}).Count(&total).Error
	return total, err
}
