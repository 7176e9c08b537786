package repository

import (
	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

var profileSearchColumns = []string{"username", "full_name", "email"}

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func listProfiles(db *gorm.DB, opts ListOptions) ([]models.Profile, int64, error) {
	opts = opts.Normalized()
	q := db.Model(&models.Profile{})
	if opts.Role != "" {
		q = q.Where("role = ?", opts.Role)
	}
	q = searchLike(q, opts.Search, profileSearchColumns...)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var profiles []models.Profile
	err := q.Order("created_at DESC").Offset(opts.Offset).Limit(opts.Limit).Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *profileRepository) List(opts ListOptions) ([]models.Profile, int64, error) {
	return listProfiles(r.db, opts)
}

func (r *profileRepository) GetByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// EnsureForAccount returns the account's profile, creating it from sign-up
// metadata when it does not exist yet.
func (r *profileRepository) EnsureForAccount(account *models.Account) (*models.Profile, error) {
	profile := models.ProfileFromAccount(account)
	err := r.db.Where("id = ?", account.ID).FirstOrCreate(profile).Error
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Update(id string, updates map[string]any) (*models.Profile, error) {
	return updateProfile(r.db, id, "", updates)
}

// updateProfile applies updates to the profile with id, optionally only when
// it carries role.
func updateProfile(db *gorm.DB, id, role string, updates map[string]any) (*models.Profile, error) {
	find := func() (*models.Profile, error) {
		q := db.Where("id = ?", id)
		if role != "" {
			q = q.Where("role = ?", role)
		}
		var profile models.Profile
		if err := q.First(&profile).Error; err != nil {
			return nil, notFound(err)
		}
		return &profile, nil
	}

	profile, err := find()
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return profile, nil
	}
	if err := db.Model(profile).Updates(updates).Error; err != nil {
		return nil, err
	}
	return find()
}

func (r *profileRepository) Delete(id string) error {
	return deleteUser(r.db, id)
}

// deleteUser removes a user and everything they own in one transaction.
// Jobs a contractor held go back to the open board.
func deleteUser(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("id = ?", id).First(&profile).Error; err != nil {
			return notFound(err)
		}

		caseIDs := tx.Model(&models.LegalCase{}).Select("id").Where("landlord_id = ?", id)
		if err := tx.Where("case_id IN (?)", caseIDs).Delete(&models.CaseStatusEvent{}).Error; err != nil {
			return err
		}
		for _, model := range []any{&models.LegalCase{}, &models.Tenant{}, &models.Property{}} {
			if err := tx.Where("landlord_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		err := tx.Model(&models.LegalCase{}).
			Where("contractor_id = ? AND contractor_status <> ?", id, models.ContractorCompleted).
			Updates(map[string]any{
				"contractor_id":     nil,
				"contractor_status": models.ContractorUnassigned,
				"assigned_at":       nil,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Account{}).Error
	})
}

func (r *profileRepository) CountByRole() (map[string]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := r.db.Model(&models.Profile{}).Select("role, COUNT(*) AS total").Group("role").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[string]int64{
		models.ROLE_ADMIN:      0,
		models.ROLE_LANDLORD:   0,
		models.ROLE_CONTRACTOR: 0,
	}
	for _, row := range rows {
		out[row.Role] = row.Total
	}
	return out, nil
}
