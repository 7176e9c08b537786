package repository

import (
	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

// contractorRepository implements the ContractorRepository interface
type contractorRepository struct {
	db *gorm.DB
}

// NewContractorRepository creates a new contractor repository instance
func NewContractorRepository(db *gorm.DB) ContractorRepository {
	return &contractorRepository{db: db}
}

func (r *contractorRepository) scoped() *gorm.DB {
	return r.db.Where("role = ?", models.ROLE_CONTRACTOR)
}

func (r *contractorRepository) List(opts ListOptions) ([]models.Profile, int64, error) {
	opts.Role = models.ROLE_CONTRACTOR
	return listProfiles(r.db, opts)
}

func (r *contractorRepository) GetByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.scoped().Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// Create stores the account with role contractor and returns the profile
// written in the same transaction.
func (r *contractorRepository) Create(account *models.Account) (*models.Profile, error) {
	account.MetadataRole = models.ROLE_CONTRACTOR
	return createAccountWithProfile(r.db, account)
}

func (r *contractorRepository) Update(id string, updates map[string]any) (*models.Profile, error) {
	delete(updates, "role")
	return updateProfile(r.db, id, models.ROLE_CONTRACTOR, updates)
}

func (r *contractorRepository) Delete(id string) error {
	if _, err := r.GetByID(id); err != nil {
		return err
	}
	return deleteUser(r.db, id)
}
