package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

// accountRepository implements the AccountRepository interface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *accountRepository) CreateWithProfile(account *models.Account) (*models.Profile, error) {
	return createAccountWithProfile(r.db, account)
}

func (r *accountRepository) UpdatePassword(id, hash string, changedAt time.Time) error {
	account, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Model(account).Updates(map[string]any{
		"password":            hash,
		"password_changed_at": changedAt,
	}).Error
}

func (r *accountRepository) RecordSignIn(id string, at time.Time) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).Update("last_sign_in_at", at).Error
}

// createAccountWithProfile writes both rows or neither.
func createAccountWithProfile(db *gorm.DB, account *models.Account) (*models.Profile, error) {
	var profile *models.Profile
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		profile = models.ProfileFromAccount(account)
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
