package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

// AccountRepository manages auth identities.
type AccountRepository interface {
	GetByID(id string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	// CreateWithProfile inserts the account and its profile in one
	// transaction and returns the stored profile.
	CreateWithProfile(account *models.Account) (*models.Profile, error)
	UpdatePassword(id, hash string, changedAt time.Time) error
	RecordSignIn(id string, at time.Time) error
}

// ProfileRepository backs the admin user directory.
type ProfileRepository interface {
	List(opts ListOptions) ([]models.Profile, int64, error)
	GetByID(id string) (*models.Profile, error)
	EnsureForAccount(account *models.Account) (*models.Profile, error)
	Update(id string, updates map[string]any) (*models.Profile, error)
	// Delete removes the profile, its account and everything the user owns.
	Delete(id string) error
	CountByRole() (map[string]int64, error)
}

// ContractorRepository is the profile directory restricted to contractors.
type ContractorRepository interface {
	List(opts ListOptions) ([]models.Profile, int64, error)
	GetByID(id string) (*models.Profile, error)
	Create(account *models.Account) (*models.Profile, error)
	Update(id string, updates map[string]any) (*models.Profile, error)
	Delete(id string) error
}

type PropertyRepository interface {
	List(scope Scope, opts ListOptions) ([]models.Property, int64, error)
	GetByID(scope Scope, id string) (*models.Property, error)
	Create(scope Scope, property *models.Property) error
	Update(scope Scope, id string, updates map[string]any) (*models.Property, error)
	Delete(scope Scope, id string) error
	Count(scope Scope) (int64, error)
}

type TenantRepository interface {
	List(scope Scope, opts ListOptions) ([]models.Tenant, int64, error)
	GetByID(scope Scope, id string) (*models.Tenant, error)
	Create(scope Scope, tenant *models.Tenant) error
	Update(scope Scope, id string, updates map[string]any) (*models.Tenant, error)
	Delete(scope Scope, id string) error
	Count(scope Scope) (int64, error)
}

type LegalCaseRepository interface {
	List(scope Scope, opts ListOptions) ([]models.LegalCase, int64, error)
	GetByID(scope Scope, id string) (*models.LegalCase, error)
	Create(scope Scope, c *models.LegalCase) error
	// Update edits a case while it is still a notice draft.
	Update(scope Scope, id string, updates map[string]any) (*models.LegalCase, error)
	Delete(scope Scope, id string) error
	// TransitionStatus moves a case from one status to another with a
	// conditional write and records the event in the same transaction.
	TransitionStatus(id string, from, to models.CaseStatus, event *models.CaseStatusEvent) error
	Events(scope Scope, id string) ([]models.CaseStatusEvent, error)
	SetPaymentStatus(id, status, paymentIntentID string) error
	CountByStatus(scope Scope) (map[models.CaseStatus]int64, error)
	CountUnpaid(scope Scope) (int64, error)
}

// ContractorJobRepository reads and advances the contractor axis of cases.
type ContractorJobRepository interface {
	List(opts JobListOptions) ([]models.ContractorJob, int64, error)
	Get(caseID string) (*models.ContractorJob, error)
	// Advance applies updates when the job still matches cond.
	Advance(caseID string, cond JobCondition, updates map[string]any) error
	CountByStatus(contractorID string) (map[models.ContractorStatus]int64, error)
	CountOpen() (int64, error)
}

type LawFirmRepository interface {
	List(opts ListOptions) ([]models.LawFirm, int64, error)
	GetByID(id string) (*models.LawFirm, error)
	Create(firm *models.LawFirm) error
	Update(id string, updates map[string]any) (*models.LawFirm, error)
	Delete(id string) error
	Count() (int64, error)
}

// PaymentEventRepository stores provider webhooks for idempotent handling.
type PaymentEventRepository interface {
	CreateIfNotExists(event *models.PaymentWebhookEvent) (bool, error)
	MarkProcessed(providerEventID string, processingErr error) error
	// Release forgets an unprocessed event so a redelivery is handled again.
	Release(providerEventID string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	DB            *gorm.DB
	Account       AccountRepository
	Profile       ProfileRepository
	Contractor    ContractorRepository
	Property      PropertyRepository
	Tenant        TenantRepository
	LegalCase     LegalCaseRepository
	ContractorJob ContractorJobRepository
	LawFirm       LawFirmRepository
	PaymentEvent  PaymentEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:            db,
		Account:       NewAccountRepository(db),
		Profile:       NewProfileRepository(db),
		Contractor:    NewContractorRepository(db),
		Property:      NewPropertyRepository(db),
		Tenant:        NewTenantRepository(db),
		LegalCase:     NewLegalCaseRepository(db),
		ContractorJob: NewContractorJobRepository(db),
		LawFirm:       NewLawFirmRepository(db),
		PaymentEvent:  NewPaymentEventRepository(db),
	}
}
