package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CASE_TYPE_FTPR = "FTPR"

	PAYMENT_UNPAID  = "UNPAID"
	PAYMENT_PARTIAL = "PARTIAL"
	PAYMENT_PAID    = "PAID"
)

// ErrCaseLocked is returned when editing a case past the notice draft stage.
var ErrCaseLocked = errors.New("case can only be edited while in notice draft")

// LegalCase carries all money in cents. Status and PaymentStatus are
// independent axes and are never written together.
type LegalCase struct {
	ID                    string           `gorm:"type:char(36);primaryKey" json:"id"`
	LandlordID            string           `gorm:"type:char(36);index;not null" json:"landlord_id"`
	PropertyID            string           `gorm:"type:char(36);index;not null" json:"property_id"`
	TenantID              string           `gorm:"type:char(36);index;not null" json:"tenant_id"`
	CaseType              string           `gorm:"type:varchar(20);default:'FTPR'" json:"case_type"`
	Status                CaseStatus       `gorm:"type:varchar(20);index;default:'NOTICE_DRAFT'" json:"status"`
	PaymentStatus         string           `gorm:"type:varchar(20);index;default:'UNPAID'" json:"payment_status"`
	Price                 int64            `gorm:"default:0" json:"price"`
	RentOwedAtFiling      int64            `gorm:"default:0" json:"rent_owed_at_filing"`
	LateFees              int64            `gorm:"default:0" json:"late_fees"`
	OtherFees             int64            `gorm:"default:0" json:"other_fees"`
	CourtCaseNumber       string           `gorm:"type:varchar(100)" json:"court_case_number"`
	DistrictCourtLocation string           `gorm:"type:varchar(200)" json:"district_court_location"`
	CourtDate             *time.Time       `gorm:"type:timestamp;default:null" json:"court_date"`
	TrialDate             *time.Time       `gorm:"type:timestamp;default:null" json:"trial_date"`
	EvictionDate          *time.Time       `gorm:"type:timestamp;default:null" json:"eviction_date"`
	Notes                 string           `gorm:"type:text" json:"notes"`
	PaymentIntentID       string           `gorm:"type:varchar(100);index" json:"payment_intent_id"`
	ContractorID          *string          `gorm:"type:char(36);index;default:null" json:"contractor_id"`
	ContractorStatus      ContractorStatus `gorm:"type:varchar(20);index;default:'UNASSIGNED'" json:"contractor_status"`
	AssignedAt            *time.Time       `gorm:"type:timestamp;default:null" json:"assigned_at"`
	ContractorCompletedAt *time.Time       `gorm:"type:timestamp;default:null" json:"contractor_completed_at"`
	Property              *Property        `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Tenant                *Tenant          `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	CreatedAt             time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LegalCase) TableName() string {
	return "legal_cases"
}

func (c *LegalCase) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CaseType == "" {
		c.CaseType = CASE_TYPE_FTPR
	}
	if c.Status == "" {
		c.Status = CaseStatusNoticeDraft
	}
	if c.PaymentStatus == "" {
		c.PaymentStatus = PAYMENT_UNPAID
	}
	if c.ContractorStatus == "" {
		c.ContractorStatus = ContractorUnassigned
	}
	return nil
}

// IsEditable reports whether the case's fields may still be edited.
func (c *LegalCase) IsEditable() bool {
	return c.Status == CaseStatusNoticeDraft
}

// TotalOwed sums rent and fees in cents.
func (c *LegalCase) TotalOwed() int64 {
	return c.RentOwedAtFiling + c.LateFees + c.OtherFees
}

// IsValidPaymentStatus reports whether s is UNPAID, PARTIAL or PAID.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PAYMENT_UNPAID, PAYMENT_PARTIAL, PAYMENT_PAID:
		return true
	}
	return false
}

// CaseStatusEvent records one confirmed status transition and its notes.
type CaseStatusEvent struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CaseID     string     `gorm:"type:char(36);index;not null" json:"case_id"`
	FromStatus CaseStatus `gorm:"type:varchar(20)" json:"from_status"`
	ToStatus   CaseStatus `gorm:"type:varchar(20)" json:"to_status"`
	Notes      string     `gorm:"type:text" json:"notes"`
	ActorID    string     `gorm:"type:char(36)" json:"actor_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
