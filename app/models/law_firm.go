package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LawFirm is a referral directory entry; nothing else references it.
type LawFirm struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(200);not null;index" json:"name"`
	ContactName   string    `gorm:"type:varchar(200)" json:"contact_name"`
	Email         string    `gorm:"type:varchar(200)" json:"email"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone"`
	Address       string    `gorm:"type:varchar(255)" json:"address"`
	City          string    `gorm:"type:varchar(100)" json:"city"`
	State         string    `gorm:"type:varchar(2);default:'MD'" json:"state"`
	ZipCode       string    `gorm:"type:varchar(10)" json:"zip_code"`
	Website       string    `gorm:"type:varchar(255)" json:"website"`
	Notes         string    `gorm:"type:text" json:"notes"`
	ReferralCount int       `gorm:"default:0" json:"referral_count"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *LawFirm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
