package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID             string     `gorm:"type:char(36);primaryKey" json:"id"`
	PropertyID     string     `gorm:"type:char(36);index;not null" json:"property_id"`
	LandlordID     string     `gorm:"type:char(36);index;not null" json:"landlord_id"`
	TenantNames    []string   `gorm:"type:text;serializer:json" json:"tenant_names"`
	Email          string     `gorm:"type:varchar(200)" json:"email"`
	Phone          string     `gorm:"type:varchar(30)" json:"phone"`
	LeaseStartDate *time.Time `gorm:"type:date;default:null" json:"lease_start_date"`
	LeaseEndDate   *time.Time `gorm:"type:date;default:null" json:"lease_end_date"`
	RentAmount     int64      `gorm:"default:0" json:"rent_amount"`
	IsSubsidized   bool       `gorm:"default:false" json:"is_subsidized"`
	SubsidyType    string     `gorm:"type:varchar(100)" json:"subsidy_type"`
	Property       *Property  `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// DisplayNames joins all tenant names for headers and document fields.
func (t *Tenant) DisplayNames() string {
	names := make([]string, 0, len(t.TenantNames))
	for _, n := range t.TenantNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}
