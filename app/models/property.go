package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PROPERTY_SINGLE_FAMILY = "SINGLE_FAMILY"
	PROPERTY_TOWNHOUSE     = "TOWNHOUSE"
	PROPERTY_APARTMENT     = "APARTMENT"
	PROPERTY_CONDO         = "CONDO"
	PROPERTY_DUPLEX        = "DUPLEX"
	PROPERTY_OTHER         = "OTHER"
)

// ErrCountyLocked is returned when a property's county would change after a
// legal case has been priced against it.
var ErrCountyLocked = errors.New("county cannot change once a case references the property")

type Property struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	LandlordID   string    `gorm:"type:char(36);index;not null" json:"landlord_id"`
	Address      string    `gorm:"type:varchar(255);not null" json:"address"`
	Unit         string    `gorm:"type:varchar(50)" json:"unit"`
	City         string    `gorm:"type:varchar(100)" json:"city"`
	State        string    `gorm:"type:varchar(2);default:'MD'" json:"state"`
	ZipCode      string    `gorm:"type:varchar(10)" json:"zip_code"`
	County       string    `gorm:"type:varchar(100);index" json:"county"`
	PropertyType string    `gorm:"type:varchar(30);default:'SINGLE_FAMILY'" json:"property_type"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Bathrooms    *float64  `json:"bathrooms,omitempty"`
	SquareFeet   *int      `json:"square_feet,omitempty"`
	YearBuilt    *int      `json:"year_built,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.State == "" {
		p.State = "MD"
	}
	return nil
}

// PropertyTypes lists the accepted property_type values.
func PropertyTypes() []string {
	return []string{
		PROPERTY_SINGLE_FAMILY,
		PROPERTY_TOWNHOUSE,
		PROPERTY_APARTMENT,
		PROPERTY_CONDO,
		PROPERTY_DUPLEX,
		PROPERTY_OTHER,
	}
}

// FullAddress renders "street, unit, city, state zip" skipping empty parts.
func (p *Property) FullAddress() string {
	parts := []string{strings.TrimSpace(p.Address)}
	if p.Unit != "" {
		parts = append(parts, "Unit "+p.Unit)
	}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	tail := strings.TrimSpace(fmt.Sprintf("%s %s", p.State, p.ZipCode))
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}
