package forms

import (
	"strings"

	"github.com/rentcourt/ftpr/app/models"
)

type PropertyForm struct {
	Address      string   `form:"address" json:"address" validate:"required,max=255"`
	Unit         string   `form:"unit" json:"unit" validate:"max=50"`
	City         string   `form:"city" json:"city" validate:"required,max=100"`
	State        string   `form:"state" json:"state" validate:"omitempty,len=2"`
	ZipCode      string   `form:"zip_code" json:"zip_code" validate:"required,min=5,max=10"`
	County       string   `form:"county" json:"county" validate:"required,md_county"`
	PropertyType string   `form:"property_type" json:"property_type" validate:"required,oneof=SINGLE_FAMILY TOWNHOUSE APARTMENT CONDO DUPLEX OTHER"`
	Bedrooms     *int     `form:"bedrooms" json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	Bathrooms    *float64 `form:"bathrooms" json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	SquareFeet   *int     `form:"square_feet" json:"square_feet" validate:"omitempty,gte=0"`
	YearBuilt    *int     `form:"year_built" json:"year_built" validate:"omitempty,gte=1700,lte=2100"`
}

func (f *PropertyForm) Validate() error {
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.County = strings.TrimSpace(f.County)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	if f.State == "" {
		f.State = "MD"
	}
	return result(check(f))
}

// ToModel builds a new property owned by landlordID. Call Validate first.
func (f *PropertyForm) ToModel(landlordID string) *models.Property {
	return &models.Property{
		LandlordID:   landlordID,
		Address:      f.Address,
		Unit:         f.Unit,
		City:         f.City,
		State:        f.State,
		ZipCode:      f.ZipCode,
		County:       f.County,
		PropertyType: f.PropertyType,
		Bedrooms:     f.Bedrooms,
		Bathrooms:    f.Bathrooms,
		SquareFeet:   f.SquareFeet,
		YearBuilt:    f.YearBuilt,
	}
}

// Updates returns the column map for a partial update.
func (f *PropertyForm) Updates() map[string]any {
	return map[string]any{
		"address":       f.Address,
		"unit":          f.Unit,
		"city":          f.City,
		"state":         f.State,
		"zip_code":      f.ZipCode,
		"county":        f.County,
		"property_type": f.PropertyType,
		"bedrooms":      f.Bedrooms,
		"bathrooms":     f.Bathrooms,
		"square_feet":   f.SquareFeet,
		"year_built":    f.YearBuilt,
	}
}
