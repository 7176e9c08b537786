package forms

import (
	"strings"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/money"
)

type TenantForm struct {
	PropertyID     string   `form:"property_id" json:"property_id" validate:"required"`
	TenantNames    []string `form:"tenant_names" json:"tenant_names" validate:"required,min=1,dive,required,max=200"`
	Email          string   `form:"email" json:"email" validate:"omitempty,email,max=200"`
	Phone          string   `form:"phone" json:"phone" validate:"max=30"`
	LeaseStartDate string   `form:"lease_start_date" json:"lease_start_date" validate:"omitempty,isodate"`
	LeaseEndDate   string   `form:"lease_end_date" json:"lease_end_date" validate:"omitempty,isodate"`
	RentAmount     string   `form:"rent_amount" json:"rent_amount" validate:"required"`
	IsSubsidized   bool     `form:"is_subsidized" json:"is_subsidized"`
	SubsidyType    string   `form:"subsidy_type" json:"subsidy_type" validate:"required_if=IsSubsidized true,max=100"`

	rentCents int64
}

func (f *TenantForm) Validate() error {
	names := make([]string, 0, len(f.TenantNames))
	for _, n := range f.TenantNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	f.TenantNames = names
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))

	errs := check(f)
	if _, bad := errs["rent_amount"]; !bad {
		cents, err := money.FromMajor(f.RentAmount)
		if err != nil || cents < 0 {
			errs.Add("rent_amount", "must be an amount like 1500.00")
		}
		f.rentCents = cents
	}
	if f.LeaseStartDate != "" && f.LeaseEndDate != "" && f.LeaseEndDate < f.LeaseStartDate {
		errs.Add("lease_end_date", "must not be before the lease start date")
	}
	return result(errs)
}

// ToModel builds a tenant owned by landlordID. Call Validate first.
func (f *TenantForm) ToModel(landlordID string) *models.Tenant {
	start, _ := parseDate(f.LeaseStartDate)
	end, _ := parseDate(f.LeaseEndDate)
	return &models.Tenant{
		PropertyID:     f.PropertyID,
		LandlordID:     landlordID,
		TenantNames:    f.TenantNames,
		Email:          f.Email,
		Phone:          f.Phone,
		LeaseStartDate: start,
		LeaseEndDate:   end,
		RentAmount:     f.rentCents,
		IsSubsidized:   f.IsSubsidized,
		SubsidyType:    f.SubsidyType,
	}
}

// Updates returns the column map for a partial update.
func (f *TenantForm) Updates() map[string]any {
	t := f.ToModel("")
	return map[string]any{
		"property_id":      t.PropertyID,
		"tenant_names":     t.TenantNames,
		"email":            t.Email,
		"phone":            t.Phone,
		"lease_start_date": t.LeaseStartDate,
		"lease_end_date":   t.LeaseEndDate,
		"rent_amount":      t.RentAmount,
		"is_subsidized":    t.IsSubsidized,
		"subsidy_type":     t.SubsidyType,
	}
}

// TenantFormFromModel prepares the edit form, rendering rent in major units.
func TenantFormFromModel(t *models.Tenant) TenantForm {
	return TenantForm{
		PropertyID:     t.PropertyID,
		TenantNames:    append([]string(nil), t.TenantNames...),
		Email:          t.Email,
		Phone:          t.Phone,
		LeaseStartDate: formatDate(t.LeaseStartDate),
		LeaseEndDate:   formatDate(t.LeaseEndDate),
		RentAmount:     money.ToMajor(t.RentAmount),
		IsSubsidized:   t.IsSubsidized,
		SubsidyType:    t.SubsidyType,
	}
}
