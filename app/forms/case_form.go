package forms

import (
	"strings"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/money"
)

// CaseForm carries money in major units ("1500.00"). Validate converts them
// to cents exactly.
type CaseForm struct {
	PropertyID            string `form:"property_id" json:"property_id" validate:"required"`
	TenantID              string `form:"tenant_id" json:"tenant_id" validate:"required"`
	RentOwedAtFiling      string `form:"rent_owed_at_filing" json:"rent_owed_at_filing" validate:"required"`
	LateFees              string `form:"late_fees" json:"late_fees"`
	OtherFees             string `form:"other_fees" json:"other_fees"`
	CourtCaseNumber       string `form:"court_case_number" json:"court_case_number" validate:"max=100"`
	DistrictCourtLocation string `form:"district_court_location" json:"district_court_location" validate:"max=200"`
	CourtDate             string `form:"court_date" json:"court_date" validate:"omitempty,isodate"`
	TrialDate             string `form:"trial_date" json:"trial_date" validate:"omitempty,isodate"`
	EvictionDate          string `form:"eviction_date" json:"eviction_date" validate:"omitempty,isodate"`
	Notes                 string `form:"notes" json:"notes" validate:"max=5000"`

	cents caseCents
}

type caseCents struct {
	rent, late, other int64
}

func (f *CaseForm) Validate() error {
	f.CourtCaseNumber = strings.TrimSpace(f.CourtCaseNumber)
	errs := check(f)

	amounts := []struct {
		field string
		value string
		dst   *int64
	}{
		{"rent_owed_at_filing", f.RentOwedAtFiling, &f.cents.rent},
		{"late_fees", f.LateFees, &f.cents.late},
		{"other_fees", f.OtherFees, &f.cents.other},
	}
	for _, a := range amounts {
		if _, bad := errs[a.field]; bad {
			continue
		}
		cents, err := money.FromMajor(a.value)
		if err != nil || cents < 0 {
			errs.Add(a.field, "must be an amount like 1500.00")
			continue
		}
		*a.dst = cents
	}
	return result(errs)
}

// RentOwedCents is valid after a successful Validate.
func (f *CaseForm) RentOwedCents() int64 { return f.cents.rent }

// ToModel builds a new case for landlordID priced at price cents. Call
// Validate first.
func (f *CaseForm) ToModel(landlordID string, price int64) *models.LegalCase {
	court, _ := parseDate(f.CourtDate)
	trial, _ := parseDate(f.TrialDate)
	eviction, _ := parseDate(f.EvictionDate)
	return &models.LegalCase{
		LandlordID:            landlordID,
		PropertyID:            f.PropertyID,
		TenantID:              f.TenantID,
		Price:                 price,
		RentOwedAtFiling:      f.cents.rent,
		LateFees:              f.cents.late,
		OtherFees:             f.cents.other,
		CourtCaseNumber:       f.CourtCaseNumber,
		DistrictCourtLocation: f.DistrictCourtLocation,
		CourtDate:             court,
		TrialDate:             trial,
		EvictionDate:          eviction,
		Notes:                 f.Notes,
	}
}

// Updates returns the editable columns. Status, payment status and price
// are never part of a case edit.
func (f *CaseForm) Updates() map[string]any {
	c := f.ToModel("", 0)
	return map[string]any{
		"property_id":             c.PropertyID,
		"tenant_id":               c.TenantID,
		"rent_owed_at_filing":     c.RentOwedAtFiling,
		"late_fees":               c.LateFees,
		"other_fees":              c.OtherFees,
		"court_case_number":       c.CourtCaseNumber,
		"district_court_location": c.DistrictCourtLocation,
		"court_date":              c.CourtDate,
		"trial_date":              c.TrialDate,
		"eviction_date":           c.EvictionDate,
		"notes":                   c.Notes,
	}
}

// CaseFormFromModel initializes the edit form from a stored case, showing
// money in major units.
func CaseFormFromModel(c *models.LegalCase) CaseForm {
	return CaseForm{
		PropertyID:            c.PropertyID,
		TenantID:              c.TenantID,
		RentOwedAtFiling:      money.ToMajor(c.RentOwedAtFiling),
		LateFees:              money.ToMajor(c.LateFees),
		OtherFees:             money.ToMajor(c.OtherFees),
		CourtCaseNumber:       c.CourtCaseNumber,
		DistrictCourtLocation: c.DistrictCourtLocation,
		CourtDate:             formatDate(c.CourtDate),
		TrialDate:             formatDate(c.TrialDate),
		EvictionDate:          formatDate(c.EvictionDate),
		Notes:                 c.Notes,
	}
}

// TransitionForm requests a case status change.
type TransitionForm struct {
	To    string `form:"to" json:"to" validate:"required,case_status"`
	Notes string `form:"notes" json:"notes" validate:"max=2000"`
}

func (f *TransitionForm) Validate() error {
	f.Notes = strings.TrimSpace(f.Notes)
	return result(check(f))
}
