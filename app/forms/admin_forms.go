package forms

import (
	"strings"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/viewmodel"
)

// ContractorForm creates a contractor account and profile.
type ContractorForm struct {
	Email       string `form:"email" json:"email" validate:"required,email,max=200"`
	Username    string `form:"username" json:"username" validate:"required,min=3,max=150"`
	FullName    string `form:"full_name" json:"full_name" validate:"required,max=200"`
	Phone       string `form:"phone" json:"phone" validate:"max=30"`
	CompanyName string `form:"company_name" json:"company_name" validate:"max=200"`
	Password    string `form:"password" json:"password" validate:"required,min=8,max=72"`
}

func (f *ContractorForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Username = strings.TrimSpace(f.Username)
	return result(check(f))
}

// ToAccount builds the contractor's auth identity. Call Validate first.
func (f *ContractorForm) ToAccount() (*models.Account, error) {
	return models.NewAccount(f.Email, f.Password, models.ROLE_CONTRACTOR, f.Username, strings.TrimSpace(f.FullName))
}

// ProfileUpdates returns the profile columns the account does not carry.
func (f *ContractorForm) ProfileUpdates() map[string]any {
	out := map[string]any{}
	if f.Phone != "" {
		out["phone"] = f.Phone
	}
	if f.CompanyName != "" {
		out["company_name"] = f.CompanyName
	}
	return out
}

// ProfileUpdateForm is a partial update: nil fields are left alone.
type ProfileUpdateForm struct {
	Username    *string `form:"username" json:"username" validate:"omitempty,min=3,max=150"`
	FullName    *string `form:"full_name" json:"full_name" validate:"omitempty,max=200"`
	Phone       *string `form:"phone" json:"phone" validate:"omitempty,max=30"`
	CompanyName *string `form:"company_name" json:"company_name" validate:"omitempty,max=200"`
	Role        *string `form:"role" json:"role" validate:"omitempty,oneof=admin landlord contractor"`
}

func (f *ProfileUpdateForm) Validate() error {
	return result(check(f))
}

// Updates returns only the columns that were supplied.
func (f *ProfileUpdateForm) Updates() map[string]any {
	out := map[string]any{}
	if f.Username != nil {
		out["username"] = strings.TrimSpace(*f.Username)
	}
	if f.FullName != nil {
		out["full_name"] = strings.TrimSpace(*f.FullName)
	}
	if f.Phone != nil {
		out["phone"] = *f.Phone
	}
	if f.CompanyName != nil {
		out["company_name"] = *f.CompanyName
	}
	if f.Role != nil {
		out["role"] = *f.Role
	}
	return out
}

type LawFirmForm struct {
	Name          string `form:"name" json:"name" validate:"required,max=200"`
	ContactName   string `form:"contact_name" json:"contact_name" validate:"max=200"`
	Email         string `form:"email" json:"email" validate:"omitempty,email,max=200"`
	Phone         string `form:"phone" json:"phone" validate:"max=30"`
	Address       string `form:"address" json:"address" validate:"max=255"`
	City          string `form:"city" json:"city" validate:"max=100"`
	State         string `form:"state" json:"state" validate:"omitempty,len=2"`
	ZipCode       string `form:"zip_code" json:"zip_code" validate:"max=10"`
	Website       string `form:"website" json:"website" validate:"omitempty,url,max=255"`
	Notes         string `form:"notes" json:"notes" validate:"max=5000"`
	ReferralCount int    `form:"referral_count" json:"referral_count" validate:"gte=0"`
	IsActive      *bool  `form:"is_active" json:"is_active"`
}

func (f *LawFirmForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	if f.State == "" {
		f.State = "MD"
	}
	return result(check(f))
}

func (f *LawFirmForm) active() bool {
	return f.IsActive == nil || *f.IsActive
}

func (f *LawFirmForm) ToModel() *models.LawFirm {
	return &models.LawFirm{
		Name:          f.Name,
		ContactName:   f.ContactName,
		Email:         f.Email,
		Phone:         f.Phone,
		Address:       f.Address,
		City:          f.City,
		State:         f.State,
		ZipCode:       f.ZipCode,
		Website:       f.Website,
		Notes:         f.Notes,
		ReferralCount: f.ReferralCount,
		IsActive:      f.active(),
	}
}

// Updates returns the column map for a partial update.
func (f *LawFirmForm) Updates() map[string]any {
	return map[string]any{
		"name":           f.Name,
		"contact_name":   f.ContactName,
		"email":          f.Email,
		"phone":          f.Phone,
		"address":        f.Address,
		"city":           f.City,
		"state":          f.State,
		"zip_code":       f.ZipCode,
		"website":        f.Website,
		"notes":          f.Notes,
		"referral_count": f.ReferralCount,
		"is_active":      f.active(),
	}
}

// DeleteConfirmationForm is posted by the admin delete dialog.
type DeleteConfirmationForm struct {
	Confirmation string `form:"confirmation" json:"confirmation"`
}

// Validate checks the typed text against "DELETE <username>" exactly.
func (f *DeleteConfirmationForm) Validate(username string) error {
	state := viewmodel.DeleteConfirmation(username, f.Confirmation)
	if !state.Enabled {
		return ValidationErrors{"confirmation": "must be exactly " + state.Required}
	}
	return nil
}
