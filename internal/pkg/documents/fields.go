package documents

import (
	"strings"
	"time"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/money"
)

const dateLayout = "January 2, 2006"

// Fields are the values substituted into a template. Zero values render as
// blank lines for hand completion.
type Fields struct {
	CaseID          string
	CourtCaseNumber string
	DistrictCourt   string
	County          string
	NoticeDate      string
	EvictionDate    string
	LandlordName    string
	LandlordCompany string
	LandlordPhone   string
	LandlordEmail   string
	TenantNames     []string
	PremisesLine1   string
	PremisesLine2   string
	AmountOwed      string
}

// IsBlank reports whether no case data has been filled in.
func (f Fields) IsBlank() bool {
	return f.CaseID == ""
}

// Tenants joins the tenant names for single-line display.
func (f Fields) Tenants() string {
	return strings.Join(f.TenantNames, ", ")
}

// FieldsFromCase collects template fields from a case with Property and
// Tenant loaded, the landlord profile, and the date the notice is issued.
func FieldsFromCase(c *models.LegalCase, landlord *models.Profile, issued time.Time) Fields {
	f := Fields{
		CaseID:          c.ID,
		CourtCaseNumber: c.CourtCaseNumber,
		DistrictCourt:   c.DistrictCourtLocation,
		NoticeDate:      issued.Format(dateLayout),
		AmountOwed:      money.Format(c.TotalOwed()),
	}
	if c.EvictionDate != nil {
		f.EvictionDate = c.EvictionDate.Format(dateLayout)
	}
	if landlord != nil {
		f.LandlordName = landlord.DisplayName()
		f.LandlordCompany = landlord.CompanyName
		f.LandlordPhone = landlord.Phone
		f.LandlordEmail = landlord.Email
	}
	if p := c.Property; p != nil {
		f.County = p.County
		f.PremisesLine1 = p.Address
		if p.Unit != "" {
			f.PremisesLine1 += ", Unit " + p.Unit
		}
		f.PremisesLine2 = strings.TrimSpace(p.City + ", " + p.State + " " + p.ZipCode)
	}
	if t := c.Tenant; t != nil {
		f.TenantNames = append([]string(nil), t.TenantNames...)
	}
	return f
}

// RenderCase renders t for a case. The notice date is the case's creation
// date so repeated downloads of the same case produce identical files.
func RenderCase(t Template, c *models.LegalCase, landlord *models.Profile) ([]byte, error) {
	return Render(t, FieldsFromCase(c, landlord, c.CreatedAt))
}
