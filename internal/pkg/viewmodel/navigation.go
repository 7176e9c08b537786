package viewmodel

import "github.com/rentcourt/ftpr/app/models"

type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

var (
	landlordNav = []NavItem{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "Properties", Href: "/dashboard/properties"},
		{Label: "Tenants", Href: "/dashboard/tenants"},
		{Label: "Cases", Href: "/dashboard/cases"},
		{Label: "Documents", Href: "/dashboard/documents"},
	}
	adminNav = []NavItem{
		{Label: "Overview", Href: "/admin"},
		{Label: "Users", Href: "/admin/users"},
		{Label: "Contractors", Href: "/admin/contractors"},
		{Label: "Cases", Href: "/admin/cases"},
		{Label: "Jobs", Href: "/admin/jobs"},
		{Label: "Law Firms", Href: "/admin/law-firms"},
	}
	contractorNav = []NavItem{
		{Label: "My Jobs", Href: "/contractor"},
		{Label: "Available Jobs", Href: "/contractor/available"},
	}
)

// NavigationFor returns the sidebar entries for role. Unknown roles get the
// landlord navigation, matching profile provisioning.
func NavigationFor(role string) []NavItem {
	var src []NavItem
	switch role {
	case models.ROLE_ADMIN:
		src = adminNav
	case models.ROLE_CONTRACTOR:
		src = contractorNav
	default:
		src = landlordNav
	}
	out := make([]NavItem, len(src))
	copy(out, src)
	return out
}
