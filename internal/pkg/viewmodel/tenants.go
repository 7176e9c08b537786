package viewmodel

import (
	"fmt"
	"strings"

	"github.com/rentcourt/ftpr/app/models"
)

const EmptyTenantsMessage = "You have not added any tenants yet."

// TenantList is a filtered tenant table. EmptyMessage is set only when
// Items is empty.
type TenantList struct {
	Query        string          `json:"query"`
	Items        []models.Tenant `json:"items"`
	Total        int             `json:"total"`
	EmptyMessage string          `json:"empty_message,omitempty"`
}

// NoMatchMessage is shown when a query filters every tenant out.
func NoMatchMessage(q string) string {
	return fmt.Sprintf("No tenants match %q.", q)
}

// FilterTenants keeps tenants where q is a case-insensitive substring of any
// tenant name, the email, or the property address. Tenants should have
// Property loaded for address matching.
func FilterTenants(tenants []models.Tenant, q string) TenantList {
	q = strings.TrimSpace(q)
	list := TenantList{Query: q, Total: len(tenants), Items: []models.Tenant{}}

	if q == "" {
		list.Items = append(list.Items, tenants...)
	} else {
		needle := strings.ToLower(q)
		for _, t := range tenants {
			if tenantMatches(t, needle) {
				list.Items = append(list.Items, t)
			}
		}
	}

	if len(list.Items) == 0 {
		if len(tenants) == 0 {
			list.EmptyMessage = EmptyTenantsMessage
		} else {
			list.EmptyMessage = NoMatchMessage(q)
		}
	}
	return list
}

func tenantMatches(t models.Tenant, needle string) bool {
	for _, name := range t.TenantNames {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(t.Email), needle) {
		return true
	}
	if t.Property != nil && strings.Contains(strings.ToLower(t.Property.FullAddress()), needle) {
		return true
	}
	return false
}
