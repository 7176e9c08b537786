package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

// HandleStart sends visitors to their portal, or to the login page.
func HandleStart(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Redirect(uc.HomePath(), fiber.StatusSeeOther)
}

// HandlePortal renders the role portal shell with the dashboard counts. The
// sections under each portal root share the shell and load their data from
// the JSON API.
func HandlePortal(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	section := strings.Trim(c.Path(), "/")

	counts, err := statistics.Dashboard(GetServices().Repos, uc)
	if err != nil {
		log.Errorf("[Portal] Failed to load counts for %s: %v", uc.UserID, err)
	}

	return render(c, "portal/home", layoutFor(c, section, portalTitle(uc.Role)), fiber.Map{
		"Counts":   counts,
		"Statuses": statusRows(counts),
		"Section":  section,
	})
}

func portalTitle(role string) string {
	switch role {
	case models.ROLE_ADMIN:
		return "Admin console"
	case models.ROLE_CONTRACTOR:
		return "Job board"
	default:
		return "Dashboard"
	}
}

type statusRow struct {
	Title string
	Count int64
}

// statusRows lists case counts in workflow order.
func statusRows(counts models.DashboardCounts) []statusRow {
	rows := make([]statusRow, 0, len(counts.CasesByStatus))
	for _, s := range models.CaseStatuses() {
		if n, ok := counts.CasesByStatus[s]; ok {
			rows = append(rows, statusRow{Title: models.StatusInfo(s).Title, Count: n})
		}
	}
	return rows
}
