package statistics

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/cache"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

const (
	// CacheKeyGeneration is bumped on every write so stale dashboards are
	// never read again; they expire on their own.
	CacheKeyGeneration = "statistics:generation"
	CacheKeyDashboard  = "statistics:g%d:dashboard:%s"
	CacheExpiration    = 2 * time.Minute
)

// Dashboard returns the counts for the actor's portal home, from cache
// when possible. A cache outage falls back to the database.
func Dashboard(repos *repository.Repositories, actor usercontext.UserContext) (models.DashboardCounts, error) {
	key := dashboardKey(actor)

	if val, err := cache.Get(key); err == nil {
		var counts models.DashboardCounts
		if err := json.Unmarshal([]byte(val), &counts); err == nil {
			return counts, nil
		}
	} else if !cache.IsMiss(err) {
		log.Warnf("[Statistics] Cache read failed: %v", err)
	}

	counts, err := Compute(repos, actor)
	if err != nil {
		return models.DashboardCounts{}, err
	}
	if data, err := json.Marshal(counts); err == nil {
		if err := cache.Set(key, data, CacheExpiration); err != nil {
			log.Warnf("[Statistics] Cache write failed: %v", err)
		}
	}
	return counts, nil
}

// Invalidate drops every cached dashboard.
func Invalidate() {
	if err := cache.GetClient().Incr(cache.Context(), CacheKeyGeneration).Err(); err != nil {
		log.Warnf("[Statistics] Cache invalidation failed: %v", err)
	}
}

func dashboardKey(actor usercontext.UserContext) string {
	gen, err := cache.GetInt(CacheKeyGeneration)
	if err != nil {
		gen = 0
	}
	who := actor.Role + ":" + actor.UserID
	if actor.IsAdmin() {
		who = models.ROLE_ADMIN
	}
	return fmt.Sprintf(CacheKeyDashboard, gen, who)
}

// Compute reads the counts straight from the database.
func Compute(repos *repository.Repositories, actor usercontext.UserContext) (models.DashboardCounts, error) {
	var counts models.DashboardCounts
	var err error

	switch {
	case actor.IsAdmin():
		scope := repository.AdminScope()
		if counts.CasesByStatus, err = repos.LegalCase.CountByStatus(scope); err != nil {
			return counts, err
		}
		if counts.UsersByRole, err = repos.Profile.CountByRole(); err != nil {
			return counts, err
		}
		if counts.UnassignedJobs, err = repos.ContractorJob.CountOpen(); err != nil {
			return counts, err
		}
		if counts.LawFirms, err = repos.LawFirm.Count(); err != nil {
			return counts, err
		}
		if counts.UnpaidCases, err = repos.LegalCase.CountUnpaid(scope); err != nil {
			return counts, err
		}
	case actor.IsContractor():
		if counts.JobsByStatus, err = repos.ContractorJob.CountByStatus(actor.UserID); err != nil {
			return counts, err
		}
		// the contractor's own rows never include unassigned jobs
		delete(counts.JobsByStatus, models.ContractorUnassigned)
		if counts.UnassignedJobs, err = repos.ContractorJob.CountOpen(); err != nil {
			return counts, err
		}
		counts.CasesByStatus = map[models.CaseStatus]int64{}
	case actor.IsLandlord():
		scope := repository.NewScope(actor.UserID, actor.Role)
		if counts.Properties, err = repos.Property.Count(scope); err != nil {
			return counts, err
		}
		if counts.Tenants, err = repos.Tenant.Count(scope); err != nil {
			return counts, err
		}
		if counts.CasesByStatus, err = repos.LegalCase.CountByStatus(scope); err != nil {
			return counts, err
		}
		if counts.UnpaidCases, err = repos.LegalCase.CountUnpaid(scope); err != nil {
			return counts, err
		}
	default:
		counts.CasesByStatus = map[models.CaseStatus]int64{}
	}

	for _, n := range counts.CasesByStatus {
		counts.Cases += n
	}
	return counts, nil
}
