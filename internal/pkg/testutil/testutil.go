// Package testutil builds in-memory databases, Redis servers and seeded
// records for package tests.
package testutil

import (
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/database"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

const Password = "password123"

// NewDB opens a migrated in-memory SQLite database. One connection keeps
// every query on the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

// NewRedis starts a miniredis server and returns a client for it.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

// CreateUser creates an account and profile with Password.
func CreateUser(t *testing.T, repos *repository.Repositories, email, username, role string) *models.Profile {
	t.Helper()
	account, err := models.NewAccount(email, Password, role, username, "")
	require.NoError(t, err)
	profile, err := repos.Account.CreateWithProfile(account)
	require.NoError(t, err)
	return profile
}

// Fixture is one landlord with a property and tenant, a second landlord,
// an admin and a contractor.
type Fixture struct {
	Repos      *repository.Repositories
	Landlord   *models.Profile
	Other      *models.Profile
	Admin      *models.Profile
	Contractor *models.Profile
	Property   *models.Property
	Tenant     *models.Tenant
}

func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	repos := repository.NewRepositories(NewDB(t))
	f := &Fixture{Repos: repos}

	f.Landlord = CreateUser(t, repos, "lee@example.com", "lee", models.ROLE_LANDLORD)
	f.Other = CreateUser(t, repos, "max@example.com", "max", models.ROLE_LANDLORD)
	f.Admin = CreateUser(t, repos, "ada@example.com", "ada", models.ROLE_ADMIN)
	f.Contractor = CreateUser(t, repos, "cole@example.com", "cole", models.ROLE_CONTRACTOR)

	f.Property = &models.Property{Address: "100 N Charles St", Unit: "4B", City: "Baltimore", ZipCode: "21201", County: "Baltimore City", PropertyType: models.PROPERTY_APARTMENT}
	require.NoError(t, repos.Property.Create(f.LandlordScope(), f.Property))

	f.Tenant = &models.Tenant{PropertyID: f.Property.ID, TenantNames: []string{"Ann Doe", "Bo Doe"}, Email: "ann@example.com", RentAmount: 145000}
	require.NoError(t, repos.Tenant.Create(f.LandlordScope(), f.Tenant))
	return f
}

func (f *Fixture) LandlordScope() repository.Scope {
	return repository.NewScope(f.Landlord.ID, models.ROLE_LANDLORD)
}

// NewCase creates a notice draft for the fixture tenant.
func (f *Fixture) NewCase(t *testing.T) *models.LegalCase {
	t.Helper()
	c := &models.LegalCase{PropertyID: f.Property.ID, TenantID: f.Tenant.ID, Price: 35000, RentOwedAtFiling: 150000, LateFees: 7500}
	require.NoError(t, f.Repos.LegalCase.Create(f.LandlordScope(), c))
	return c
}

// Actor returns the request identity of p.
func Actor(p *models.Profile) usercontext.UserContext {
	return usercontext.UserContext{UserID: p.ID, Username: p.Username, Role: p.Role, IsLoggedIn: true}
}

// Enqueued is one recorded call to RecordingQueue.EnqueueJob.
type Enqueued struct {
	Type    jobqueue.JobType
	Payload map[string]interface{}
}

// RecordingQueue is a jobqueue.Enqueuer that keeps jobs in memory.
type RecordingQueue struct {
	mu   sync.Mutex
	Jobs []Enqueued
	Err  error
}

func (q *RecordingQueue) EnqueueJob(jobType jobqueue.JobType, payload map[string]interface{}) (*jobqueue.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return nil, q.Err
	}
	q.Jobs = append(q.Jobs, Enqueued{Type: jobType, Payload: payload})
	return &jobqueue.Job{Type: jobType, Payload: payload}, nil
}

// OfType returns the recorded payloads of one job type.
func (q *RecordingQueue) OfType(jobType jobqueue.JobType) []map[string]interface{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []map[string]interface{}
	for _, j := range q.Jobs {
		if j.Type == jobType {
			out = append(out, j.Payload)
		}
	}
	return out
}
