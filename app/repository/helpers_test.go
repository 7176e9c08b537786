package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	repos    *Repositories
	landlord *models.Profile
	other    *models.Profile
	property *models.Property
	tenant   *models.Tenant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	repos := NewRepositories(db)
	f := &fixture{db: db, repos: repos}

	f.landlord = createUser(t, repos, "lee@example.com", "lee", models.ROLE_LANDLORD)
	f.other = createUser(t, repos, "max@example.com", "max", models.ROLE_LANDLORD)

	f.property = &models.Property{Address: "12 Elm St", City: "Towson", ZipCode: "21204", County: "Baltimore County", PropertyType: models.PROPERTY_TOWNHOUSE}
	require.NoError(t, repos.Property.Create(f.scope(), f.property))

	f.tenant = &models.Tenant{PropertyID: f.property.ID, TenantNames: []string{"Alice Johnson"}, Email: "alice@example.com", RentAmount: 145000}
	require.NoError(t, repos.Tenant.Create(f.scope(), f.tenant))
	return f
}

func (f *fixture) scope() Scope {
	return NewScope(f.landlord.ID, models.ROLE_LANDLORD)
}

func (f *fixture) otherScope() Scope {
	return NewScope(f.other.ID, models.ROLE_LANDLORD)
}

func (f *fixture) newCase(t *testing.T) *models.LegalCase {
	t.Helper()
	c := &models.LegalCase{PropertyID: f.property.ID, TenantID: f.tenant.ID, Price: 35000, RentOwedAtFiling: 150000}
	require.NoError(t, f.repos.LegalCase.Create(f.scope(), c))
	return c
}

func createUser(t *testing.T, repos *Repositories, email, username, role string) *models.Profile {
	t.Helper()
	account, err := models.NewAccount(email, "password123", role, username, "")
	require.NoError(t, err)
	profile, err := repos.Account.CreateWithProfile(account)
	require.NoError(t, err)
	return profile
}
