package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

func TestScopeHidesOtherLandlordsRecords(t *testing.T) {
	f := newFixture(t)

	_, err := f.repos.Property.GetByID(f.otherScope(), f.property.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	props, total, err := f.repos.Property.List(f.otherScope(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, props)
	assert.Zero(t, total)

	props, total, err = f.repos.Property.List(AdminScope(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, props, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = f.repos.Tenant.List(Scope{}, ListOptions{})
	require.NoError(t, err)
}

func TestSingleReadsNeverReturnNilNil(t *testing.T) {
	f := newFixture(t)

	p, err := f.repos.Profile.GetByID("missing")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := f.repos.LegalCase.GetByID(f.scope(), "missing")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNotFound)

	firm, err := f.repos.LawFirm.GetByID("missing")
	assert.Nil(t, firm)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTenantCreateRequiresOwnedProperty(t *testing.T) {
	f := newFixture(t)

	err := f.repos.Tenant.Create(f.otherScope(), &models.Tenant{PropertyID: f.property.ID, TenantNames: []string{"X"}})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestTenantSearchAndUpdateNames(t *testing.T) {
	f := newFixture(t)

	tenants, total, err := f.repos.Tenant.List(f.scope(), ListOptions{Search: "ALICE"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tenants, 1)
	require.NotNil(t, tenants[0].Property)
	assert.Equal(t, "12 Elm St", tenants[0].Property.Address)

	updated, err := f.repos.Tenant.Update(f.scope(), f.tenant.ID, map[string]any{
		"tenant_names": []string{"Alice Johnson", "Mark Johnson"},
		"phone":        "410-555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Johnson", "Mark Johnson"}, updated.TenantNames)
	assert.Equal(t, "410-555-0100", updated.Phone)

	tenants, _, err = f.repos.Tenant.List(f.scope(), ListOptions{Search: "mark"})
	require.NoError(t, err)
	assert.Len(t, tenants, 1)
}

func TestCaseLifecycle(t *testing.T) {
	f := newFixture(t)
	c := f.newCase(t)

	assert.Equal(t, models.CaseStatusNoticeDraft, c.Status)
	assert.Equal(t, models.PAYMENT_UNPAID, c.PaymentStatus)
	assert.Equal(t, f.landlord.ID, c.LandlordID)

	updated, err := f.repos.LegalCase.Update(f.scope(), c.ID, map[string]any{"late_fees": int64(5000), "status": "COMPLETE"})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), updated.LateFees)
	assert.Equal(t, models.CaseStatusNoticeDraft, updated.Status)

	err = f.repos.LegalCase.TransitionStatus(c.ID, models.CaseStatusNoticeDraft, models.CaseStatusSubmitted, &models.CaseStatusEvent{ActorID: f.landlord.ID, Notes: "filed"})
	require.NoError(t, err)

	_, err = f.repos.LegalCase.Update(f.scope(), c.ID, map[string]any{"late_fees": int64(1)})
	assert.ErrorIs(t, err, models.ErrCaseLocked)

	err = f.repos.LegalCase.TransitionStatus(c.ID, models.CaseStatusNoticeDraft, models.CaseStatusCancelled, &models.CaseStatusEvent{})
	assert.ErrorIs(t, err, ErrConflict)

	events, err := f.repos.LegalCase.Events(f.scope(), c.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "filed", events[0].Notes)
	assert.Equal(t, models.CaseStatusSubmitted, events[0].ToStatus)

	counts, err := f.repos.LegalCase.CountByStatus(f.scope())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.CaseStatusSubmitted])
	assert.Equal(t, int64(0), counts[models.CaseStatusNoticeDraft])
}

func TestPaymentStatusIsIndependentOfCaseStatus(t *testing.T) {
	f := newFixture(t)
	c := f.newCase(t)

	require.NoError(t, f.repos.LegalCase.SetPaymentStatus(c.ID, models.PAYMENT_PAID, "pi_123"))

	got, err := f.repos.LegalCase.GetByID(f.scope(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PAYMENT_PAID, got.PaymentStatus)
	assert.Equal(t, "pi_123", got.PaymentIntentID)
	assert.Equal(t, models.CaseStatusNoticeDraft, got.Status)

	unpaid, err := f.repos.LegalCase.CountUnpaid(f.scope())
	require.NoError(t, err)
	assert.Zero(t, unpaid)
}

func TestPropertyCountyLockedOnceCased(t *testing.T) {
	f := newFixture(t)

	_, err := f.repos.Property.Update(f.scope(), f.property.ID, map[string]any{"county": "Howard County"})
	require.NoError(t, err)

	f.newCase(t)
	_, err = f.repos.Property.Update(f.scope(), f.property.ID, map[string]any{"county": "Baltimore City"})
	assert.ErrorIs(t, err, models.ErrCountyLocked)

	p, err := f.repos.Property.Update(f.scope(), f.property.ID, map[string]any{"unit": "2", "county": "howard county"})
	require.NoError(t, err)
	assert.Equal(t, "2", p.Unit)
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	c := f.newCase(t)

	require.NoError(t, f.repos.Profile.Delete(f.landlord.ID))

	_, err := f.repos.LegalCase.GetByID(AdminScope(), c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.repos.Tenant.GetByID(AdminScope(), f.tenant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.repos.Account.GetByID(f.landlord.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.repos.Profile.Delete(f.landlord.ID), ErrNotFound)
}

func TestContractorRepository(t *testing.T) {
	f := newFixture(t)

	account, err := models.NewAccount("crew@example.com", "password123", models.ROLE_LANDLORD, "crew", "Crew Member")
	require.NoError(t, err)
	profile, err := f.repos.Contractor.Create(account)
	require.NoError(t, err)
	assert.Equal(t, models.ROLE_CONTRACTOR, profile.Role)
	assert.Equal(t, "Crew Member", profile.FullName)

	list, total, err := f.repos.Contractor.List(ListOptions{Search: "crew"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, profile.ID, list[0].ID)

	_, err = f.repos.Contractor.GetByID(f.landlord.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := f.repos.Contractor.Update(profile.ID, map[string]any{"phone": "555", "role": models.ROLE_ADMIN})
	require.NoError(t, err)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, models.ROLE_CONTRACTOR, updated.Role)

	roles, err := f.repos.Profile.CountByRole()
	require.NoError(t, err)
	assert.Equal(t, int64(2), roles[models.ROLE_LANDLORD])
	assert.Equal(t, int64(1), roles[models.ROLE_CONTRACTOR])
}

func TestLawFirmRepository(t *testing.T) {
	f := newFixture(t)

	firm := &models.LawFirm{Name: "Chesapeake Legal", City: "Annapolis", IsActive: false}
	require.NoError(t, f.repos.LawFirm.Create(firm))

	got, err := f.repos.LawFirm.GetByID(firm.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	list, _, err := f.repos.LawFirm.List(ListOptions{Search: "annap", Status: "inactive"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.repos.LawFirm.Delete(firm.ID))
	assert.ErrorIs(t, f.repos.LawFirm.Delete(firm.ID), ErrNotFound)
}

func TestPaymentEventDedupe(t *testing.T) {
	f := newFixture(t)

	created, err := f.repos.PaymentEvent.CreateIfNotExists(&models.PaymentWebhookEvent{ProviderEventID: "evt_1", EventType: "x", PayloadJSON: "{}"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.repos.PaymentEvent.CreateIfNotExists(&models.PaymentWebhookEvent{ProviderEventID: "evt_1", EventType: "x", PayloadJSON: "{}"})
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, f.repos.PaymentEvent.MarkProcessed("evt_1", nil))

	// Processed events stay; unprocessed ones can be released for redelivery.
	require.NoError(t, f.repos.PaymentEvent.Release("evt_1"))
	created, err = f.repos.PaymentEvent.CreateIfNotExists(&models.PaymentWebhookEvent{ProviderEventID: "evt_1", EventType: "x", PayloadJSON: "{}"})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = f.repos.PaymentEvent.CreateIfNotExists(&models.PaymentWebhookEvent{ProviderEventID: "evt_2", EventType: "x", PayloadJSON: "{}"})
	require.NoError(t, err)
	require.NoError(t, f.repos.PaymentEvent.Release("evt_2"))
	created, err = f.repos.PaymentEvent.CreateIfNotExists(&models.PaymentWebhookEvent{ProviderEventID: "evt_2", EventType: "x", PayloadJSON: "{}"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestListOptionsNormalized(t *testing.T) {
	o := ListOptions{Offset: -3, Limit: 1000, Search: "  q "}.Normalized()
	assert.Equal(t, 0, o.Offset)
	assert.Equal(t, maxLimit, o.Limit)
	assert.Equal(t, "q", o.Search)
	assert.Equal(t, defaultLimit, ListOptions{}.Normalized().Limit)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repos.LawFirm.Create(&models.LawFirm{Name: "Chesapeake Legal", City: "Annapolis", IsActive: true}))
	require.NoError(t, f.repos.LawFirm.Create(&models.LawFirm{Name: "Bay_Side 100% Law", City: "Easton", IsActive: true}))

	for _, q := range []string{"_", "%", "100%", "bay_"} {
		list, total, err := f.repos.LawFirm.List(ListOptions{Search: q})
		require.NoError(t, err, q)
		assert.Equal(t, int64(1), total, q)
		require.Len(t, list, 1, q)
		assert.Equal(t, "Bay_Side 100% Law", list[0].Name, q)
	}

	list, _, err := f.repos.LawFirm.List(ListOptions{Search: "!"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCaseUpdateLosesRaceToSubmit(t *testing.T) {
	f := newFixture(t)
	c := f.newCase(t)

	// Submit the case between the editability check and the write.
	submitted := false
	require.NoError(t, f.db.Callback().Update().Before("gorm:update").Register("test:submit_first", func(db *gorm.DB) {
		if submitted || db.Statement.Table != "legal_cases" {
			return
		}
		submitted = true
		db.Session(&gorm.Session{NewDB: true}).Exec("UPDATE legal_cases SET status = ? WHERE id = ?", models.CaseStatusSubmitted, c.ID)
	}))

	_, err := f.repos.LegalCase.Update(f.scope(), c.ID, map[string]any{"late_fees": int64(900)})
	assert.ErrorIs(t, err, models.ErrCaseLocked)

	got, err := f.repos.LegalCase.GetByID(f.scope(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LateFees)
	assert.Equal(t, models.CaseStatusSubmitted, got.Status)
}
