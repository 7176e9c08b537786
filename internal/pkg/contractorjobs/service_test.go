package contractorjobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/testutil"
)

func submittedCase(t *testing.T, f *testutil.Fixture) *models.LegalCase {
	t.Helper()
	c := f.NewCase(t)
	require.NoError(t, f.Repos.LegalCase.TransitionStatus(c.ID, models.CaseStatusNoticeDraft, models.CaseStatusSubmitted, &models.CaseStatusEvent{}))
	return c
}

func TestDraftsAreNotOnTheBoard(t *testing.T) {
	f := testutil.NewFixture(t)
	svc := NewService(f.Repos, nil)
	f.NewCase(t)

	jobs, total, err := svc.Available(repository.JobListOptions{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, jobs)
}

func TestContractorLifecycle(t *testing.T) {
	f := testutil.NewFixture(t)
	svc := NewService(f.Repos, nil)
	ctx := context.Background()
	c := submittedCase(t, f)
	actor := testutil.Actor(f.Contractor)

	open, total, err := svc.Available(repository.JobListOptions{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "100 N Charles St, Unit 4B, Baltimore, MD 21201", open[0].Address)
	assert.Equal(t, []string{"Ann Doe", "Bo Doe"}, open[0].TenantNames)

	// Cannot start before claiming
	_, err = svc.Start(ctx, actor, c.ID)
	assert.ErrorIs(t, err, ErrJobConflict)

	job, err := svc.Claim(ctx, actor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractorAssigned, job.ContractorStatus)
	assert.Equal(t, f.Contractor.ID, job.ContractorID)
	assert.NotNil(t, job.AssignedAt)

	job, err = svc.Start(ctx, actor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractorInProgress, job.ContractorStatus)

	job, err = svc.Complete(ctx, actor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractorCompleted, job.ContractorStatus)
	assert.NotNil(t, job.CompletedAt)

	// The court workflow axis is untouched
	stored, err := f.Repos.LegalCase.GetByID(repository.AdminScope(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusSubmitted, stored.Status)

	mine, _, err := svc.Mine(actor, repository.JobListOptions{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSecondClaimConflicts(t *testing.T) {
	f := testutil.NewFixture(t)
	svc := NewService(f.Repos, nil)
	ctx := context.Background()
	c := submittedCase(t, f)
	rival := testutil.CreateUser(t, f.Repos, "rita@example.com", "rita", models.ROLE_CONTRACTOR)

	_, err := svc.Claim(ctx, testutil.Actor(f.Contractor), c.ID)
	require.NoError(t, err)

	_, err = svc.Claim(ctx, testutil.Actor(rival), c.ID)
	assert.ErrorIs(t, err, ErrJobConflict)

	// Only the assignee can start it
	_, err = svc.Start(ctx, testutil.Actor(rival), c.ID)
	assert.ErrorIs(t, err, ErrJobConflict)
}

func TestAdminAssignAndUnassign(t *testing.T) {
	f := testutil.NewFixture(t)
	svc := NewService(f.Repos, nil)
	ctx := context.Background()
	c := submittedCase(t, f)

	_, err := svc.Assign(ctx, c.ID, f.Landlord.ID)
	assert.ErrorIs(t, err, ErrNotContractor)

	job, err := svc.Assign(ctx, c.ID, f.Contractor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractorAssigned, job.ContractorStatus)

	job, err = svc.Unassign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractorUnassigned, job.ContractorStatus)
	assert.Empty(t, job.ContractorID)
	assert.Nil(t, job.AssignedAt)

	_, err = svc.Unassign(ctx, c.ID)
	assert.ErrorIs(t, err, ErrJobConflict)

	_, err = svc.Assign(ctx, "missing", f.Contractor.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNonContractorsCannotWorkJobs(t *testing.T) {
	f := testutil.NewFixture(t)
	svc := NewService(f.Repos, nil)
	c := submittedCase(t, f)

	_, err := svc.Claim(context.Background(), testutil.Actor(f.Landlord), c.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, _, err = svc.Mine(testutil.Actor(f.Admin), repository.JobListOptions{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateContractorReturnsProfileAndQueuesWelcome(t *testing.T) {
	f := testutil.NewFixture(t)
	q := &testutil.RecordingQueue{}
	svc := NewService(f.Repos, q)

	account, err := models.NewAccount("new@example.com", "password123", models.ROLE_ADMIN, "newbie", "New Bee")
	require.NoError(t, err)

	profile, err := svc.CreateContractor(account)
	require.NoError(t, err)
	assert.Equal(t, models.ROLE_CONTRACTOR, profile.Role)
	assert.Equal(t, "newbie", profile.Username)

	stored, err := f.Repos.Contractor.GetByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)

	emails := q.OfType(jobqueue.JobTypeSendEmail)
	require.Len(t, emails, 1)
	assert.Equal(t, "new@example.com", emails[0]["to"])
}
