package casework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/testutil"
)

func newTestService(t *testing.T) (*Service, *testutil.Fixture, *testutil.RecordingQueue) {
	t.Helper()
	t.Setenv("ADMIN_NOTIFY_EMAIL", "intake@example.com")
	f := testutil.NewFixture(t)
	q := &testutil.RecordingQueue{}
	return NewService(f.Repos, q), f, q
}

func TestLandlordSubmitsDraft(t *testing.T) {
	svc, f, q := newTestService(t)
	c := f.NewCase(t)

	updated, err := svc.Transition(context.Background(), testutil.Actor(f.Landlord), c.ID, models.CaseStatusSubmitted, "  ready to file ")
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusSubmitted, updated.Status)
	assert.Equal(t, models.PAYMENT_UNPAID, updated.PaymentStatus)

	events, err := f.Repos.LegalCase.Events(f.LandlordScope(), c.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ready to file", events[0].Notes)
	assert.Equal(t, f.Landlord.ID, events[0].ActorID)

	archives := q.OfType(jobqueue.JobTypeArchiveDocument)
	assert.Len(t, archives, 3)
	emails := q.OfType(jobqueue.JobTypeSendEmail)
	require.Len(t, emails, 1)
	assert.Equal(t, "intake@example.com", emails[0]["to"])
}

func TestInvalidTransitionIsRejected(t *testing.T) {
	svc, f, q := newTestService(t)
	c := f.NewCase(t)

	_, err := svc.Transition(context.Background(), testutil.Actor(f.Admin), c.ID, models.CaseStatusComplete, "")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Empty(t, q.Jobs)

	stored, err := f.Repos.LegalCase.GetByID(repository.AdminScope(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusNoticeDraft, stored.Status)
}

func TestRoleGate(t *testing.T) {
	svc, f, _ := newTestService(t)
	ctx := context.Background()
	c := f.NewCase(t)

	_, err := svc.Transition(ctx, testutil.Actor(f.Contractor), c.ID, models.CaseStatusSubmitted, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Another landlord cannot see the case at all
	_, err = svc.Transition(ctx, testutil.Actor(f.Other), c.ID, models.CaseStatusSubmitted, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Transition(ctx, testutil.Actor(f.Landlord), c.ID, models.CaseStatusSubmitted, "")
	require.NoError(t, err)

	_, err = svc.Transition(ctx, testutil.Actor(f.Landlord), c.ID, models.CaseStatusInProgress, "")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Transition(ctx, testutil.Actor(f.Admin), c.ID, models.CaseStatusInProgress, "filed")
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusInProgress, updated.Status)
}

func TestTerminalStatusHasNoExit(t *testing.T) {
	svc, f, _ := newTestService(t)
	ctx := context.Background()
	c := f.NewCase(t)

	_, err := svc.Transition(ctx, testutil.Actor(f.Landlord), c.ID, models.CaseStatusCancelled, "tenant paid")
	require.NoError(t, err)

	for _, to := range models.CaseStatuses() {
		_, err := svc.Transition(ctx, testutil.Actor(f.Admin), c.ID, to, "")
		assert.ErrorIs(t, err, models.ErrInvalidTransition, "CANCELLED -> %s", to)
	}
}

func TestStaleTransitionConflicts(t *testing.T) {
	_, f, _ := newTestService(t)
	c := f.NewCase(t)

	// First session wins
	require.NoError(t, f.Repos.LegalCase.TransitionStatus(c.ID, models.CaseStatusNoticeDraft, models.CaseStatusSubmitted, &models.CaseStatusEvent{}))

	// Second session still believes the case is a draft
	err := f.Repos.LegalCase.TransitionStatus(c.ID, models.CaseStatusNoticeDraft, models.CaseStatusCancelled, &models.CaseStatusEvent{})
	assert.ErrorIs(t, err, ErrStatusConflict)

	stored, err := f.Repos.LegalCase.GetByID(repository.AdminScope(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusSubmitted, stored.Status)
}

func TestEnqueueFailureDoesNotUndoTransition(t *testing.T) {
	svc, f, q := newTestService(t)
	q.Err = errors.New("redis down")
	c := f.NewCase(t)

	updated, err := svc.Transition(context.Background(), testutil.Actor(f.Landlord), c.ID, models.CaseStatusSubmitted, "")
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusSubmitted, updated.Status)
}

func TestWorkflowFor(t *testing.T) {
	_, f, _ := newTestService(t)
	c := f.NewCase(t)

	assert.Len(t, WorkflowFor(testutil.Actor(f.Landlord), c).Actions, 2)
	assert.Empty(t, WorkflowFor(testutil.Actor(f.Contractor), c).Actions)
}
