package casework

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rentcourt/ftpr/app/models"
)

func targets(w Workflow) []models.CaseStatus {
	out := make([]models.CaseStatus, 0, len(w.Actions))
	for _, a := range w.Actions {
		out = append(out, a.To)
	}
	return out
}

func TestBuildWorkflowOffersOnlyAllowedTransitions(t *testing.T) {
	for _, s := range models.CaseStatuses() {
		t.Run(string(s), func(t *testing.T) {
			w := BuildWorkflow(s, false)
			assert.ElementsMatch(t, models.AllowedTransitions(s), targets(w))
			assert.Equal(t, s.IsTerminal(), w.Terminal)
			assert.Equal(t, models.StatusInfo(s), w.Current)
		})
	}
}

func TestBuildWorkflowDisabled(t *testing.T) {
	w := BuildWorkflow(models.CaseStatusNoticeDraft, true)
	assert.Empty(t, w.Actions)
	assert.NotNil(t, w.Actions)
	assert.Len(t, w.Steps, 4)
}

func TestProgressSteps(t *testing.T) {
	tests := []struct {
		status models.CaseStatus
		want   []string
	}{
		{models.CaseStatusNoticeDraft, []string{StepCurrent, StepUpcoming, StepUpcoming, StepUpcoming}},
		{models.CaseStatusSubmitted, []string{StepComplete, StepCurrent, StepUpcoming, StepUpcoming}},
		{models.CaseStatusInProgress, []string{StepComplete, StepComplete, StepCurrent, StepUpcoming}},
		{models.CaseStatusComplete, []string{StepComplete, StepComplete, StepComplete, StepComplete}},
		{models.CaseStatusCancelled, []string{StepCancelled, StepCancelled, StepCancelled, StepCancelled}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			w := BuildWorkflow(tt.status, false)
			got := make([]string, len(w.Steps))
			for i, s := range w.Steps {
				got[i] = s.State
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionPrompts(t *testing.T) {
	w := BuildWorkflow(models.CaseStatusNoticeDraft, false)
	assert.Equal(t, "Submit case", w.Actions[0].Label)
	assert.Equal(t, "Move this case from Notice Draft to Submitted?", w.Actions[0].Prompt)
	assert.False(t, w.Actions[0].Destructive)
	assert.Equal(t, "Cancel case", w.Actions[1].Label)
	assert.True(t, w.Actions[1].Destructive)
}

func TestMayTransition(t *testing.T) {
	for _, from := range models.CaseStatuses() {
		for _, to := range models.CaseStatuses() {
			allowed := models.CanTransition(from, to)
			assert.Equal(t, allowed, MayTransition(models.ROLE_ADMIN, from, to), "admin %s -> %s", from, to)
			assert.False(t, MayTransition(models.ROLE_CONTRACTOR, from, to), "contractor %s -> %s", from, to)
		}
	}

	assert.True(t, MayTransition(models.ROLE_LANDLORD, models.CaseStatusNoticeDraft, models.CaseStatusSubmitted))
	assert.True(t, MayTransition(models.ROLE_LANDLORD, models.CaseStatusNoticeDraft, models.CaseStatusCancelled))
	assert.True(t, MayTransition(models.ROLE_LANDLORD, models.CaseStatusSubmitted, models.CaseStatusCancelled))
	assert.False(t, MayTransition(models.ROLE_LANDLORD, models.CaseStatusSubmitted, models.CaseStatusInProgress))
	assert.False(t, MayTransition(models.ROLE_LANDLORD, models.CaseStatusInProgress, models.CaseStatusCancelled))
}

func TestActionsForFiltersByRole(t *testing.T) {
	w := ActionsFor(models.CaseStatusSubmitted, func(from, to models.CaseStatus) bool {
		return MayTransition(models.ROLE_LANDLORD, from, to)
	})
	assert.Equal(t, []models.CaseStatus{models.CaseStatusCancelled}, targets(w))
}
