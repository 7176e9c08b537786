package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedTransitionsTable(t *testing.T) {
	tests := []struct {
		from CaseStatus
		want []CaseStatus
	}{
		{CaseStatusNoticeDraft, []CaseStatus{CaseStatusSubmitted, CaseStatusCancelled}},
		{CaseStatusSubmitted, []CaseStatus{CaseStatusInProgress, CaseStatusCancelled}},
		{CaseStatusInProgress, []CaseStatus{CaseStatusComplete, CaseStatusCancelled}},
		{CaseStatusComplete, []CaseStatus{}},
		{CaseStatusCancelled, []CaseStatus{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, AllowedTransitions(tt.from))
		})
	}
}

func TestCanTransitionRejectsEveryPairOutsideTable(t *testing.T) {
	allowed := map[[2]CaseStatus]bool{
		{CaseStatusNoticeDraft, CaseStatusSubmitted}: true,
		{CaseStatusNoticeDraft, CaseStatusCancelled}: true,
		{CaseStatusSubmitted, CaseStatusInProgress}:  true,
		{CaseStatusSubmitted, CaseStatusCancelled}:   true,
		{CaseStatusInProgress, CaseStatusComplete}:   true,
		{CaseStatusInProgress, CaseStatusCancelled}:  true,
	}

	for _, from := range CaseStatuses() {
		for _, to := range CaseStatuses() {
			assert.Equal(t, allowed[[2]CaseStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, CaseStatusComplete.IsTerminal())
	assert.True(t, CaseStatusCancelled.IsTerminal())
	assert.False(t, CaseStatusNoticeDraft.IsTerminal())
	assert.Empty(t, AllowedTransitions(CaseStatus("BOGUS")))
	assert.False(t, CaseStatus("BOGUS").IsValid())
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	got := AllowedTransitions(CaseStatusNoticeDraft)
	got[0] = CaseStatusComplete

	assert.Equal(t, CaseStatusSubmitted, AllowedTransitions(CaseStatusNoticeDraft)[0])
}

func TestStatusInfo(t *testing.T) {
	info := StatusInfo(CaseStatusSubmitted)
	assert.Equal(t, "Submitted", info.Title)
	assert.NotEmpty(t, info.Description)

	unknown := StatusInfo(CaseStatus("X"))
	assert.Equal(t, "X", unknown.Title)
}

func TestProfileFromAccount(t *testing.T) {
	p := ProfileFromAccount(&Account{ID: "a1", Email: "jane@example.com", MetadataRole: "superuser"})
	assert.Equal(t, ROLE_LANDLORD, p.Role)
	assert.Equal(t, "jane", p.Username)
	assert.Equal(t, "a1", p.ID)

	p = ProfileFromAccount(&Account{ID: "a2", Email: "bob@example.com", MetadataRole: ROLE_CONTRACTOR, MetadataUsername: "bobposts"})
	assert.Equal(t, ROLE_CONTRACTOR, p.Role)
	assert.Equal(t, "bobposts", p.Username)
}
