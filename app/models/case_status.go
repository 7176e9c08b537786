package models

import "errors"

// CaseStatus is the court workflow state of a legal case.
type CaseStatus string

const (
	CaseStatusNoticeDraft CaseStatus = "NOTICE_DRAFT"
	CaseStatusSubmitted   CaseStatus = "SUBMITTED"
	CaseStatusInProgress  CaseStatus = "IN_PROGRESS"
	CaseStatusComplete    CaseStatus = "COMPLETE"
	CaseStatusCancelled   CaseStatus = "CANCELLED"
)

// ErrInvalidTransition is returned for a (from, to) pair outside the table.
var ErrInvalidTransition = errors.New("status transition not allowed")

// StatusDetails describes a status for display.
type StatusDetails struct {
	Status      CaseStatus `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

var caseStatusTable = map[CaseStatus]struct {
	title       string
	description string
	next        []CaseStatus
}{
	CaseStatusNoticeDraft: {
		title:       "Notice Draft",
		description: "The case has been created and the notice is being prepared.",
		next:        []CaseStatus{CaseStatusSubmitted, CaseStatusCancelled},
	},
	CaseStatusSubmitted: {
		title:       "Submitted",
		description: "The case has been submitted for filing with the District Court.",
		next:        []CaseStatus{CaseStatusInProgress, CaseStatusCancelled},
	},
	CaseStatusInProgress: {
		title:       "In Progress",
		description: "The case is filed and moving through the court process.",
		next:        []CaseStatus{CaseStatusComplete, CaseStatusCancelled},
	},
	CaseStatusComplete: {
		title:       "Complete",
		description: "The case has been resolved.",
	},
	CaseStatusCancelled: {
		title:       "Cancelled",
		description: "The case was withdrawn before completion.",
	},
}

// CaseStatuses returns every status in workflow order.
func CaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusNoticeDraft,
		CaseStatusSubmitted,
		CaseStatusInProgress,
		CaseStatusComplete,
		CaseStatusCancelled,
	}
}

// IsValid reports whether s is a known status.
func (s CaseStatus) IsValid() bool {
	_, ok := caseStatusTable[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s CaseStatus) IsTerminal() bool {
	return len(AllowedTransitions(s)) == 0
}

// AllowedTransitions is a static lookup; it returns a fresh slice so callers
// cannot mutate the table.
func AllowedTransitions(from CaseStatus) []CaseStatus {
	entry, ok := caseStatusTable[from]
	if !ok {
		return nil
	}
	out := make([]CaseStatus, len(entry.next))
	copy(out, entry.next)
	return out
}

// CanTransition reports whether (from, to) is in the table.
func CanTransition(from, to CaseStatus) bool {
	for _, s := range AllowedTransitions(from) {
		if s == to {
			return true
		}
	}
	return false
}

// StatusInfo returns the title and description of s.
func StatusInfo(s CaseStatus) StatusDetails {
	entry, ok := caseStatusTable[s]
	if !ok {
		return StatusDetails{Status: s, Title: string(s)}
	}
	return StatusDetails{Status: s, Title: entry.title, Description: entry.description}
}
