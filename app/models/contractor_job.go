package models

import "time"

// ContractorStatus is the posting-assignment axis of a case, independent of
// CaseStatus.
type ContractorStatus string

const (
	ContractorUnassigned ContractorStatus = "UNASSIGNED"
	ContractorAssigned   ContractorStatus = "ASSIGNED"
	ContractorInProgress ContractorStatus = "IN_PROGRESS"
	ContractorCompleted  ContractorStatus = "COMPLETED"
)

// IsValid reports whether s is a known contractor status.
func (s ContractorStatus) IsValid() bool {
	switch s {
	case ContractorUnassigned, ContractorAssigned, ContractorInProgress, ContractorCompleted:
		return true
	}
	return false
}

// ContractorJob is the job-board view of a legal case.
type ContractorJob struct {
	CaseID           string           `json:"case_id"`
	Address          string           `json:"address"`
	County           string           `json:"county"`
	TenantNames      []string         `json:"tenant_names"`
	CaseStatus       CaseStatus       `json:"case_status"`
	ContractorStatus ContractorStatus `json:"contractor_status"`
	ContractorID     string           `json:"contractor_id,omitempty"`
	AssignedAt       *time.Time       `json:"assigned_at,omitempty"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	CourtCaseNumber  string           `json:"court_case_number,omitempty"`
}

// JobFromCase projects a case (with Property and Tenant preloaded) onto the
// job board.
func JobFromCase(c *LegalCase) ContractorJob {
	job := ContractorJob{
		CaseID:           c.ID,
		CaseStatus:       c.Status,
		ContractorStatus: c.ContractorStatus,
		AssignedAt:       c.AssignedAt,
		CompletedAt:      c.ContractorCompletedAt,
		CourtCaseNumber:  c.CourtCaseNumber,
	}
	if c.ContractorID != nil {
		job.ContractorID = *c.ContractorID
	}
	if c.Property != nil {
		job.Address = c.Property.FullAddress()
		job.County = c.Property.County
	}
	if c.Tenant != nil {
		job.TenantNames = c.Tenant.TenantNames
	}
	return job
}
