package models

// DashboardCounts is the aggregate block shown on each portal home. Only the
// counts relevant to the viewer's role are populated.
type DashboardCounts struct {
	Properties     int64                      `json:"properties,omitempty"`
	Tenants        int64                      `json:"tenants,omitempty"`
	Cases          int64                      `json:"cases"`
	CasesByStatus  map[CaseStatus]int64       `json:"cases_by_status"`
	UnpaidCases    int64                      `json:"unpaid_cases,omitempty"`
	UsersByRole    map[string]int64           `json:"users_by_role,omitempty"`
	UnassignedJobs int64                      `json:"unassigned_jobs,omitempty"`
	LawFirms       int64                      `json:"law_firms,omitempty"`
	JobsByStatus   map[ContractorStatus]int64 `json:"jobs_by_status,omitempty"`
}
