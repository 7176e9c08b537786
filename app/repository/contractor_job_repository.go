package repository

import (
	"gorm.io/gorm"

	"github.com/rentcourt/ftpr/app/models"
)

// JobListOptions filters the job board. Open restricts to unassigned jobs
// whose case is active.
type JobListOptions struct {
	Offset       int
	Limit        int
	Status       models.ContractorStatus
	ContractorID string
	Open         bool
}

// JobCondition is what a job must still look like for Advance to apply.
type JobCondition struct {
	From         []models.ContractorStatus
	ContractorID string
	CaseStatuses []models.CaseStatus
}

// OpenCaseStatuses are the case statuses whose jobs can be worked.
func OpenCaseStatuses() []models.CaseStatus {
	return []models.CaseStatus{models.CaseStatusSubmitted, models.CaseStatusInProgress}
}

// contractorJobRepository implements the ContractorJobRepository interface
type contractorJobRepository struct {
	db *gorm.DB
}

// NewContractorJobRepository creates a new contractor job repository instance
func NewContractorJobRepository(db *gorm.DB) ContractorJobRepository {
	return &contractorJobRepository{db: db}
}

func (r *contractorJobRepository) List(opts JobListOptions) ([]models.ContractorJob, int64, error) {
	lo := ListOptions{Offset: opts.Offset, Limit: opts.Limit}.Normalized()
	q := r.db.Model(&models.LegalCase{})
	if opts.Open {
		q = q.Where("contractor_status = ? AND status IN ?", models.ContractorUnassigned, OpenCaseStatuses())
	} else {
		// drafts are not on the board until submitted
		q = q.Where("status <> ?", models.CaseStatusNoticeDraft)
	}
	if opts.Status != "" {
		q = q.Where("contractor_status = ?", opts.Status)
	}
	if opts.ContractorID != "" {
		q = q.Where("contractor_id = ?", opts.ContractorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var cases []models.LegalCase
	err := q.Preload("Property").Preload("Tenant").
		Order("updated_at DESC").Offset(lo.Offset).Limit(lo.Limit).Find(&cases).Error
	if err != nil {
		return nil, 0, err
	}
	jobs := make([]models.ContractorJob, len(cases))
	for i := range cases {
		jobs[i] = models.JobFromCase(&cases[i])
	}
	return jobs, total, nil
}

func (r *contractorJobRepository) Get(caseID string) (*models.ContractorJob, error) {
	c, err := findCase(r.db, AdminScope(), caseID)
	if err != nil {
		return nil, err
	}
	job := models.JobFromCase(c)
	return &job, nil
}

func (r *contractorJobRepository) Advance(caseID string, cond JobCondition, updates map[string]any) error {
	if _, err := r.Get(caseID); err != nil {
		return err
	}
	q := r.db.Model(&models.LegalCase{}).Where("id = ?", caseID)
	if len(cond.From) > 0 {
		q = q.Where("contractor_status IN ?", cond.From)
	}
	if cond.ContractorID != "" {
		q = q.Where("contractor_id = ?", cond.ContractorID)
	}
	if len(cond.CaseStatuses) > 0 {
		q = q.Where("status IN ?", cond.CaseStatuses)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *contractorJobRepository) CountByStatus(contractorID string) (map[models.ContractorStatus]int64, error) {
	var rows []struct {
		ContractorStatus models.ContractorStatus
		Total            int64
	}
	q := r.db.Model(&models.LegalCase{}).Where("status <> ?", models.CaseStatusNoticeDraft)
	if contractorID != "" {
		q = q.Where("contractor_id = ?", contractorID)
	}
	if err := q.Select("contractor_status, COUNT(*) AS total").Group("contractor_status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[models.ContractorStatus]int64{
		models.ContractorUnassigned: 0,
		models.ContractorAssigned:   0,
		models.ContractorInProgress: 0,
		models.ContractorCompleted:  0,
	}
	for _, row := range rows {
		out[row.ContractorStatus] = row.Total
	}
	return out, nil
}

func (r *contractorJobRepository) CountOpen() (int64, error) {
	var total int64
	err := r.db.Model(&models.LegalCase{}).
		Where("contractor_status = ? AND status IN ?", models.ContractorUnassigned, OpenCaseStatuses()).
		Count(&total).Error
	return total, err
}
