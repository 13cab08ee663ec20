package services

import (
	"github.com/vibhu2208/hrms-backend-sub007/internal/cursor"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type JobPage struct {
	Jobs []models.JobPosting `json:"jobs"`
	Next string              `json:"next,omitempty"`
}

// NewJobPage trims jobs, fetched with one extra row, to limit and sets Next
// when that extra row shows there is more.
func NewJobPage(jobs []models.JobPosting, limit int64) JobPage {
	if jobs == nil {
		jobs = []models.JobPosting{}
	}
	if limit <= 0 || int64(len(jobs)) <= limit {
		return JobPage{Jobs: jobs}
	}
	jobs = jobs[:limit]
	last := jobs[len(jobs)-1]
	return JobPage{Jobs: jobs, Next: cursor.Encode(cursor.Position{CreatedAt: last.CreatedAt, ID: last.ID})}
}
