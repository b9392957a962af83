package model

import "time"

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusHired:
		return true
	}
	return false
}

// Application links a candidate to a job. ResumeURL points at the external
// media CDN; the file itself never passes through this service.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AnalyticsSummary backs the admin dashboard counters.
type AnalyticsSummary struct {
	JobsByStatus         map[string]int `json:"jobs_by_status"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	TotalUsers           int            `json:"total_users"`
}
