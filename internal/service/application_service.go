package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

type applicationStore interface {
	FindByID(ctx context.Context, id string) (model.Application, error)
	List(ctx context.Context, status string) ([]model.Application, error)
	Create(ctx context.Context, a model.Application) error
	UpdateStatus(ctx context.Context, id string, status string) error
}

type ApplicationService struct {
	applications applicationStore
	jobs         jobStore
}

func NewApplicationService(applications applicationStore, jobs jobStore) *ApplicationService {
	return &ApplicationService{applications: applications, jobs: jobs}
}

// Apply files a candidate's application against an open listing. The resume
// itself lives behind the external CDN; only its URL is recorded.
func (s *ApplicationService) Apply(ctx context.Context, jobID string, candidateID string, req model.ApplicationRequest) (model.Application, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return model.Application{}, err
	}
	if job.Status != model.JobStatusOpen {
		return model.Application{}, apierror.BadRequest("job is not open for applications", job.Status)
	}

	now := time.Now().UTC()
	application := model.Application{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		CandidateID: candidateID,
		ResumeURL:   strings.TrimSpace(req.ResumeURL),
		CoverLetter: req.CoverLetter,
		Status:      model.ApplicationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return model.Application{}, err
	}
	return application, nil
}

func (s *ApplicationService) List(ctx context.Context, status string) ([]model.Application, error) {
	if status != "" && !model.ValidApplicationStatus(status) {
		return nil, apierror.BadRequest("invalid application status", status)
	}
	return s.applications.List(ctx, status)
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status string) (model.Application, error) {
	if !model.ValidApplicationStatus(status) {
		return model.Application{}, apierror.BadRequest("invalid application status", status)
	}

	if err := s.applications.UpdateStatus(ctx, id, status); err != nil {
		return model.Application{}, err
	}
	return s.applications.FindByID(ctx, id)
}
