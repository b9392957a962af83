package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

type jobStore interface {
	FindByID(ctx context.Context, id string) (model.Job, error)
	List(ctx context.Context, status string) ([]model.Job, error)
	Create(ctx context.Context, j model.Job) error
	Update(ctx context.Context, j model.Job) error
	Delete(ctx context.Context, id string) error
}

type JobService struct {
	jobs jobStore
}

func NewJobService(jobs jobStore) *JobService {
	return &JobService{jobs: jobs}
}

func (s *JobService) List(ctx context.Context, status string) ([]model.Job, error) {
	if status != "" && !model.ValidJobStatus(status) {
		return nil, apierror.BadRequest("invalid job status", status)
	}
	return s.jobs.List(ctx, status)
}

func (s *JobService) Get(ctx context.Context, id string) (model.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

func (s *JobService) Create(ctx context.Context, createdBy string, req model.JobRequest) (model.Job, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Job{}, apierror.BadRequest("title is required", "")
	}

	status := req.Status
	if status == "" {
		status = model.JobStatusDraft
	}
	if !model.ValidJobStatus(status) {
		return model.Job{}, apierror.BadRequest("invalid job status", status)
	}

	now := time.Now().UTC()
	job := model.Job{
		ID:          uuid.NewString(),
		Title:       title,
		Department:  strings.TrimSpace(req.Department),
		Location:    strings.TrimSpace(req.Location),
		Description: req.Description,
		Status:      status,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, id string, req model.JobRequest) (model.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return model.Job{}, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		job.Title = title
	}
	if req.Department != "" {
		job.Department = strings.TrimSpace(req.Department)
	}
	if req.Location != "" {
		job.Location = strings.TrimSpace(req.Location)
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Status != "" {
		if !model.ValidJobStatus(req.Status) {
			return model.Job{}, apierror.BadRequest("invalid job status", req.Status)
		}
		job.Status = req.Status
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}
