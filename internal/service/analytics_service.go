package service

import (
	"context"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
)

type jobCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type applicationCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type userCounter interface {
	Count(ctx context.Context) (int, error)
}

// AnalyticsService backs the admin dashboard with read-only aggregates.
type AnalyticsService struct {
	jobs         jobCounter
	applications applicationCounter
	users        userCounter
}

func NewAnalyticsService(jobs jobCounter, applications applicationCounter, users userCounter) *AnalyticsService {
	return &AnalyticsService{jobs: jobs, applications: applications, users: users}
}

func (s *AnalyticsService) Summary(ctx context.Context) (model.AnalyticsSummary, error) {
	jobCounts, err := s.jobs.CountByStatus(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	applicationCounts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	return model.AnalyticsSummary{
		JobsByStatus:         jobCounts,
		ApplicationsByStatus: applicationCounts,
		TotalUsers:           totalUsers,
	}, nil
}
