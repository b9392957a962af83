package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

// uniqueViolation is the Postgres error code raised by the one-application-
// per-candidate-per-job constraint.
const uniqueViolation = "23505"

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (model.Application, error) {
	var a model.Application
	err := r.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, resume_url, cover_letter, status, created_at, updated_at
		 FROM applications WHERE id = $1`, id).
		Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ResumeURL, &a.CoverLetter, &a.Status,
			&a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Application{}, apierror.NotFound("application not found", id)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("find application by id: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) List(ctx context.Context, status string) ([]model.Application, error) {
	query := `SELECT id, job_id, candidate_id, resume_url, cover_letter, status, created_at, updated_at
	          FROM applications`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	applications := make([]model.Application, 0)
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ResumeURL, &a.CoverLetter,
			&a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

func (r *ApplicationRepository) Create(ctx context.Context, a model.Application) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO applications (id, job_id, candidate_id, resume_url, cover_letter, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.JobID, a.CandidateID, a.ResumeURL, a.CoverLetter, a.Status, a.CreatedAt, a.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apierror.Conflict("already applied to this job", a.JobID)
	}
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("application not found", id)
	}
	return nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan application count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
