package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (model.Job, error) {
	var j model.Job
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, department, location, description, status, created_by, created_at, updated_at
		 FROM jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Description, &j.Status,
			&j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Job{}, apierror.NotFound("job not found", id)
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("find job by id: %w", err)
	}
	return j, nil
}

// List returns jobs filtered by status; an empty status returns everything.
func (r *JobRepository) List(ctx context.Context, status string) ([]model.Job, error) {
	query := `SELECT id, title, department, location, description, status, created_by, created_at, updated_at
	          FROM jobs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Description,
			&j.Status, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) Create(ctx context.Context, j model.Job) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, department, location, description, status, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.Title, j.Department, j.Location, j.Description, j.Status, j.CreatedBy, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, j model.Job) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, department = $3, location = $4, description = $5, status = $6, updated_at = $7
		 WHERE id = $1`,
		j.ID, j.Title, j.Department, j.Location, j.Description, j.Status, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("job not found", j.ID)
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("job not found", id)
	}
	return nil
}

func (r *JobRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan job count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
