package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Vitrina/internal/domain"
)

// ReportRepo — репозиторий отчётов прогонов.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepo создаёт новый ReportRepo.
func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Insert сохраняет отчёт прогона.
func (r *ReportRepo) Insert(ctx context.Context, report *domain.RunReport) error {
	succeededJSON, err := json.Marshal(report.Succeeded)
	if err != nil {
		return fmt.Errorf("marshal succeeded: %w", err)
	}
	failedJSON, err := json.Marshal(report.Failed)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO run_reports (started_at, finished_at, manual, succeeded, failed)
		VALUES ($1, $2, $3, $4, $5)
	`, report.StartedAt, report.FinishedAt, report.Manual, succeededJSON, failedJSON)
	if err != nil {
		return fmt.Errorf("insert run report: %w", err)
	}
	return nil
}

// Latest возвращает отчёт последнего прогона.
func (r *ReportRepo) Latest(ctx context.Context) (*domain.RunReport, error) {
	query := `
		SELECT started_at, finished_at, manual, succeeded, failed
		FROM run_reports
		ORDER BY id DESC
		LIMIT 1
	`
	var report domain.RunReport
	var succeededJSON, failedJSON []byte
	err := r.pool.QueryRow(ctx, query).Scan(
		&report.StartedAt,
		&report.FinishedAt,
		&report.Manual,
		&succeededJSON,
		&failedJSON,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run report: %w", err)
	}

	if err := json.Unmarshal(succeededJSON, &report.Succeeded); err != nil {
		return nil, fmt.Errorf("unmarshal succeeded: %w", err)
	}
	if err := json.Unmarshal(failedJSON, &report.Failed); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return &report, nil
}
