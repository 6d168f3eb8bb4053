// Package postgres stores the export audit trail in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/backoffice-ledger/internal/domain/reportrun"
	"github.com/backoffice-ledger/internal/platform/persistence"
)

// ReportRunRepository implements reportrun.Repository for PostgreSQL
type ReportRunRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewReportRunRepository creates a new PostgreSQL report run repository
func NewReportRunRepository(logger *slog.Logger, db *persistence.PostgresDB) reportrun.Repository {
	return &ReportRunRepository{
		querier: db.Querier(),
		logger:  logger,
	}
}

// Create records a generated export.
func (r *ReportRunRepository) Create(ctx context.Context, run *reportrun.Run) error {
	query := `
		INSERT INTO report_runs (id, report, start_date, end_date, rows, generated_by, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		run.ID,
		run.Kind,
		run.StartDate,
		run.EndDate,
		run.Rows,
		run.GeneratedBy,
		run.GeneratedAt,
	)
	if err != nil {
		r.logger.Error("Failed to record report run", "report", run.Kind, "error", err)
		return fmt.Errorf("failed to record report run: %w", err)
	}

	return nil
}

// ListRecent returns the latest runs, newest first.
func (r *ReportRunRepository) ListRecent(ctx context.Context, limit int) ([]*reportrun.Run, error) {
	query := `
		SELECT id, report, start_date, end_date, rows, generated_by, generated_at
		FROM report_runs
		ORDER BY generated_at DESC
		LIMIT $1
	`

	rows, err := r.querier.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list report runs", "error", err)
		return nil, fmt.Errorf("failed to list report runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*reportrun.Run, 0, limit)
	for rows.Next() {
		var run reportrun.Run
		if err := rows.Scan(
			&run.ID,
			&run.Kind,
			&run.StartDate,
			&run.EndDate,
			&run.Rows,
			&run.GeneratedBy,
			&run.GeneratedAt,
		); err != nil {
			r.logger.Error("Failed to scan report run", "error", err)
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating report runs", "error", err)
		return nil, fmt.Errorf("error iterating report runs: %w", err)
	}

	return runs, nil
}
