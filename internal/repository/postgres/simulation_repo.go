package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-minimax/internal/service/simulation"
)

type SimulationRepo struct {
	DB *sql.DB
}

func NewSimulationRepo(db *sql.DB) *SimulationRepo {
	return &SimulationRepo{DB: db}
}

// SaveReport stores a finished sweep. Saving the same report twice is a no-op.
func (r *SimulationRepo) SaveReport(ctx context.Context, report *simulation.Report) error {
	matchesJSON, err := json.Marshal(report.Matches)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	query := `
		INSERT INTO simulation_reports
			(id, board_rows, board_columns, min_depth, max_depth, matches, summary, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.DB.ExecContext(ctx, query,
		report.ID, report.Rows, report.Columns, report.MinDepth, report.MaxDepth,
		matchesJSON, summaryJSON, report.StartedAt, report.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation report: %w", err)
	}
	return nil
}

const selectReport = `
	SELECT id, board_rows, board_columns, min_depth, max_depth, matches, summary, started_at, finished_at
	FROM simulation_reports
`

// LatestReport returns the most recently finished report.
func (r *SimulationRepo) LatestReport(ctx context.Context) (*simulation.Report, error) {
	row := r.DB.QueryRowContext(ctx, selectReport+` ORDER BY finished_at DESC LIMIT 1`)
	return scanReport(row)
}

func (r *SimulationRepo) GetReport(ctx context.Context, id string) (*simulation.Report, error) {
	row := r.DB.QueryRowContext(ctx, selectReport+` WHERE id = $1`, id)
	return scanReport(row)
}

func scanReport(row *sql.Row) (*simulation.Report, error) {
	var report simulation.Report
	var matchesJSON, summaryJSON []byte

	err := row.Scan(
		&report.ID, &report.Rows, &report.Columns, &report.MinDepth, &report.MaxDepth,
		&matchesJSON, &summaryJSON, &report.StartedAt, &report.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, simulation.ErrNoReport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation report: %w", err)
	}

	if err := json.Unmarshal(matchesJSON, &report.Matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	if err := json.Unmarshal(summaryJSON, &report.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &report, nil
}
