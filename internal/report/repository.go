package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles report data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new report repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateReport inserts a report and all of its shift rows in one transaction
func (r *Repository) CreateReport(ctx context.Context, report *DailyReport, shifts []*WorkShift) (*ReportWithShifts, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reportQuery := `
		INSERT INTO daily_reports (work_date, site_id, team_id, memo, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, work_date, site_id, team_id, memo, created_by, created_at
	`

	created := &DailyReport{}
	err = tx.QueryRowContext(ctx, reportQuery,
		report.WorkDate, report.SiteID, report.TeamID, report.Memo, report.CreatedBy,
	).Scan(
		&created.ID,
		&created.WorkDate,
		&created.SiteID,
		&created.TeamID,
		&created.Memo,
		&created.CreatedBy,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	shiftQuery := `
		INSERT INTO work_shifts (report_id, work_date, site_id, report_team_id, worker_team_id, worker_id, worker_name, man_day, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	createdShifts := make([]*WorkShift, len(shifts))
	for i, shift := range shifts {
		row := &WorkShift{
			ReportID:     created.ID,
			WorkDate:     created.WorkDate,
			SiteID:       created.SiteID,
			ReportTeamID: created.TeamID,
			WorkerTeamID: shift.WorkerTeamID,
			WorkerID:     shift.WorkerID,
			WorkerName:   shift.WorkerName,
			ManDay:       shift.ManDay,
			UnitPrice:    shift.UnitPrice,
		}
		err = tx.QueryRowContext(ctx, shiftQuery,
			row.ReportID, row.WorkDate, row.SiteID, row.ReportTeamID,
			row.WorkerTeamID, row.WorkerID, row.WorkerName, row.ManDay, row.UnitPrice,
		).Scan(&row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create work shift: %w", err)
		}
		createdShifts[i] = row
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit report: %w", err)
	}

	return &ReportWithShifts{Report: created, Shifts: createdShifts}, nil
}

// GetReportByID retrieves a report by its ID
func (r *Repository) GetReportByID(ctx context.Context, id int64) (*DailyReport, error) {
	query := `
		SELECT id, work_date, site_id, team_id, memo, created_by, created_at
		FROM daily_reports
		WHERE id = $1
	`

	report := &DailyReport{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&report.ID,
		&report.WorkDate,
		&report.SiteID,
		&report.TeamID,
		&report.Memo,
		&report.CreatedBy,
		&report.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// GetShiftsByReportID retrieves all shift rows belonging to a report
func (r *Repository) GetShiftsByReportID(ctx context.Context, reportID int64) ([]*WorkShift, error) {
	query := `
		SELECT id, report_id, work_date, site_id, report_team_id, worker_team_id, worker_id, worker_name, man_day, unit_price
		FROM work_shifts
		WHERE report_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListReports retrieves reports within a date range with pagination
func (r *Repository) ListReports(ctx context.Context, from, to time.Time, limit, offset int) ([]*DailyReport, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM daily_reports WHERE work_date BETWEEN $1 AND $2`
	if err := r.db.QueryRowContext(ctx, countQuery, from, to).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	query := `
		SELECT id, work_date, site_id, team_id, memo, created_by, created_at
		FROM daily_reports
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*DailyReport
	for rows.Next() {
		report := &DailyReport{}
		if err := rows.Scan(
			&report.ID,
			&report.WorkDate,
			&report.SiteID,
			&report.TeamID,
			&report.Memo,
			&report.CreatedBy,
			&report.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, total, nil
}

// FetchShiftsInRange retrieves every shift row whose work date falls in the
// inclusive range. Used by the exchange settlement build.
func (r *Repository) FetchShiftsInRange(ctx context.Context, from, to time.Time) ([]*WorkShift, error) {
	query := `
		SELECT id, report_id, work_date, site_id, report_team_id, worker_team_id, worker_id, worker_name, man_day, unit_price
		FROM work_shifts
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts in range: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// DeleteReport removes a report and its shift rows (FK cascade)
func (r *Repository) DeleteReport(ctx context.Context, id int64) error {
	query := `DELETE FROM daily_reports WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("report not found")
	}

	return nil
}

func scanShifts(rows *sql.Rows) ([]*WorkShift, error) {
	var shifts []*WorkShift
	for rows.Next() {
		shift := &WorkShift{}
		if err := rows.Scan(
			&shift.ID,
			&shift.ReportID,
			&shift.WorkDate,
			&shift.SiteID,
			&shift.ReportTeamID,
			&shift.WorkerTeamID,
			&shift.WorkerID,
			&shift.WorkerName,
			&shift.ManDay,
			&shift.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}
