package report

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNoShifts       = errors.New("a report needs at least one shift row")
	ErrNegativeManDay = errors.New("man-day cannot be negative")
)

// Service handles report business logic
type Service struct {
	repo *Repository
}

// NewService creates a new report service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateReport validates and persists a daily report with its shift rows
func (s *Service) CreateReport(ctx context.Context, createdBy int64, req *CreateReportRequest) (*ReportWithShifts, error) {
	workDate, err := time.Parse(dateLayout, req.WorkDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if len(req.Shifts) == 0 {
		return nil, ErrNoShifts
	}

	shifts := make([]*WorkShift, len(req.Shifts))
	for i, in := range req.Shifts {
		if in.ManDay < 0 || in.UnitPrice < 0 {
			return nil, ErrNegativeManDay
		}
		shifts[i] = &WorkShift{
			WorkerTeamID: in.WorkerTeamID,
			WorkerID:     in.WorkerID,
			WorkerName:   in.WorkerName,
			ManDay:       in.ManDay,
			UnitPrice:    in.UnitPrice,
		}
	}

	report := &DailyReport{
		WorkDate:  workDate,
		SiteID:    req.SiteID,
		TeamID:    req.TeamID,
		Memo:      req.Memo,
		CreatedBy: createdBy,
	}

	return s.repo.CreateReport(ctx, report, shifts)
}

// GetReportByID retrieves a report with its shift rows
func (s *Service) GetReportByID(ctx context.Context, id int64) (*ReportWithShifts, error) {
	report, err := s.repo.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	shifts, err := s.repo.GetShiftsByReportID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ReportWithShifts{Report: report, Shifts: shifts}, nil
}

// ListReports retrieves reports within a date range
func (s *Service) ListReports(ctx context.Context, fromStr, toStr string, page, perPage int) ([]*DailyReport, int, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListReports(ctx, from, to, perPage, offset)
}

// FetchShiftsInRange returns every shift row in the inclusive date range
func (s *Service) FetchShiftsInRange(ctx context.Context, from, to time.Time) ([]*WorkShift, error) {
	return s.repo.FetchShiftsInRange(ctx, from, to)
}

// DeleteReport removes a report and its rows
func (s *Service) DeleteReport(ctx context.Context, id int64) error {
	return s.repo.DeleteReport(ctx, id)
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return from, to, nil
}
