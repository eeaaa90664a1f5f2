package report

import "time"

// DailyReport is one day's labor report for a site, attributed to the team
// that owns the site ledger.
type DailyReport struct {
	ID        int64     `json:"id"`
	WorkDate  time.Time `json:"work_date"`
	SiteID    int64     `json:"site_id"`
	TeamID    int64     `json:"team_id"` // report team (site ledger owner)
	Memo      *string   `json:"memo,omitempty"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkShift is one worker's attendance row within a daily report.
// WorkerTeamID is the worker's home team and may differ from ReportTeamID
// when a worker is lent across teams; nil when the home team is unknown.
type WorkShift struct {
	ID           int64     `json:"id"`
	ReportID     int64     `json:"report_id"`
	WorkDate     time.Time `json:"work_date"`
	SiteID       int64     `json:"site_id"`
	ReportTeamID int64     `json:"report_team_id"`
	WorkerTeamID *int64    `json:"worker_team_id,omitempty"`
	WorkerID     int64     `json:"worker_id"`
	WorkerName   string    `json:"worker_name"`
	ManDay       float64   `json:"man_day"`    // fractional shifts allowed, e.g. 0.5
	UnitPrice    float64   `json:"unit_price"` // worker's personal rate
}

// IsExchange reports whether this shift crosses team boundaries. Shifts with
// no recorded home team are not exchanges (nothing to compare against).
func (ws *WorkShift) IsExchange() bool {
	return ws.WorkerTeamID != nil && *ws.WorkerTeamID != ws.ReportTeamID
}

// ReportWithShifts bundles a report with its attendance rows
type ReportWithShifts struct {
	Report *DailyReport `json:"report"`
	Shifts []*WorkShift `json:"shifts"`
}
