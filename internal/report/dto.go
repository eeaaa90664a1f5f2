package report

import "time"

const dateLayout = "2006-01-02"

// ShiftInput is one attendance row in a report creation request
type ShiftInput struct {
	WorkerID     int64   `json:"worker_id" validate:"required"`
	WorkerName   string  `json:"worker_name" validate:"required"`
	WorkerTeamID *int64  `json:"worker_team_id,omitempty"`
	ManDay       float64 `json:"man_day" validate:"gte=0"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
}

// CreateReportRequest represents the request to create a daily report
type CreateReportRequest struct {
	WorkDate string       `json:"work_date" validate:"required"` // YYYY-MM-DD
	SiteID   int64        `json:"site_id" validate:"required"`
	TeamID   int64        `json:"team_id" validate:"required"`
	Memo     *string      `json:"memo,omitempty"`
	Shifts   []ShiftInput `json:"shifts" validate:"required,min=1"`
}

// ReportResponse represents the response for a daily report
type ReportResponse struct {
	ID        int64            `json:"id"`
	WorkDate  string           `json:"work_date"`
	SiteID    int64            `json:"site_id"`
	TeamID    int64            `json:"team_id"`
	Memo      *string          `json:"memo,omitempty"`
	CreatedBy int64            `json:"created_by"`
	CreatedAt string           `json:"created_at"`
	Shifts    []*ShiftResponse `json:"shifts,omitempty"`
}

// ShiftResponse represents a single attendance row
type ShiftResponse struct {
	ID           int64   `json:"id"`
	WorkerID     int64   `json:"worker_id"`
	WorkerName   string  `json:"worker_name"`
	WorkerTeamID *int64  `json:"worker_team_id,omitempty"`
	ManDay       float64 `json:"man_day"`
	UnitPrice    float64 `json:"unit_price"`
}

// ToResponse converts a DailyReport model to a ReportResponse DTO
func (dr *DailyReport) ToResponse() *ReportResponse {
	return &ReportResponse{
		ID:        dr.ID,
		WorkDate:  dr.WorkDate.Format(dateLayout),
		SiteID:    dr.SiteID,
		TeamID:    dr.TeamID,
		Memo:      dr.Memo,
		CreatedBy: dr.CreatedBy,
		CreatedAt: dr.CreatedAt.Format(time.RFC3339),
	}
}

// ToResponse converts a WorkShift model to a ShiftResponse DTO
func (ws *WorkShift) ToResponse() *ShiftResponse {
	return &ShiftResponse{
		ID:           ws.ID,
		WorkerID:     ws.WorkerID,
		WorkerName:   ws.WorkerName,
		WorkerTeamID: ws.WorkerTeamID,
		ManDay:       ws.ManDay,
		UnitPrice:    ws.UnitPrice,
	}
}
