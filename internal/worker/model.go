package worker

import "time"

// Worker represents a registered worker
type Worker struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Trade     *string   `json:"trade,omitempty"` // e.g. carpenter, rebar, plasterer
	UnitPrice float64   `json:"unit_price"`      // personal rate per man-day
	CreatedAt time.Time `json:"created_at"`
}
