package site

import "time"

// Site represents a construction site
type Site struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"` // team responsible for the site ledger
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
