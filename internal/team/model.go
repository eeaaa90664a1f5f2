package team

import "time"

// Team represents a work team (crew) in the system
type Team struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	LeaderName *string   `json:"leader_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RateProfile is a team's configured support/exchange pricing.
// DefaultRate of 0 means "unset". CustomRates maps a counterpart team ID to
// an override rate charged when that team's site borrows this team's workers;
// at most one entry per counterpart team.
type RateProfile struct {
	TeamID      int64             `json:"team_id"`
	DefaultRate float64           `json:"default_rate"`
	CustomRates map[int64]float64 `json:"custom_rates"`
}

// CustomRateFor returns the override rate for a counterpart team, if configured
func (p *RateProfile) CustomRateFor(targetTeamID int64) (float64, bool) {
	if p == nil || p.CustomRates == nil {
		return 0, false
	}
	rate, ok := p.CustomRates[targetTeamID]
	return rate, ok
}
