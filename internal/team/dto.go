package team

// CreateTeamRequest represents the request body for creating a team
type CreateTeamRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	LeaderName *string `json:"leader_name,omitempty"`
}

// UpdateTeamRequest represents the request body for updating a team
type UpdateTeamRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	LeaderName *string `json:"leader_name,omitempty"`
}

// SetDefaultRateRequest sets a team's default support rate (0 clears it)
type SetDefaultRateRequest struct {
	DefaultRate float64 `json:"default_rate" validate:"gte=0"`
}

// SetCustomRateRequest sets an override rate toward a specific counterpart team
type SetCustomRateRequest struct {
	Rate float64 `json:"rate" validate:"gte=0"`
}

// TeamResponse represents the response for a single team
type TeamResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	LeaderName *string `json:"leader_name,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// ToResponse converts a Team model to a TeamResponse DTO
func (t *Team) ToResponse() *TeamResponse {
	return &TeamResponse{
		ID:         t.ID,
		Name:       t.Name,
		LeaderName: t.LeaderName,
		CreatedAt:  t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
