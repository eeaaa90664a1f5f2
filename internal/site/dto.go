package site

// CreateSiteRequest represents the request body for creating a site
type CreateSiteRequest struct {
	TeamID  int64   `json:"team_id" validate:"required"`
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Address *string `json:"address,omitempty"`
}

// UpdateSiteRequest represents the request body for updating a site
type UpdateSiteRequest struct {
	TeamID  *int64  `json:"team_id,omitempty"`
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address,omitempty"`
}

// SiteResponse represents the response for a single site
type SiteResponse struct {
	ID        int64   `json:"id"`
	TeamID    int64   `json:"team_id"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Site model to a SiteResponse DTO
func (s *Site) ToResponse() *SiteResponse {
	return &SiteResponse{
		ID:        s.ID,
		TeamID:    s.TeamID,
		Name:      s.Name,
		Address:   s.Address,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
