package worker

// CreateWorkerRequest represents the request body for creating a worker
type CreateWorkerRequest struct {
	TeamID    int64   `json:"team_id" validate:"required"`
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Phone     *string `json:"phone,omitempty"`
	Trade     *string `json:"trade,omitempty"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// UpdateWorkerRequest represents the request body for updating a worker
type UpdateWorkerRequest struct {
	TeamID    *int64   `json:"team_id,omitempty"`
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone     *string  `json:"phone,omitempty"`
	Trade     *string  `json:"trade,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
}

// WorkerResponse represents the response for a single worker
type WorkerResponse struct {
	ID        int64   `json:"id"`
	TeamID    int64   `json:"team_id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Trade     *string `json:"trade,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Worker model to a WorkerResponse DTO
func (wk *Worker) ToResponse() *WorkerResponse {
	return &WorkerResponse{
		ID:        wk.ID,
		TeamID:    wk.TeamID,
		Name:      wk.Name,
		Phone:     wk.Phone,
		Trade:     wk.Trade,
		UnitPrice: wk.UnitPrice,
		CreatedAt: wk.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
