package worker

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrNegativePrice  = errors.New("unit price cannot be negative")
)

// Service handles worker business logic
type Service struct {
	repo *Repository
}

// NewService creates a new worker service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new worker
func (s *Service) Create(ctx context.Context, req *CreateWorkerRequest) (*Worker, error) {
	if req.UnitPrice < 0 {
		return nil, ErrNegativePrice
	}
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a worker by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Worker, error) {
	worker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}
	return worker, nil
}

// List retrieves workers with pagination, optionally filtered by team
func (s *Service) List(ctx context.Context, teamID *int64, page, perPage int) ([]*Worker, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, teamID, perPage, offset)
}

// Update modifies an existing worker
func (s *Service) Update(ctx context.Context, id int64, req *UpdateWorkerRequest) (*Worker, error) {
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		return nil, ErrNegativePrice
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrWorkerNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a worker
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
