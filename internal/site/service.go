package site

import (
	"context"
	"errors"
)

var ErrSiteNotFound = errors.New("site not found")

// Service handles site business logic
type Service struct {
	repo *Repository
}

// NewService creates a new site service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new site
func (s *Service) Create(ctx context.Context, req *CreateSiteRequest) (*Site, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a site by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Site, error) {
	site, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}
	return site, nil
}

// List retrieves sites with pagination, optionally filtered by team
func (s *Service) List(ctx context.Context, teamID *int64, page, perPage int) ([]*Site, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, teamID, perPage, offset)
}

// Update modifies an existing site
func (s *Service) Update(ctx context.Context, id int64, req *UpdateSiteRequest) (*Site, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrSiteNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a site
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
