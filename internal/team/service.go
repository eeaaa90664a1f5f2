package team

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrTeamNotFound = errors.New("team not found")
	ErrNegativeRate = errors.New("rate cannot be negative")
)

// Service handles team business logic
type Service struct {
	repo *Repository
}

// NewService creates a new team service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new team
func (s *Service) Create(ctx context.Context, req *CreateTeamRequest) (*Team, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a team by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Team, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

// List retrieves all teams with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Team, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing team
func (s *Service) Update(ctx context.Context, id int64, req *UpdateTeamRequest) (*Team, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTeamNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a team
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// GetRateProfile returns the team's rate profile. Teams without any
// configuration get an empty profile so the response shape stays stable.
func (s *Service) GetRateProfile(ctx context.Context, teamID int64) (*RateProfile, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	profile, err := s.repo.GetRateProfile(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &RateProfile{TeamID: teamID, CustomRates: map[int64]float64{}}
	}
	return profile, nil
}

// SetDefaultRate sets the team's default support rate (0 clears it)
func (s *Service) SetDefaultRate(ctx context.Context, teamID int64, rate float64) (*RateProfile, error) {
	if rate < 0 {
		return nil, ErrNegativeRate
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	if err := s.repo.SetDefaultRate(ctx, teamID, rate); err != nil {
		return nil, err
	}
	return s.GetRateProfile(ctx, teamID)
}

// SetCustomRate sets an override rate toward a counterpart team
func (s *Service) SetCustomRate(ctx context.Context, teamID, targetTeamID int64, rate float64) (*RateProfile, error) {
	if rate < 0 {
		return nil, ErrNegativeRate
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	target, err := s.repo.GetByID(ctx, targetTeamID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrTeamNotFound
	}

	if err := s.repo.SetCustomRate(ctx, teamID, targetTeamID, rate); err != nil {
		return nil, err
	}
	return s.GetRateProfile(ctx, teamID)
}

// DeleteCustomRate removes an override rate toward a counterpart team
func (s *Service) DeleteCustomRate(ctx context.Context, teamID, targetTeamID int64) error {
	return s.repo.DeleteCustomRate(ctx, teamID, targetTeamID)
}
