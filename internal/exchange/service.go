package exchange

import (
	"context"
	"errors"
	"time"

	"github.com/okpyo/crewledger/internal/metrics"
	"github.com/okpyo/crewledger/internal/report"
	"github.com/okpyo/crewledger/internal/team"
)

var ErrInvalidRange = errors.New("invalid date range, expected from <= to")

// ShiftSource provides work shifts for a date range
type ShiftSource interface {
	FetchShiftsInRange(ctx context.Context, from, to time.Time) ([]*report.WorkShift, error)
}

// ProfileSource provides rate profiles for a set of teams
type ProfileSource interface {
	GetRateProfiles(ctx context.Context, teamIDs []int64) (map[int64]*team.RateProfile, error)
}

// Service handles exchange settlement business logic
type Service struct {
	shifts   ShiftSource
	profiles ProfileSource
}

// NewService creates a new exchange service with its sources injected
func NewService(shifts ShiftSource, profiles ProfileSource) *Service {
	return &Service{shifts: shifts, profiles: profiles}
}

// BuildSummaries loads shifts for the range, resolves the rate profiles of
// every team involved and aggregates per-team settlement summaries.
func (s *Service) BuildSummaries(ctx context.Context, from, to time.Time, targetTeamIDs []int64) ([]*TeamSummary, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	start := time.Now()

	shifts, err := s.shifts.FetchShiftsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	teamIDSet := make(map[int64]bool)
	for _, shift := range shifts {
		if !shift.IsExchange() {
			continue
		}
		teamIDSet[*shift.WorkerTeamID] = true
		teamIDSet[shift.ReportTeamID] = true
	}
	teamIDs := make([]int64, 0, len(teamIDSet))
	for teamID := range teamIDSet {
		teamIDs = append(teamIDs, teamID)
	}

	profiles, err := s.profiles.GetRateProfiles(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	summaries := BuildSummaries(shifts, NewResolver(profiles), targetTeamIDs)
	metrics.ObserveExchangeBuild(time.Since(start))

	return summaries, nil
}
