package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okpyo/crewledger/internal/report"
	"github.com/okpyo/crewledger/internal/team"
)

type stubShiftSource struct {
	shifts []*report.WorkShift
	err    error
}

func (s *stubShiftSource) FetchShiftsInRange(_ context.Context, _, _ time.Time) ([]*report.WorkShift, error) {
	return s.shifts, s.err
}

type stubProfileSource struct {
	profiles map[int64]*team.RateProfile
	asked    []int64
}

func (s *stubProfileSource) GetRateProfiles(_ context.Context, teamIDs []int64) (map[int64]*team.RateProfile, error) {
	s.asked = append(s.asked, teamIDs...)
	return s.profiles, nil
}

func TestServiceBuildSummariesRejectsInvertedRange(t *testing.T) {
	service := NewService(&stubShiftSource{}, &stubProfileSource{})

	from := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := service.BuildSummaries(context.Background(), from, to, nil); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestServiceBuildSummariesResolvesProfilesForExchangeTeamsOnly(t *testing.T) {
	shifts := []*report.WorkShift{
		shift(teamID(1), 2, 1.0, 150000),
		shift(teamID(3), 3, 1.0, 90000), // same team, no profile lookup needed
	}
	profiles := &stubProfileSource{profiles: map[int64]*team.RateProfile{
		1: {TeamID: 1, DefaultRate: 120000},
	}}
	service := NewService(&stubShiftSource{shifts: shifts}, profiles)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	summaries, err := service.BuildSummaries(context.Background(), from, to, nil)
	if err != nil {
		t.Fatalf("BuildSummaries: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].Outgoing.TotalAmount != 120000 {
		t.Errorf("outgoing total = %v, want 120000 (default rate applied)", summaries[0].Outgoing.TotalAmount)
	}

	asked := make(map[int64]bool)
	for _, id := range profiles.asked {
		asked[id] = true
	}
	if !asked[1] || !asked[2] {
		t.Errorf("profiles asked for %v, want teams 1 and 2", profiles.asked)
	}
	if asked[3] {
		t.Error("team 3 has no exchange shifts and should not be looked up")
	}
}

func TestServiceBuildSummariesPropagatesSourceErrors(t *testing.T) {
	wantErr := errors.New("connection refused")
	service := NewService(&stubShiftSource{err: wantErr}, &stubProfileSource{})

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	if _, err := service.BuildSummaries(context.Background(), from, to, nil); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
