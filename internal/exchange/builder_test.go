package exchange

import (
	"testing"
	"time"

	"github.com/okpyo/crewledger/internal/report"
	"github.com/okpyo/crewledger/internal/team"
)

func teamID(id int64) *int64 { return &id }

func shift(workerTeam *int64, reportTeam int64, manDay, unitPrice float64) *report.WorkShift {
	return &report.WorkShift{
		WorkDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SiteID:       1,
		ReportTeamID: reportTeam,
		WorkerTeamID: workerTeam,
		WorkerID:     10,
		WorkerName:   "Kim",
		ManDay:       manDay,
		UnitPrice:    unitPrice,
	}
}

func TestBuildSummariesSimpleExchange(t *testing.T) {
	// TeamA (1) lends a worker to TeamB's (2) site; TeamA has a default
	// rate of 120000 and TeamB has no custom rate for TeamA.
	shifts := []*report.WorkShift{shift(teamID(1), 2, 1.0, 150000)}
	resolver := NewResolver(map[int64]*team.RateProfile{
		1: {TeamID: 1, DefaultRate: 120000},
	})

	summaries := BuildSummaries(shifts, resolver, nil)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	teamA, teamB := summaries[0], summaries[1]
	if teamA.TeamID != 1 || teamB.TeamID != 2 {
		t.Fatalf("summaries not sorted by team ID: %d, %d", teamA.TeamID, teamB.TeamID)
	}

	if teamA.Outgoing.TotalAmount != 120000 {
		t.Errorf("TeamA outgoing total = %v, want 120000", teamA.Outgoing.TotalAmount)
	}
	if teamB.Incoming.TotalAmount != 120000 {
		t.Errorf("TeamB incoming total = %v, want 120000", teamB.Incoming.TotalAmount)
	}
	if teamA.NetAmount != 120000 {
		t.Errorf("TeamA net = %v, want +120000", teamA.NetAmount)
	}
	if teamB.NetAmount != -120000 {
		t.Errorf("TeamB net = %v, want -120000", teamB.NetAmount)
	}

	item := teamA.Outgoing.Items[0]
	if item.SupportRate != 120000 || item.Amount != 120000 {
		t.Errorf("item rate/amount = %v/%v, want 120000/120000", item.SupportRate, item.Amount)
	}
}

func TestBuildSummariesExcludesNonExchangeShifts(t *testing.T) {
	shifts := []*report.WorkShift{
		shift(teamID(2), 2, 1.0, 100000), // same team, not an exchange
		shift(nil, 2, 1.0, 100000),       // no home team recorded
	}

	summaries := BuildSummaries(shifts, NewResolver(nil), nil)
	if len(summaries) != 0 {
		t.Fatalf("got %d summaries, want 0", len(summaries))
	}
}

func TestBuildSummariesNetIdentity(t *testing.T) {
	shifts := []*report.WorkShift{
		shift(teamID(1), 2, 1.0, 100000),
		shift(teamID(1), 2, 0.5, 100000),
		shift(teamID(2), 1, 1.5, 90000),
		shift(teamID(3), 1, 1.0, 80000),
	}

	summaries := BuildSummaries(shifts, NewResolver(nil), nil)
	for _, s := range summaries {
		var outgoing, incoming float64
		for _, item := range s.Outgoing.Items {
			outgoing += item.Amount
		}
		for _, item := range s.Incoming.Items {
			incoming += item.Amount
		}
		if s.Outgoing.TotalAmount != outgoing {
			t.Errorf("team %d outgoing total %v != item sum %v", s.TeamID, s.Outgoing.TotalAmount, outgoing)
		}
		if s.Incoming.TotalAmount != incoming {
			t.Errorf("team %d incoming total %v != item sum %v", s.TeamID, s.Incoming.TotalAmount, incoming)
		}
		if s.NetAmount != s.Outgoing.TotalAmount-s.Incoming.TotalAmount {
			t.Errorf("team %d net %v != outgoing-incoming", s.TeamID, s.NetAmount)
		}
	}
}

func TestBuildSummariesFractionalManDays(t *testing.T) {
	shifts := []*report.WorkShift{shift(teamID(1), 2, 0.5, 100000)}
	resolver := NewResolver(map[int64]*team.RateProfile{
		1: {TeamID: 1, DefaultRate: 120000},
	})

	summaries := BuildSummaries(shifts, resolver, nil)
	if got := summaries[0].Outgoing.TotalAmount; got != 60000 {
		t.Fatalf("outgoing total = %v, want 60000", got)
	}
	if got := summaries[0].Outgoing.TotalManDays; got != 0.5 {
		t.Fatalf("outgoing man-days = %v, want 0.5", got)
	}
}

func TestBuildSummariesTargetTeamFilter(t *testing.T) {
	shifts := []*report.WorkShift{
		shift(teamID(1), 2, 1.0, 100000),
		shift(teamID(3), 4, 1.0, 100000),
	}

	summaries := BuildSummaries(shifts, NewResolver(nil), []int64{1})
	if len(summaries) != 1 || summaries[0].TeamID != 1 {
		t.Fatalf("got %+v, want a single summary for team 1", summaries)
	}

	// A requested team with no activity in the period is not emitted.
	summaries = BuildSummaries(shifts, NewResolver(nil), []int64{9})
	if len(summaries) != 0 {
		t.Fatalf("got %d summaries for inactive team, want 0", len(summaries))
	}
}

func TestBuildSummariesRatesResolvedPerItem(t *testing.T) {
	// Same worker pair, different personal prices: each item is priced on
	// its own, and the totals are sums of per-item amounts.
	shifts := []*report.WorkShift{
		shift(teamID(1), 2, 1.0, 100000),
		shift(teamID(1), 2, 1.0, 110000),
	}

	summaries := BuildSummaries(shifts, NewResolver(nil), nil)
	teamA := summaries[0]
	if len(teamA.Outgoing.Items) != 2 {
		t.Fatalf("got %d outgoing items, want 2", len(teamA.Outgoing.Items))
	}
	if teamA.Outgoing.TotalAmount != 210000 {
		t.Fatalf("outgoing total = %v, want 210000", teamA.Outgoing.TotalAmount)
	}
}
