package exchange

import (
	"sort"

	"github.com/okpyo/crewledger/internal/report"
)

// BuildSummaries turns a flat list of work shifts into per-team settlement
// summaries.
//
// Shifts whose worker team is missing or equal to the report team are not
// exchanges and are skipped. Each retained shift is priced individually
// (amount = manDay x resolved rate) before any summation; the resolver is
// consulted per item, not per group, so shifts of the same worker pair can
// carry different rates if profiles changed between report dates.
//
// When targetTeamIDs is non-empty only those teams are reported on;
// otherwise the universe is every worker team and report team seen. A team
// gets a summary only if it has at least one outgoing or incoming item.
// Output is sorted by team ID.
func BuildSummaries(shifts []*report.WorkShift, resolver *Resolver, targetTeamIDs []int64) []*TeamSummary {
	var items []*SettlementItem
	universe := make(map[int64]bool)

	for _, shift := range shifts {
		if !shift.IsExchange() {
			continue
		}
		workerTeamID := *shift.WorkerTeamID

		rate := resolver.Resolve(workerTeamID, shift.ReportTeamID, shift.UnitPrice)
		items = append(items, &SettlementItem{
			WorkDate:     shift.WorkDate,
			SiteID:       shift.SiteID,
			ReportTeamID: shift.ReportTeamID,
			WorkerTeamID: workerTeamID,
			WorkerID:     shift.WorkerID,
			WorkerName:   shift.WorkerName,
			ManDay:       shift.ManDay,
			UnitPrice:    shift.UnitPrice,
			SupportRate:  rate,
			Amount:       shift.ManDay * rate,
		})

		universe[workerTeamID] = true
		universe[shift.ReportTeamID] = true
	}

	var teamIDs []int64
	if len(targetTeamIDs) > 0 {
		teamIDs = append(teamIDs, targetTeamIDs...)
	} else {
		for teamID := range universe {
			teamIDs = append(teamIDs, teamID)
		}
	}
	sort.Slice(teamIDs, func(i, j int) bool { return teamIDs[i] < teamIDs[j] })

	var summaries []*TeamSummary
	seen := make(map[int64]bool)
	for _, teamID := range teamIDs {
		if seen[teamID] {
			continue
		}
		seen[teamID] = true

		summary := &TeamSummary{TeamID: teamID}
		for _, item := range items {
			if item.WorkerTeamID == teamID {
				summary.Outgoing.add(item)
			}
			if item.ReportTeamID == teamID {
				summary.Incoming.add(item)
			}
		}

		if len(summary.Outgoing.Items) == 0 && len(summary.Incoming.Items) == 0 {
			continue
		}
		summary.NetAmount = summary.Outgoing.TotalAmount - summary.Incoming.TotalAmount
		summaries = append(summaries, summary)
	}

	return summaries
}
