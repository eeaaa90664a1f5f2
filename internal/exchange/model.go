package exchange

import "time"

// SettlementItem is one priced exchange shift: a worker from one team
// credited to another team's site ledger, with the resolved support rate
// applied.
type SettlementItem struct {
	WorkDate     time.Time `json:"work_date"`
	SiteID       int64     `json:"site_id"`
	ReportTeamID int64     `json:"report_team_id"`
	WorkerTeamID int64     `json:"worker_team_id"`
	WorkerID     int64     `json:"worker_id"`
	WorkerName   string    `json:"worker_name"`
	ManDay       float64   `json:"man_day"`
	UnitPrice    float64   `json:"unit_price"`
	SupportRate  float64   `json:"support_rate"`
	Amount       float64   `json:"amount"` // man_day * support_rate
}

// SummaryLeg is one direction of a team's settlement: either shifts its
// workers performed elsewhere (outgoing) or shifts outsiders performed on
// its sites (incoming).
type SummaryLeg struct {
	Items        []*SettlementItem `json:"items"`
	TotalManDays float64           `json:"total_man_days"`
	TotalAmount  float64           `json:"total_amount"`
}

func (l *SummaryLeg) add(item *SettlementItem) {
	l.Items = append(l.Items, item)
	l.TotalManDays += item.ManDay
	l.TotalAmount += item.Amount
}

// TeamSummary is one team's settlement position for the queried period.
// Outgoing is money owed TO the team, incoming is money owed BY the team,
// NetAmount = Outgoing.TotalAmount - Incoming.TotalAmount.
type TeamSummary struct {
	TeamID    int64      `json:"team_id"`
	Outgoing  SummaryLeg `json:"outgoing"`
	Incoming  SummaryLeg `json:"incoming"`
	NetAmount float64    `json:"net_amount"`
}
