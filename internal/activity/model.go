package activity

import "time"

// Entry represents one audit log row: who did what to which entity
type Entry struct {
	ID         int64     `json:"id"`
	ActorID    int64     `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType *string   `json:"entity_type,omitempty"` // e.g., "REPORT", "BILLING", "TEAM"
	EntityID   *string   `json:"entity_id,omitempty"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

// Action values recorded by the application
const (
	ActionReportCreated = "REPORT_CREATED"
	ActionReportDeleted = "REPORT_DELETED"
	ActionBillingSaved  = "BILLING_SAVED"
	ActionBillingPosted = "BILLING_POSTED"
	ActionRateUpdated   = "RATE_UPDATED"
	ActionCarryoverSet  = "CARRYOVER_SET"
)
