package billing

import (
	"fmt"
	"time"

	"github.com/okpyo/crewledger/internal/ledger"
)

// Document status values. A document is created as a draft and becomes
// confirmed exactly once; there is no reverse transition.
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
)

// Payer types a billing document can be issued to
const (
	IssuedToTeamLeader = "team_leader"
	IssuedToWorker     = "worker"
)

// LineItem is one charge row on a billing document. Amount may be negative
// when the operator records a credit.
type LineItem struct {
	ID     int64           `json:"id"`
	Label  string          `json:"label"`
	Amount float64         `json:"amount"`
	Target ledger.Category `json:"target_field"`
}

// Document is one month's accommodation charge statement issued to a payer
type Document struct {
	ID                 string      `json:"id"`
	YearMonth          string      `json:"year_month"` // YYYY-MM
	TeamID             int64       `json:"team_id"`
	TeamName           string      `json:"team_name"`
	IssuedToType       string      `json:"issued_to_type"`
	IssuedToWorkerID   int64       `json:"issued_to_worker_id"`
	IssuedToWorkerName string      `json:"issued_to_worker_name"`
	Status             string      `json:"status"`
	LineItems          []*LineItem `json:"line_items"`
	Memo               string      `json:"memo"`

	// PostedAdvancePaymentID references the ledger entry written when the
	// document was confirmed. Empty while the document is a draft.
	PostedAdvancePaymentID string `json:"posted_advance_payment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentID builds the deterministic composite document identifier. It
// doubles as the natural idempotency key for confirmation.
func DocumentID(teamID int64, issuedToType string, workerID int64, yearMonth string) string {
	return fmt.Sprintf("%d_%s_%d_%s", teamID, issuedToType, workerID, yearMonth)
}

// Confirmed reports whether the document has reached its terminal status
func (d *Document) Confirmed() bool {
	return d.Status == StatusConfirmed
}
