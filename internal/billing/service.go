package billing

import (
	"context"
	"errors"
	"math"

	"github.com/okpyo/crewledger/internal/ledger"
	"github.com/okpyo/crewledger/internal/metrics"
)

var (
	ErrDocumentNotFound = errors.New("billing document not found")
	ErrAlreadyConfirmed = errors.New("billing document is already confirmed")
	ErrMissingIdentity  = errors.New("team, worker and month are required before posting")
	ErrNoLineItems      = errors.New("billing document must have at least one line item")
	ErrInvalidPayer     = errors.New("issued_to_type must be team_leader or worker")
	ErrInvalidCategory  = errors.New("line item target is not a known deduction category")
)

// DocumentStore provides billing document persistence
type DocumentStore interface {
	LoadByID(ctx context.Context, id string) (*Document, error)
	ListByTeamMonth(ctx context.Context, teamID int64, yearMonth string) ([]*Document, error)
	Upsert(ctx context.Context, doc *Document) error
}

// LedgerStore provides deduction ledger persistence. Commit must apply the
// ledger write and the document confirmation atomically.
type LedgerStore interface {
	LoadByID(ctx context.Context, id string) (*ledger.Entry, error)
	Commit(ctx context.Context, entry *ledger.Entry, documentID string) error
}

// Service handles billing business logic
type Service struct {
	docs   DocumentStore
	ledger LedgerStore
}

// NewService creates a new billing service with its stores injected
func NewService(docs DocumentStore, ledgerStore LedgerStore) *Service {
	return &Service{docs: docs, ledger: ledgerStore}
}

func clamp(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return amount
}

// TotalLineItems sums the amounts of all line items. Non-finite amounts
// count as 0; the input surface is spreadsheet-like and a stray NaN must
// not poison the total.
func TotalLineItems(items []*LineItem) float64 {
	var total float64
	for _, item := range items {
		total += clamp(item.Amount)
	}
	return total
}

// CategoryTotals groups line items by target category, summing amounts
// within each group
func CategoryTotals(items []*LineItem) map[ledger.Category]float64 {
	totals := make(map[ledger.Category]float64)
	for _, item := range items {
		if !item.Target.Valid() {
			continue
		}
		totals[item.Target] += clamp(item.Amount)
	}
	return totals
}

// Save validates and persists a draft document. Writing over a confirmed
// document is refused; confirmed documents are immutable.
func (s *Service) Save(ctx context.Context, doc *Document) (*Document, error) {
	if doc.TeamID == 0 || doc.YearMonth == "" || doc.IssuedToWorkerID == 0 {
		return nil, ErrMissingIdentity
	}
	if doc.IssuedToType != IssuedToTeamLeader && doc.IssuedToType != IssuedToWorker {
		return nil, ErrInvalidPayer
	}
	if len(doc.LineItems) == 0 {
		return nil, ErrNoLineItems
	}
	for _, item := range doc.LineItems {
		if !item.Target.Valid() {
			return nil, ErrInvalidCategory
		}
	}

	existing, err := s.docs.LoadByID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Confirmed() {
		return nil, ErrAlreadyConfirmed
	}

	doc.Status = StatusDraft
	if err := s.docs.Upsert(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// GetByID retrieves a billing document
func (s *Service) GetByID(ctx context.Context, id string) (*Document, error) {
	doc, err := s.docs.LoadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// ListByTeamMonth retrieves a team's billing documents for a month
func (s *Service) ListByTeamMonth(ctx context.Context, teamID int64, yearMonth string) ([]*Document, error) {
	return s.docs.ListByTeamMonth(ctx, teamID, yearMonth)
}

// ConfirmAndPost posts a document's per-category totals into the payer's
// monthly deduction ledger and marks the document confirmed, atomically.
// Confirming a document that is already confirmed is a no-op; the document
// ID is the idempotency key, so retries and double clicks are safe.
func (s *Service) ConfirmAndPost(ctx context.Context, id string) (*Document, error) {
	doc, err := s.docs.LoadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	if doc.Confirmed() {
		metrics.ObserveBillingConfirm("noop")
		return doc, nil
	}

	if doc.TeamID == 0 || doc.YearMonth == "" || doc.IssuedToWorkerID == 0 {
		return nil, ErrMissingIdentity
	}

	totals := CategoryTotals(doc.LineItems)

	entryID := ledger.EntryID(doc.TeamID, doc.IssuedToWorkerID, doc.YearMonth)
	entry, err := s.ledger.LoadByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = ledger.NewEntry(doc.TeamID, doc.IssuedToWorkerID, doc.YearMonth)
	}

	// Full replace of the nine billing-derived categories; carryover and
	// total recompute happen inside ApplyCategoryTotals.
	entry.ApplyCategoryTotals(totals)

	if err := s.ledger.Commit(ctx, entry, doc.ID); err != nil {
		metrics.ObserveBillingConfirm("error")
		return nil, err
	}
	metrics.ObserveBillingConfirm("confirmed")

	doc.Status = StatusConfirmed
	doc.PostedAdvancePaymentID = entry.ID

	return doc, nil
}
