package billing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okpyo/crewledger/internal/ledger"
)

type stubDocumentStore struct {
	docs map[string]*Document
}

func (s *stubDocumentStore) LoadByID(_ context.Context, id string) (*Document, error) {
	return s.docs[id], nil
}

func (s *stubDocumentStore) ListByTeamMonth(_ context.Context, teamID int64, yearMonth string) ([]*Document, error) {
	var out []*Document
	for _, doc := range s.docs {
		if doc.TeamID == teamID && doc.YearMonth == yearMonth {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *stubDocumentStore) Upsert(_ context.Context, doc *Document) error {
	s.docs[doc.ID] = doc
	return nil
}

// stubLedgerStore mimics the transactional repository: Commit writes the
// entry and flips the document to confirmed in one step, or fails entirely.
type stubLedgerStore struct {
	entries   map[string]*ledger.Entry
	docs      *stubDocumentStore
	commitErr error
	commits   int
}

func (s *stubLedgerStore) LoadByID(_ context.Context, id string) (*ledger.Entry, error) {
	return s.entries[id], nil
}

func (s *stubLedgerStore) Commit(_ context.Context, entry *ledger.Entry, documentID string) error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.commits++
	copied := *entry
	s.entries[entry.ID] = &copied
	if doc, ok := s.docs.docs[documentID]; ok && !doc.Confirmed() {
		doc.Status = StatusConfirmed
		doc.PostedAdvancePaymentID = entry.ID
	}
	return nil
}

func newTestService(docs ...*Document) (*Service, *stubDocumentStore, *stubLedgerStore) {
	docStore := &stubDocumentStore{docs: make(map[string]*Document)}
	for _, doc := range docs {
		docStore.docs[doc.ID] = doc
	}
	ledgerStore := &stubLedgerStore{entries: make(map[string]*ledger.Entry), docs: docStore}
	return NewService(docStore, ledgerStore), docStore, ledgerStore
}

func draftDocument(items ...*LineItem) *Document {
	return &Document{
		ID:               DocumentID(1, IssuedToWorker, 10, "2024-06"),
		YearMonth:        "2024-06",
		TeamID:           1,
		TeamName:         "Formwork A",
		IssuedToType:     IssuedToWorker,
		IssuedToWorkerID: 10,
		Status:           StatusDraft,
		LineItems:        items,
	}
}

func TestTotalLineItems(t *testing.T) {
	items := []*LineItem{
		{Amount: 300000, Target: ledger.CategoryAccommodation},
		{Amount: 25000, Target: ledger.CategoryInternet},
		{Amount: -5000, Target: ledger.CategoryFines},
	}
	if got := TotalLineItems(items); got != 320000 {
		t.Fatalf("total = %v, want 320000", got)
	}
}

func TestTotalLineItemsClampsNonFinite(t *testing.T) {
	items := []*LineItem{
		{Amount: 1000, Target: ledger.CategoryGas},
		{Amount: math.NaN(), Target: ledger.CategoryGas},
		{Amount: math.Inf(-1), Target: ledger.CategoryWater},
	}
	if got := TotalLineItems(items); got != 1000 {
		t.Fatalf("total = %v, want 1000", got)
	}
}

func TestConfirmAndPostWritesLedgerAndConfirms(t *testing.T) {
	doc := draftDocument(
		&LineItem{Label: "Rent", Amount: 300000, Target: ledger.CategoryAccommodation},
		&LineItem{Label: "Gas", Amount: 10000, Target: ledger.CategoryGas},
	)
	service, docStore, ledgerStore := newTestService(doc)

	confirmed, err := service.ConfirmAndPost(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("ConfirmAndPost: %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}

	entry := ledgerStore.entries[ledger.EntryID(1, 10, "2024-06")]
	if entry == nil {
		t.Fatal("ledger entry was not written")
	}
	if entry.Accommodation != 300000 || entry.Gas != 10000 {
		t.Errorf("categories = %v/%v, want 300000/10000", entry.Accommodation, entry.Gas)
	}
	if entry.TotalDeduction != 310000 {
		t.Errorf("total = %v, want 310000", entry.TotalDeduction)
	}
	if docStore.docs[doc.ID].PostedAdvancePaymentID != entry.ID {
		t.Errorf("document back-reference = %q, want %q", docStore.docs[doc.ID].PostedAdvancePaymentID, entry.ID)
	}
}

func TestConfirmAndPostIsIdempotent(t *testing.T) {
	doc := draftDocument(&LineItem{Label: "Rent", Amount: 50000, Target: ledger.CategoryAccommodation})
	service, _, ledgerStore := newTestService(doc)

	if _, err := service.ConfirmAndPost(context.Background(), doc.ID); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	first := *ledgerStore.entries[ledger.EntryID(1, 10, "2024-06")]

	// Second confirm is a no-op: no additional commit, ledger unchanged.
	if _, err := service.ConfirmAndPost(context.Background(), doc.ID); err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if ledgerStore.commits != 1 {
		t.Errorf("commits = %d, want 1", ledgerStore.commits)
	}
	second := *ledgerStore.entries[ledger.EntryID(1, 10, "2024-06")]
	if first != second {
		t.Errorf("ledger entry changed on repeated confirm: %+v vs %+v", first, second)
	}
}

func TestConfirmAndPostReplacesCategoriesAndKeepsCarryover(t *testing.T) {
	doc := draftDocument(
		&LineItem{Label: "Rent", Amount: 50000, Target: ledger.CategoryAccommodation},
		&LineItem{Label: "Gas", Amount: 10000, Target: ledger.CategoryGas},
	)
	service, _, ledgerStore := newTestService(doc)

	// Existing entry carries values from a prior, different document.
	prior := ledger.NewEntry(1, 10, "2024-06")
	prior.Accommodation = 30000
	prior.Water = 5000
	prior.PrevMonthCarryover = 7000
	prior.RecomputeTotal()
	ledgerStore.entries[prior.ID] = prior

	if _, err := service.ConfirmAndPost(context.Background(), doc.ID); err != nil {
		t.Fatalf("ConfirmAndPost: %v", err)
	}

	entry := ledgerStore.entries[prior.ID]
	if entry.Accommodation != 50000 || entry.Gas != 10000 {
		t.Errorf("categories = %v/%v, want 50000/10000", entry.Accommodation, entry.Gas)
	}
	if entry.Water != 0 {
		t.Errorf("water = %v, want 0 (full replace of billing categories)", entry.Water)
	}
	if entry.PrevMonthCarryover != 7000 {
		t.Errorf("carryover = %v, want 7000 (untouched)", entry.PrevMonthCarryover)
	}
	if entry.TotalDeduction != 67000 {
		t.Errorf("total = %v, want 67000", entry.TotalDeduction)
	}
}

func TestConfirmAndPostMissingIdentityPostsNothing(t *testing.T) {
	doc := draftDocument(&LineItem{Label: "Rent", Amount: 50000, Target: ledger.CategoryAccommodation})
	doc.IssuedToWorkerID = 0
	service, docStore, ledgerStore := newTestService(doc)

	_, err := service.ConfirmAndPost(context.Background(), doc.ID)
	if !errors.Is(err, ErrMissingIdentity) {
		t.Fatalf("err = %v, want ErrMissingIdentity", err)
	}
	if len(ledgerStore.entries) != 0 {
		t.Error("ledger entry written despite validation failure")
	}
	if docStore.docs[doc.ID].Status != StatusDraft {
		t.Error("document left draft expected")
	}
}

func TestConfirmAndPostUnknownDocument(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.ConfirmAndPost(context.Background(), "1_worker_10_2024-06")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestConfirmAndPostCommitFailureLeavesDraft(t *testing.T) {
	doc := draftDocument(&LineItem{Label: "Rent", Amount: 50000, Target: ledger.CategoryAccommodation})
	service, docStore, ledgerStore := newTestService(doc)
	ledgerStore.commitErr = errors.New("connection reset")

	_, err := service.ConfirmAndPost(context.Background(), doc.ID)
	if err == nil {
		t.Fatal("expected commit error to propagate")
	}
	if docStore.docs[doc.ID].Status != StatusDraft {
		t.Error("document must stay draft when the commit fails")
	}
	if len(ledgerStore.entries) != 0 {
		t.Error("no ledger entry should be visible after a failed commit")
	}
}

func TestSaveRefusesConfirmedDocument(t *testing.T) {
	doc := draftDocument(&LineItem{Label: "Rent", Amount: 50000, Target: ledger.CategoryAccommodation})
	doc.Status = StatusConfirmed
	service, _, _ := newTestService(doc)

	replacement := draftDocument(&LineItem{Label: "Rent", Amount: 1, Target: ledger.CategoryAccommodation})
	_, err := service.Save(context.Background(), replacement)
	if !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("err = %v, want ErrAlreadyConfirmed", err)
	}
}

func TestSaveValidation(t *testing.T) {
	service, _, _ := newTestService()

	tests := []struct {
		name    string
		mutate  func(*Document)
		wantErr error
	}{
		{"missing worker", func(d *Document) { d.IssuedToWorkerID = 0 }, ErrMissingIdentity},
		{"missing month", func(d *Document) { d.YearMonth = "" }, ErrMissingIdentity},
		{"bad payer type", func(d *Document) { d.IssuedToType = "tenant" }, ErrInvalidPayer},
		{"no line items", func(d *Document) { d.LineItems = nil }, ErrNoLineItems},
		{"unknown category", func(d *Document) { d.LineItems[0].Target = "parking" }, ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := draftDocument(&LineItem{Label: "Rent", Amount: 1, Target: ledger.CategoryAccommodation})
			tt.mutate(doc)
			if _, err := service.Save(context.Background(), doc); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentID(t *testing.T) {
	if got := DocumentID(3, IssuedToTeamLeader, 42, "2024-06"); got != "3_team_leader_42_2024-06" {
		t.Fatalf("DocumentID = %q", got)
	}
}
