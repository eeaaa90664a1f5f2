package ledger

import (
	"fmt"
	"math"
	"time"
)

// Category is a deduction category on the advance payment ledger. The set is
// closed: every billing line item targets exactly one of these nine.
type Category string

const (
	CategoryAccommodation Category = "accommodation"
	CategoryPrivateRoom   Category = "private_room"
	CategoryElectricity   Category = "electricity"
	CategoryGas           Category = "gas"
	CategoryInternet      Category = "internet"
	CategoryWater         Category = "water"
	CategoryFines         Category = "fines"
	CategoryDeposit       Category = "deposit"
	CategoryGloves        Category = "gloves"
)

// Categories returns all nine deduction categories in display order
func Categories() []Category {
	return []Category{
		CategoryAccommodation,
		CategoryPrivateRoom,
		CategoryElectricity,
		CategoryGas,
		CategoryInternet,
		CategoryWater,
		CategoryFines,
		CategoryDeposit,
		CategoryGloves,
	}
}

// Valid reports whether c is one of the nine known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryAccommodation, CategoryPrivateRoom, CategoryElectricity,
		CategoryGas, CategoryInternet, CategoryWater,
		CategoryFines, CategoryDeposit, CategoryGloves:
		return true
	}
	return false
}

// Entry is one worker's monthly deduction ledger row. TotalDeduction is
// always recomputed from its parts, never stored independently.
type Entry struct {
	ID        string `json:"id"`
	TeamID    int64  `json:"team_id"`
	WorkerID  int64  `json:"worker_id"`
	YearMonth string `json:"year_month"` // YYYY-MM

	Accommodation float64 `json:"accommodation"`
	PrivateRoom   float64 `json:"private_room"`
	Electricity   float64 `json:"electricity"`
	Gas           float64 `json:"gas"`
	Internet      float64 `json:"internet"`
	Water         float64 `json:"water"`
	Fines         float64 `json:"fines"`
	Deposit       float64 `json:"deposit"`
	Gloves        float64 `json:"gloves"`

	PrevMonthCarryover float64 `json:"prev_month_carryover"`
	TotalDeduction     float64 `json:"total_deduction"`

	UpdatedAt time.Time `json:"updated_at"`
}

// EntryID builds the deterministic composite ledger identifier
func EntryID(teamID, workerID int64, yearMonth string) string {
	return fmt.Sprintf("%d_%d_%s", teamID, workerID, yearMonth)
}

// NewEntry creates an empty ledger entry for a worker-month
func NewEntry(teamID, workerID int64, yearMonth string) *Entry {
	return &Entry{
		ID:        EntryID(teamID, workerID, yearMonth),
		TeamID:    teamID,
		WorkerID:  workerID,
		YearMonth: yearMonth,
	}
}

// ResetCategories zeroes the nine billing-derived category fields.
// PrevMonthCarryover is not a billing category and is left alone.
func (e *Entry) ResetCategories() {
	e.Accommodation = 0
	e.PrivateRoom = 0
	e.Electricity = 0
	e.Gas = 0
	e.Internet = 0
	e.Water = 0
	e.Fines = 0
	e.Deposit = 0
	e.Gloves = 0
}

// SetCategory writes one category field
func (e *Entry) SetCategory(c Category, amount float64) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	switch c {
	case CategoryAccommodation:
		e.Accommodation = amount
	case CategoryPrivateRoom:
		e.PrivateRoom = amount
	case CategoryElectricity:
		e.Electricity = amount
	case CategoryGas:
		e.Gas = amount
	case CategoryInternet:
		e.Internet = amount
	case CategoryWater:
		e.Water = amount
	case CategoryFines:
		e.Fines = amount
	case CategoryDeposit:
		e.Deposit = amount
	case CategoryGloves:
		e.Gloves = amount
	}
}

// CategoryAmount reads one category field
func (e *Entry) CategoryAmount(c Category) float64 {
	switch c {
	case CategoryAccommodation:
		return e.Accommodation
	case CategoryPrivateRoom:
		return e.PrivateRoom
	case CategoryElectricity:
		return e.Electricity
	case CategoryGas:
		return e.Gas
	case CategoryInternet:
		return e.Internet
	case CategoryWater:
		return e.Water
	case CategoryFines:
		return e.Fines
	case CategoryDeposit:
		return e.Deposit
	case CategoryGloves:
		return e.Gloves
	}
	return 0
}

// ApplyCategoryTotals replaces the entry's billing-derived fields with the
// given per-category sums. Categories absent from totals end up 0 — this is
// a full replace of one billing document's contribution, not an incremental
// add, so re-posting never double-counts.
func (e *Entry) ApplyCategoryTotals(totals map[Category]float64) {
	e.ResetCategories()
	for _, c := range Categories() {
		if amount, ok := totals[c]; ok {
			e.SetCategory(c, amount)
		}
	}
	e.RecomputeTotal()
}

// RecomputeTotal recalculates TotalDeduction as the sum of all nine
// categories plus the previous month's carryover
func (e *Entry) RecomputeTotal() {
	total := e.PrevMonthCarryover
	for _, c := range Categories() {
		total += e.CategoryAmount(c)
	}
	e.TotalDeduction = total
}
