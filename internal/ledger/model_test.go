package ledger

import (
	"math"
	"testing"
)

func TestEntryID(t *testing.T) {
	if got := EntryID(3, 42, "2024-06"); got != "3_42_2024-06" {
		t.Fatalf("EntryID = %q, want %q", got, "3_42_2024-06")
	}
}

func TestApplyCategoryTotalsReplacesAllNineFields(t *testing.T) {
	entry := NewEntry(1, 2, "2024-06")
	entry.Accommodation = 30000
	entry.Water = 5000
	entry.PrevMonthCarryover = 7000

	entry.ApplyCategoryTotals(map[Category]float64{
		CategoryAccommodation: 50000,
		CategoryGas:           10000,
	})

	if entry.Accommodation != 50000 {
		t.Errorf("accommodation = %v, want 50000", entry.Accommodation)
	}
	if entry.Gas != 10000 {
		t.Errorf("gas = %v, want 10000", entry.Gas)
	}
	if entry.Water != 0 {
		t.Errorf("water = %v, want 0 (full replace)", entry.Water)
	}
	if entry.PrevMonthCarryover != 7000 {
		t.Errorf("carryover = %v, want 7000 (untouched)", entry.PrevMonthCarryover)
	}
	if entry.TotalDeduction != 67000 {
		t.Errorf("total = %v, want 67000", entry.TotalDeduction)
	}
}

func TestRecomputeTotalSumsEveryCategoryPlusCarryover(t *testing.T) {
	entry := NewEntry(1, 2, "2024-06")
	for i, c := range Categories() {
		entry.SetCategory(c, float64((i+1)*1000))
	}
	entry.PrevMonthCarryover = 500

	entry.RecomputeTotal()

	// 1000+2000+...+9000 = 45000
	if entry.TotalDeduction != 45500 {
		t.Fatalf("total = %v, want 45500", entry.TotalDeduction)
	}
}

func TestSetCategoryClampsNonFiniteAmounts(t *testing.T) {
	entry := NewEntry(1, 2, "2024-06")
	entry.SetCategory(CategoryGas, math.NaN())
	entry.SetCategory(CategoryWater, math.Inf(1))

	if entry.Gas != 0 || entry.Water != 0 {
		t.Fatalf("non-finite amounts should clamp to 0, got gas=%v water=%v", entry.Gas, entry.Water)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Category("parking").Valid() {
		t.Error("unknown category should not be valid")
	}
}
