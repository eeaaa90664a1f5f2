package exchange

import (
	"testing"

	"github.com/okpyo/crewledger/internal/team"
)

func TestResolveCustomRateWinsOverEverything(t *testing.T) {
	profiles := map[int64]*team.RateProfile{
		1: {TeamID: 1, DefaultRate: 120000},
		2: {TeamID: 2, CustomRates: map[int64]float64{1: 95000}},
	}
	r := NewResolver(profiles)

	got := r.Resolve(1, 2, 150000)
	if got != 95000 {
		t.Fatalf("Resolve = %v, want 95000 (responsible team's custom rate)", got)
	}
}

func TestResolveFallbackChain(t *testing.T) {
	tests := []struct {
		name      string
		profiles  map[int64]*team.RateProfile
		unitPrice float64
		want      float64
	}{
		{
			name: "worker team default rate when no custom rate",
			profiles: map[int64]*team.RateProfile{
				1: {TeamID: 1, DefaultRate: 120000},
				2: {TeamID: 2, CustomRates: map[int64]float64{}},
			},
			unitPrice: 150000,
			want:      120000,
		},
		{
			name: "personal unit price when default rate is unset",
			profiles: map[int64]*team.RateProfile{
				1: {TeamID: 1, DefaultRate: 0},
			},
			unitPrice: 150000,
			want:      150000,
		},
		{
			name:      "personal unit price when no profiles exist at all",
			profiles:  nil,
			unitPrice: 130000,
			want:      130000,
		},
		{
			name: "zero custom rate is still a configured override",
			profiles: map[int64]*team.RateProfile{
				1: {TeamID: 1, DefaultRate: 120000},
				2: {TeamID: 2, CustomRates: map[int64]float64{1: 0}},
			},
			unitPrice: 150000,
			want:      0,
		},
		{
			name: "custom rate for a different team does not apply",
			profiles: map[int64]*team.RateProfile{
				2: {TeamID: 2, CustomRates: map[int64]float64{3: 99999}},
			},
			unitPrice: 140000,
			want:      140000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.profiles)
			got := r.Resolve(1, 2, tt.unitPrice)
			if got != tt.want {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveZeroPersonalPriceIsLegitimate(t *testing.T) {
	r := NewResolver(nil)
	if got := r.Resolve(1, 2, 0); got != 0 {
		t.Fatalf("Resolve = %v, want 0", got)
	}
}
