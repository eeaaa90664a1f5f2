package exchange

import (
	"github.com/okpyo/crewledger/internal/team"
)

// Resolver determines the support rate for an exchange shift from a
// preloaded set of rate profiles. Precedence, highest first:
//
//  1. the responsible team's custom rate keyed by the worker's team
//  2. the worker team's non-zero default rate
//  3. the worker's personal unit price
//
// A rate is always resolvable; the worst case falls through to the personal
// price, which may legitimately be 0. The borrower's specific override beats
// the lender's general policy, which beats the individual's base rate.
type Resolver struct {
	profiles map[int64]*team.RateProfile
}

// NewResolver creates a resolver over the given profiles. Teams absent from
// the map are treated as having no configuration.
func NewResolver(profiles map[int64]*team.RateProfile) *Resolver {
	if profiles == nil {
		profiles = map[int64]*team.RateProfile{}
	}
	return &Resolver{profiles: profiles}
}

// Resolve returns the rate to charge for a shift performed by a worker from
// workerTeamID on a site whose ledger belongs to responsibleTeamID.
func (r *Resolver) Resolve(workerTeamID, responsibleTeamID int64, workerUnitPrice float64) float64 {
	if p, ok := r.profiles[responsibleTeamID]; ok {
		// A configured override wins even when it is 0.
		if rate, found := p.CustomRateFor(workerTeamID); found {
			return rate
		}
	}

	if p, ok := r.profiles[workerTeamID]; ok && p.DefaultRate != 0 {
		return p.DefaultRate
	}

	return workerUnitPrice
}
