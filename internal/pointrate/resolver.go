// internal/pointrate/resolver.go
package pointrate

import (
	"context"

	"loyaltyhub/internal/membership"
)

// DefaultBasisPoints is the accrual rate applied when a partner program has
// no override: 100 basis points, i.e. 1% of the raw amount.
const DefaultBasisPoints = 100

// FixedRateResolver converts raw points into credited points using a fixed
// per-program rate expressed in basis points.
type FixedRateResolver struct {
	rates      map[membership.MembershipType]int
	defaultBps int
}

// NewFixedRateResolver builds a resolver with the given per-program
// overrides. A nil map means every program accrues at the default rate.
func NewFixedRateResolver(overrides map[membership.MembershipType]int) *FixedRateResolver {
	rates := make(map[membership.MembershipType]int, len(overrides))
	for t, bps := range overrides {
		rates[t] = bps
	}
	return &FixedRateResolver{
		rates:      rates,
		defaultBps: DefaultBasisPoints,
	}
}

// Resolve returns the credited amount for rawPoints, never negative.
func (r *FixedRateResolver) Resolve(ctx context.Context, membershipType membership.MembershipType, rawPoints int) (int, error) {
	bps, ok := r.rates[membershipType]
	if !ok {
		bps = r.defaultBps
	}

	credited := rawPoints * bps / 10000
	if credited < 0 {
		credited = 0
	}
	return credited, nil
}
