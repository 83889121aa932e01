// internal/membership/repository.go
package membership

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the keyed record store for membership records. Lookups
// return (nil, nil) when no record matches; the store assigns the record
// ID on insert.
type Repository interface {
	Insert(ctx context.Context, m *Membership) (*Membership, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Membership, error)
	FindByUserAndType(ctx context.Context, userID string, membershipType MembershipType) (*Membership, error)
	FindAllByUser(ctx context.Context, userID string) ([]*Membership, error)

	// AccumulatePoint atomically adds delta to the record's balance.
	AccumulatePoint(ctx context.Context, id uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatePointResolver converts a raw point amount into the credited amount
// for a given partner program.
type RatePointResolver interface {
	Resolve(ctx context.Context, membershipType MembershipType, rawPoints int) (int, error)
}
