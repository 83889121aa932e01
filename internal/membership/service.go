// internal/membership/service.go
package membership

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the membership service.
type Service interface {
	AddMembership(ctx context.Context, userID string, membershipType MembershipType, point int) (*MembershipSummary, error)
	GetMembershipList(ctx context.Context, userID string) ([]*MembershipSummary, error)
	GetMembership(ctx context.Context, membershipID uuid.UUID, requesterID string) (*MembershipDetail, error)
	RemoveMembership(ctx context.Context, membershipID uuid.UUID, requesterID string) error
	AccumulateMembershipPoint(ctx context.Context, membershipID uuid.UUID, requesterID string, amount int) error
}
