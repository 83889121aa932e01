// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	repo     Repository
	resolver RatePointResolver
}

// NewService creates a new membership service instance.
func NewService(repo Repository, resolver RatePointResolver) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
	}
}

// AddMembership registers a new membership for the user. At most one record
// may exist per (user, program) pair.
func (s *service) AddMembership(ctx context.Context, userID string, membershipType MembershipType, point int) (*MembershipSummary, error) {
	existing, err := s.repo.FindByUserAndType(ctx, userID, membershipType)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing membership: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicatedMembershipRegister
	}

	created, err := s.repo.Insert(ctx, &Membership{
		UserID:         userID,
		MembershipType: membershipType,
		Point:          point,
	})
	if err != nil {
		return nil, err
	}

	return created.summary(), nil
}

// GetMembershipList returns summaries of every membership the user owns.
func (s *service) GetMembershipList(ctx context.Context, userID string) ([]*MembershipSummary, error) {
	records, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	summaries := make([]*MembershipSummary, 0, len(records))
	for _, m := range records {
		summaries = append(summaries, m.summary())
	}
	return summaries, nil
}

// GetMembership returns the detail projection of a single membership. A
// record owned by someone else is reported as not found so that lookups
// cannot probe for other users' records.
func (s *service) GetMembership(ctx context.Context, membershipID uuid.UUID, requesterID string) (*MembershipDetail, error) {
	m, err := s.repo.FindByID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}
	if m == nil || m.UserID != requesterID {
		return nil, ErrMembershipNotFound
	}

	return m.detail(), nil
}

// RemoveMembership deletes a membership owned by the requester. Unlike the
// read path, an ownership mismatch here is its own failure kind.
func (s *service) RemoveMembership(ctx context.Context, membershipID uuid.UUID, requesterID string) error {
	m, err := s.repo.FindByID(ctx, membershipID)
	if err != nil {
		return fmt.Errorf("failed to look up membership: %w", err)
	}
	if m == nil {
		return ErrMembershipNotFound
	}
	if m.UserID != requesterID {
		return ErrNotMembershipOwner
	}

	return s.repo.Delete(ctx, membershipID)
}

// AccumulateMembershipPoint credits points to a membership. The credited
// amount comes from the rate resolver, not the raw request amount.
//
// requesterID is accepted for parity with the other mutations but is not
// checked against the record's owner.
func (s *service) AccumulateMembershipPoint(ctx context.Context, membershipID uuid.UUID, requesterID string, amount int) error {
	m, err := s.repo.FindByID(ctx, membershipID)
	if err != nil {
		return fmt.Errorf("failed to look up membership: %w", err)
	}
	if m == nil {
		return ErrMembershipNotFound
	}

	credited, err := s.resolver.Resolve(ctx, m.MembershipType, amount)
	if err != nil {
		return fmt.Errorf("failed to resolve credited points: %w", err)
	}

	return s.repo.AccumulatePoint(ctx, membershipID, credited)
}
