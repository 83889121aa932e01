// internal/storage/memory.go
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"loyaltyhub/internal/membership"
)

// MemoryRepository is a mutex-guarded in-memory record store. It backs the
// service in tests and in runs without a DATABASE_URL, and enforces the
// same (user_id, membership_type) uniqueness as the PostgreSQL schema.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]membership.Membership
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]membership.Membership)}
}

func (r *MemoryRepository) Insert(ctx context.Context, m *membership.Membership) (*membership.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.UserID == m.UserID && existing.MembershipType == m.MembershipType {
			return nil, membership.ErrDuplicatedMembershipRegister
		}
	}

	record := *m
	record.ID = uuid.New()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = record

	return &record, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *MemoryRepository) FindByUserAndType(ctx context.Context, userID string, membershipType membership.MembershipType) (*membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.UserID == userID && record.MembershipType == membershipType {
			record := record
			return &record, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindAllByUser(ctx context.Context, userID string) ([]*membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*membership.Membership
	for _, record := range r.records {
		if record.UserID == userID {
			record := record
			records = append(records, &record)
		}
	}
	return records, nil
}

func (r *MemoryRepository) AccumulatePoint(ctx context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return membership.ErrMembershipNotFound
	}
	record.Point += delta
	record.UpdatedAt = time.Now().UTC()
	r.records[id] = record
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return membership.ErrMembershipNotFound
	}
	delete(r.records, id)
	return nil
}
