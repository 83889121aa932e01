// internal/storage/memory_test.go
package storage_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"loyaltyhub/internal/membership"
	"loyaltyhub/internal/storage"
)

func TestMemoryInsertAssignsID(t *testing.T) {
	repo := storage.NewMemoryRepository()

	created, err := repo.Insert(context.Background(), &membership.Membership{
		UserID:         "userId",
		MembershipType: membership.TypeNaver,
		Point:          10000,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestMemoryInsertRejectsDuplicatePair(t *testing.T) {
	repo := storage.NewMemoryRepository()

	_, err := repo.Insert(context.Background(), &membership.Membership{UserID: "userId", MembershipType: membership.TypeNaver})
	require.NoError(t, err)

	_, err = repo.Insert(context.Background(), &membership.Membership{UserID: "userId", MembershipType: membership.TypeNaver})
	assert.ErrorIs(t, err, membership.ErrDuplicatedMembershipRegister)

	// A different program for the same user is fine.
	_, err = repo.Insert(context.Background(), &membership.Membership{UserID: "userId", MembershipType: membership.TypeKakao})
	assert.NoError(t, err)
}

func TestMemoryFindByIDAbsent(t *testing.T) {
	repo := storage.NewMemoryRepository()

	found, err := repo.FindByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryFindByUserAndType(t *testing.T) {
	repo := storage.NewMemoryRepository()

	created, err := repo.Insert(context.Background(), &membership.Membership{UserID: "userId", MembershipType: membership.TypeLine})
	require.NoError(t, err)

	found, err := repo.FindByUserAndType(context.Background(), "userId", membership.TypeLine)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := repo.FindByUserAndType(context.Background(), "userId", membership.TypeNaver)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryFindAllByUserFilters(t *testing.T) {
	repo := storage.NewMemoryRepository()

	_, err := repo.Insert(context.Background(), &membership.Membership{UserID: "a", MembershipType: membership.TypeNaver})
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), &membership.Membership{UserID: "a", MembershipType: membership.TypeKakao})
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), &membership.Membership{UserID: "b", MembershipType: membership.TypeNaver})
	require.NoError(t, err)

	records, err := repo.FindAllByUser(context.Background(), "a")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, m := range records {
		assert.Equal(t, "a", m.UserID)
	}
}

func TestMemoryDeleteAbsent(t *testing.T) {
	repo := storage.NewMemoryRepository()

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, membership.ErrMembershipNotFound)
}

func TestMemoryAccumulateAbsent(t *testing.T) {
	repo := storage.NewMemoryRepository()

	err := repo.AccumulatePoint(context.Background(), uuid.New(), 100)

	assert.ErrorIs(t, err, membership.ErrMembershipNotFound)
}

func TestMemoryAccumulatePointIsAdditive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := storage.NewMemoryRepository()
		created, err := repo.Insert(context.Background(), &membership.Membership{
			UserID:         "userId",
			MembershipType: membership.TypeNaver,
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}

		deltas := rapid.SliceOfN(rapid.IntRange(0, 1_000_000), 0, 50).Draw(t, "deltas")
		total := 0
		for _, delta := range deltas {
			if err := repo.AccumulatePoint(context.Background(), created.ID, delta); err != nil {
				t.Fatalf("accumulate: %v", err)
			}
			total += delta
		}

		found, err := repo.FindByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if found.Point != total {
			t.Fatalf("point = %d, want %d", found.Point, total)
		}
	})
}

func TestMemoryUniquePairInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := storage.NewMemoryRepository()
		users := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c"}), 1, 20).Draw(t, "users")
		types := []membership.MembershipType{membership.TypeNaver, membership.TypeKakao, membership.TypeLine}

		type pair struct {
			user string
			mt   membership.MembershipType
		}
		seen := make(map[pair]bool)

		for i, user := range users {
			mt := types[i%len(types)]
			_, err := repo.Insert(context.Background(), &membership.Membership{UserID: user, MembershipType: mt})
			key := pair{user, mt}
			if seen[key] {
				if err != membership.ErrDuplicatedMembershipRegister {
					t.Fatalf("expected duplicate error for %v, got %v", key, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("insert %v: %v", key, err)
			}
			seen[key] = true
		}
	})
}
