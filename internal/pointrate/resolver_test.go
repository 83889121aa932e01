// internal/pointrate/resolver_test.go
package pointrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyaltyhub/internal/membership"
	"loyaltyhub/internal/pointrate"
)

func TestFixedRateResolverDefaultRate(t *testing.T) {
	resolver := pointrate.NewFixedRateResolver(nil)

	tests := []struct {
		raw  int
		want int
	}{
		{10000, 100},
		{100, 1},
		{99, 0},
		{0, 0},
	}
	for _, tt := range tests {
		got, err := resolver.Resolve(context.Background(), membership.TypeNaver, tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw=%d", tt.raw)
	}
}

func TestFixedRateResolverPerProgramOverride(t *testing.T) {
	resolver := pointrate.NewFixedRateResolver(map[membership.MembershipType]int{
		membership.TypeKakao: 500, // 5%
	})

	got, err := resolver.Resolve(context.Background(), membership.TypeKakao, 10000)
	require.NoError(t, err)
	assert.Equal(t, 500, got)

	// Programs without an override use the default rate.
	got, err = resolver.Resolve(context.Background(), membership.TypeNaver, 10000)
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}
