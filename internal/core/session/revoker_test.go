package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker(t *testing.T) {
	t.Parallel()

	r := NewMemoryRevoker()
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens are unaffected.
	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRevoker_ExpiredEntriesClear(t *testing.T) {
	t.Parallel()

	r := NewMemoryRevoker()
	ctx := context.Background()

	// Non-positive TTL means the token is already dead; nothing to record.
	require.NoError(t, r.Revoke(ctx, "old", -time.Second))
	revoked, err := r.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
