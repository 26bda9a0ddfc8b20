package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func storeAt(clock *time.Time) *RevocationStore {
	s := NewRevocationStore()
	s.now = func() time.Time { return *clock }
	return s
}

func TestRevokeUntilExpiry(t *testing.T) {
	clock := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	s := storeAt(&clock)

	s.Revoke("tok", clock.Add(time.Hour))
	assert.True(t, s.IsRevoked("tok"))
	assert.False(t, s.IsRevoked("other"))

	// Past the token's own lifetime the entry is irrelevant and dropped.
	clock = clock.Add(2 * time.Hour)
	assert.False(t, s.IsRevoked("tok"))
	assert.Equal(t, 0, s.Len())
}

func TestRevokeExpiredTokenNotStored(t *testing.T) {
	clock := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	s := storeAt(&clock)

	s.Revoke("stale", clock.Add(-time.Minute))
	assert.False(t, s.IsRevoked("stale"))
	assert.Equal(t, 0, s.Len())
}

func TestRevokePurgesOldEntries(t *testing.T) {
	clock := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	s := storeAt(&clock)

	s.Revoke("short", clock.Add(time.Minute))
	s.Revoke("long", clock.Add(time.Hour))
	assert.Equal(t, 2, s.Len())

	// The next write sweeps entries whose tokens have expired.
	clock = clock.Add(30 * time.Minute)
	s.Revoke("another", clock.Add(time.Hour))

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsRevoked("short"))
	assert.True(t, s.IsRevoked("long"))
	assert.True(t, s.IsRevoked("another"))
}
