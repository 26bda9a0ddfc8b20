package auth

import (
	"sync"
	"time"
)

// RevocationStore tracks tokens invalidated by logout. Entries carry the
// expiry of the token itself, so the set stays bounded by the number of
// live sessions instead of growing forever.
type RevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time

	now func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks a token as logged out until it would have expired anyway.
// Tokens already past their lifetime are not stored.
func (s *RevocationStore) Revoke(token string, expiresAt time.Time) {
	if !expiresAt.After(s.now()) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = expiresAt
	s.purgeLocked()
}

// IsRevoked reports whether the token was logged out and is still within
// its original lifetime.
func (s *RevocationStore) IsRevoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.entries[token]
	if !ok {
		return false
	}
	if !expiresAt.After(s.now()) {
		delete(s.entries, token)
		return false
	}
	return true
}

// Len returns the number of currently tracked tokens.
func (s *RevocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	return len(s.entries)
}

func (s *RevocationStore) purgeLocked() {
	now := s.now()
	for token, expiresAt := range s.entries {
		if !expiresAt.After(now) {
			delete(s.entries, token)
		}
	}
}
