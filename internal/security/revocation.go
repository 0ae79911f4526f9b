package security

import (
	"sync"
	"time"
)

// RevocationStore records tokens revoked before their natural expiry. A token
// absent from the store is not revoked; an expired token never needs an entry
// because the expiry check rejects it independently.
//
// Implementations must be safe for concurrent use: every authenticated
// request performs a membership check.
type RevocationStore interface {
	// Revoke marks token revoked until expiresAt. Revoking an already-revoked
	// token is a no-op.
	Revoke(token string, expiresAt time.Time)
	// IsRevoked reports whether token is currently revoked. Entries whose
	// expiry has passed are evicted during the check and reported as not
	// revoked.
	IsRevoked(token string, now time.Time) bool
}

// MemoryRevocationStore is the process-local RevocationStore. Lookups evict
// expired entries lazily, bounding the map to tokens revoked before their
// natural expiry.
//
// Known limitation: state is not persisted, so a restart un-revokes any
// logged-out token that has not yet expired. Multi-instance deployments must
// inject a shared implementation instead.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryRevocationStore returns an empty in-memory revocation store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{entries: make(map[string]time.Time)}
}

// Revoke records token as revoked until expiresAt.
func (s *MemoryRevocationStore) Revoke(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = expiresAt
}

// IsRevoked reports whether token is revoked, evicting the entry if its
// expiry has passed.
func (s *MemoryRevocationStore) IsRevoked(token string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.entries[token]
	if !ok {
		return false
	}
	if !now.Before(expiresAt) {
		delete(s.entries, token)
		return false
	}
	return true
}

// Len returns the number of live entries. Intended for tests and diagnostics.
func (s *MemoryRevocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
