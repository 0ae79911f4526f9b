package security

import (
	"errors"
	"testing"
	"time"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func newTestProvider(t *testing.T, ttl time.Duration) (*TokenProvider, *MemoryRevocationStore) {
	t.Helper()
	store := NewMemoryRevocationStore()
	return NewTokenProvider([]byte(testSigningKey), "pagecraft-test", ttl, store), store
}

func TestTokenProvider_IssueAndVerify(t *testing.T) {
	p, _ := newTestProvider(t, time.Hour)

	token, expiresAt, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiry %v should be in the future", expiresAt)
	}

	claims, err := p.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("claims should carry issued-at and expiry")
	}
}

func TestTokenProvider_VerifyExpired(t *testing.T) {
	p, _ := newTestProvider(t, -time.Minute)

	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_VerifyShortTTLElapses(t *testing.T) {
	p, _ := newTestProvider(t, 50*time.Millisecond)

	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Verify(token); err != nil {
		t.Fatalf("Verify before expiry: %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify after TTL elapsed: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_VerifyMalformed(t *testing.T) {
	p, _ := newTestProvider(t, time.Hour)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := p.Verify(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%q): err = %v, want ErrInvalidToken", tc.token, err)
			}
		})
	}
}

func TestTokenProvider_VerifyWrongKey(t *testing.T) {
	p, _ := newTestProvider(t, time.Hour)
	other := NewTokenProvider([]byte("ffffffffffffffffffffffffffffffff"), "pagecraft-test", time.Hour, NewMemoryRevocationStore())

	token, _, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify with wrong key: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_VerifyWrongIssuer(t *testing.T) {
	p, store := newTestProvider(t, time.Hour)
	other := NewTokenProvider([]byte(testSigningKey), "someone-else", time.Hour, store)

	token, _, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify with wrong issuer: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_RevokeThenVerifyFails(t *testing.T) {
	p, _ := newTestProvider(t, time.Hour)

	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	p.Revoke(token)
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify revoked token: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_RevokeIdempotent(t *testing.T) {
	p, store := newTestProvider(t, time.Hour)

	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	p.Revoke(token)
	p.Revoke(token)
	if got := store.Len(); got != 1 {
		t.Errorf("store size after double revoke = %d, want 1", got)
	}
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify after double revoke: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_RevokeUnparseableNoOp(t *testing.T) {
	p, store := newTestProvider(t, time.Hour)

	p.Revoke("")
	p.Revoke("not-a-token")
	if got := store.Len(); got != 0 {
		t.Errorf("store size after revoking garbage = %d, want 0", got)
	}
}

func TestTokenProvider_RevokeExpiredNoOp(t *testing.T) {
	p, store := newTestProvider(t, -time.Minute)

	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	p.Revoke(token)
	if got := store.Len(); got != 0 {
		t.Errorf("store size after revoking expired token = %d, want 0", got)
	}
}
