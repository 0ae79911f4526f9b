package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, signed with
// the wrong key, or revoked. Callers branch on success/failure only; the
// reasons deliberately collapse.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims holds the JWT claims embedded in a session token: subject
// (user ID), issued-at, expiry, and issuer.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenProvider issues, verifies, and revokes HS256-signed session tokens.
// The signing key is process-wide configuration loaded once at startup; it is
// never logged. Verification is self-contained (signature + expiry) plus a
// revocation-store membership check, so no datastore round trip is needed.
type TokenProvider struct {
	key     []byte
	issuer  string
	ttl     time.Duration
	revoked RevocationStore
}

// NewTokenProvider returns a TokenProvider signing with key. ttl bounds every
// issued token's lifetime; revoked records tokens invalidated at logout.
func NewTokenProvider(key []byte, issuer string, ttl time.Duration, revoked RevocationStore) *TokenProvider {
	return &TokenProvider{
		key:     key,
		issuer:  issuer,
		ttl:     ttl,
		revoked: revoked,
	}
}

// Issue signs a session token for userID expiring at issued-at + TTL.
// Returns the token string and its expiry.
func (p *TokenProvider) Issue(userID string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(p.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(p.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify parses and validates tokenString: signature, expiry, issuer, and
// revocation-store membership. Malformed input returns ErrInvalidToken, never
// a panic. On success the embedded claims are returned.
func (p *TokenProvider) Verify(tokenString string) (*SessionClaims, error) {
	claims, err := p.parse(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if p.revoked.IsRevoked(tokenString, time.Now().UTC()) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke marks tokenString invalid before its natural expiry. Idempotent:
// revoking an already-revoked, expired, or unparseable token is a no-op
// (an invalid token needs no revocation entry).
func (p *TokenProvider) Revoke(tokenString string) {
	claims, err := p.parse(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return
	}
	p.revoked.Revoke(tokenString, claims.ExpiresAt.Time)
}

func (p *TokenProvider) parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
