package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the JWT claims structure. The subject is the account
// email.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// The signing secret is injected once at construction and never
// re-read; the clock is injectable for tests and defaults to time.Now.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService with the given secret and TTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to pin issue
// and verification times.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue mints a token for the given subject, expiring TTL from now.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token string and returns
// its subject. Every failure mode (bad signature, malformed payload,
// missing subject, expired) is reported as ErrInvalidToken so callers
// cannot distinguish a forged token from a stale one.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
