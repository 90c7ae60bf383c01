package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, time.Hour).WithClock(fixedClock(t0))

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestTokenService_Expiry(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour
	svc := NewTokenService(testSecret, ttl).WithClock(fixedClock(t0))

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	// Just before expiry the token still verifies.
	svc.WithClock(fixedClock(t0.Add(ttl - time.Second)))
	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	// Just after expiry it fails with the generic token error.
	svc.WithClock(fixedClock(t0.Add(ttl + time.Second)))
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenService("secret-one", time.Hour).WithClock(fixedClock(t0))
	verifier := NewTokenService("secret-two", time.Hour).WithClock(fixedClock(t0))

	token, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenStr)
	}
}

func TestTokenService_MissingSubject(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, time.Hour).WithClock(fixedClock(t0))

	// A well-signed token without a subject claim must still be rejected.
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(t0),
		ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsNonHMACSigning(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	// alg=none style tokens never verify.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
