package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

const testSecret = "test-secret-that-is-at-least-32-chars!"

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   testSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("jwt@example.com", "password123", domain.RoleAdmin)
	require.NoError(t, err)
	return user
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "too-short"})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	user := testUser(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID, "token must carry a unique ID")
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestJWTService(t)
	user := testUser(t)
	ctx := context.Background()

	issued := time.Now()
	svc.timeFunc = func() time.Time { return issued }
	token, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)

	// Move past the lifetime plus the clock skew allowance.
	svc.timeFunc = func() time.Time { return issued.Add(63 * time.Minute) }
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestClockSkewTolerated(t *testing.T) {
	svc := newTestJWTService(t)
	user := testUser(t)
	ctx := context.Background()

	issued := time.Now()
	svc.timeFunc = func() time.Time { return issued }
	token, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)

	// One minute past expiry but inside the two minute skew window.
	svc.timeFunc = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestWrongTokenTypeRejected(t *testing.T) {
	svc := newTestJWTService(t)
	user := testUser(t)
	ctx := context.Background()

	access, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	claims, err := svc.ValidateRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestJWTService(t)
	user := testUser(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, user)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromDifferentKeyRejected(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "another-secret-that-is-32-chars-long!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, testUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
