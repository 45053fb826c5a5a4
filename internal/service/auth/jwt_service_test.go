package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/cityinfo-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestJWTService(t *testing.T, secret string, lifetime time.Duration, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newJWTService(config.AuthConfig{
		JWTSecret:     secret,
		Issuer:        "cityinfo-api",
		TokenLifetime: lifetime,
	}, now)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetime: time.Hour})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetime: time.Hour})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	svc := newTestJWTService(t, testSecret, tokenLifetime, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), "alice", "London")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "London", claims.City)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "cityinfo-api", claims.Issuer)
	// Compare Unix timestamps to avoid timezone issues
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	issuer := newTestJWTService(t, testSecret, tokenLifetime, func() time.Time { return fixedTime })

	validToken, err := issuer.GenerateToken(context.Background(), "alice", "London")
	require.NoError(t, err)

	noCityToken, err := issuer.GenerateToken(context.Background(), "alice", "")
	require.NoError(t, err)

	otherIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, cityClaims{
		City: "London",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	})
	otherIssuerToken, err := otherIssuer.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, cityClaims{City: "London"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		secret    string
		checkTime time.Time
		wantErr   error
	}{
		{
			name:      "valid token",
			token:     validToken,
			secret:    testSecret,
			checkTime: fixedTime.Add(30 * time.Minute),
		},
		{
			name:      "expired token",
			token:     validToken,
			secret:    testSecret,
			checkTime: fixedTime.Add(2 * time.Hour),
			wantErr:   ErrExpiredToken,
		},
		{
			name:      "expired but within clock skew",
			token:     validToken,
			secret:    testSecret,
			checkTime: fixedTime.Add(61 * time.Minute),
		},
		{
			name:      "wrong secret",
			token:     validToken,
			secret:    "wrong-secret-that-is-long-enough-for-testing",
			checkTime: fixedTime,
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "malformed token",
			token:     "not.a.jwt",
			secret:    testSecret,
			checkTime: fixedTime,
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "missing city claim",
			token:     noCityToken,
			secret:    testSecret,
			checkTime: fixedTime,
			wantErr:   ErrMissingCityClaim,
		},
		{
			name:      "unexpected issuer",
			token:     otherIssuerToken,
			secret:    testSecret,
			checkTime: fixedTime,
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "unsigned token",
			token:     noneToken,
			secret:    testSecret,
			checkTime: fixedTime,
			wantErr:   ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkTime := tt.checkTime
			svc := newTestJWTService(t, tt.secret, tokenLifetime, func() time.Time { return checkTime })

			claims, err := svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "London", claims.City)
		})
	}
}

func TestClassifyParseError(t *testing.T) {
	assert.Equal(t, ErrExpiredToken, classifyParseError(fmt.Errorf("wrap: %w", jwt.ErrTokenExpired)))
	assert.Equal(t, ErrTokenNotYetValid, classifyParseError(jwt.ErrTokenNotValidYet))
	assert.Equal(t, ErrInvalidToken, classifyParseError(jwt.ErrTokenSignatureInvalid))
	assert.Equal(t, ErrInvalidToken, classifyParseError(errors.New("anything")))
}
