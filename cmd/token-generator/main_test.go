package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/cityinfo-api/internal/config"
	"github.com/phrazzld/cityinfo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func TestRunGeneratesValidToken(t *testing.T) {
	t.Setenv("CITYINFO_AUTH_JWT_SECRET", testSecret)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-city", "London", "-subject", "alice", "-lifetime", "5m"}, &out))

	token := strings.SplitN(out.String(), "\n", 2)[0]

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:     testSecret,
		Issuer:        "cityinfo-api",
		TokenLifetime: time.Hour,
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "London", claims.City)
	assert.Equal(t, "alice", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt, time.Minute)
}

func TestRunRequiresCity(t *testing.T) {
	t.Setenv("CITYINFO_AUTH_JWT_SECRET", testSecret)

	err := run(nil, &bytes.Buffer{})
	assert.ErrorContains(t, err, "-city is required")
}
