package auth_test

import (
	"testing"

	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "e2e-test", health.Version)
	require.NotEmpty(t, health.Uptime)
}

func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
