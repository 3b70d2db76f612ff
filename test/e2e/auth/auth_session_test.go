package auth_test

import (
	"net/http"
	"testing"

	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestRefreshRotation(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	auth := signupUser(t, client, "Henry", "henry@example.com")

	pair, err := client.Refresh(t.Context(), auth.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEqual(t, auth.RefreshToken, pair.RefreshToken)

	// The presented token was revoked by the rotation.
	_, err = client.Refresh(t.Context(), auth.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized)

	// The rotated token is live.
	_, err = client.Refresh(t.Context(), pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Refresh(t.Context(), "not-a-token")
	apiErr := requireAPIError(t, err, http.StatusUnauthorized)
	require.Equal(t, authsdk.ReasonTokenExpired, apiErr.Reason)
}

func TestLogout(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	auth := signupUser(t, client, "Iris", "iris@example.com")

	require.NoError(t, client.Logout(t.Context(), auth.RefreshToken))

	// The refresh token is gone.
	_, err := client.Refresh(t.Context(), auth.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized)

	// Logout is idempotent and tolerates junk tokens.
	require.NoError(t, client.Logout(t.Context(), auth.RefreshToken))
	require.NoError(t, client.Logout(t.Context(), "junk"))

	// The access token keeps working until it expires; logout only revokes
	// the refresh token.
	_, err = client.Me(t.Context(), auth.AccessToken)
	require.NoError(t, err)
}

func TestMeRequiresValidToken(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Me(t.Context(), "garbage")
	apiErr := requireAPIError(t, err, http.StatusUnauthorized)
	require.Equal(t, authsdk.ReasonTokenInvalid, apiErr.Reason)

	_, err = client.Me(t.Context(), "")
	requireAPIError(t, err, http.StatusUnauthorized)
}
