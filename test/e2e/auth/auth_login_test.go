package auth_test

import (
	"net/http"
	"testing"

	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	signupUser(t, client, "Frank", "frank@example.com")

	auth, err := client.Login(t.Context(), "frank@example.com", testPassword)
	require.NoError(t, err)
	require.Equal(t, "frank@example.com", auth.User.Email)
	require.NotEmpty(t, auth.AccessToken)
	require.NotEmpty(t, auth.RefreshToken)

	// Email lookup is case-insensitive.
	auth, err = client.Login(t.Context(), "FRANK@Example.COM", testPassword)
	require.NoError(t, err)
	require.Equal(t, "frank@example.com", auth.User.Email)
}

func TestLoginDoesNotRevealAccounts(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	signupUser(t, client, "Grace", "grace@example.com")

	_, errKnown := client.Login(t.Context(), "grace@example.com", "WrongPass123!")
	_, errUnknown := client.Login(t.Context(), "ghost@example.com", testPassword)

	knownErr := requireAPIError(t, errKnown, http.StatusUnauthorized)
	unknownErr := requireAPIError(t, errUnknown, http.StatusUnauthorized)

	// A wrong password and an unknown account must be indistinguishable.
	require.Equal(t, knownErr.Message, unknownErr.Message)
	require.Equal(t, knownErr.StatusCode, unknownErr.StatusCode)
}
