package auth_test

import (
	"net/http"
	"testing"

	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestSignupFlow(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	pending, err := client.Signup(t.Context(), authsdk.SignupRequest{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", pending.Email)
	require.Equal(t, 180, pending.ExpiresIn)
	require.Equal(t, 60, pending.ResendAfter)

	// Account must not exist until the OTP is confirmed.
	_, err = client.Login(t.Context(), "alice@example.com", testPassword)
	requireAPIError(t, err, http.StatusUnauthorized)

	auth, err := client.VerifyOtp(t.Context(), authsdk.VerifyOtpRequest{
		Email: "alice@example.com",
		Otp:   testOtpCode,
	})
	require.NoError(t, err)
	require.Equal(t, "Alice", auth.User.Name)
	require.Equal(t, "alice@example.com", auth.User.Email)
	require.Equal(t, "Member", auth.User.Role)
	require.NotEmpty(t, auth.AccessToken)
	require.NotEmpty(t, auth.RefreshToken)

	// The returned session works immediately.
	user, err := client.Me(t.Context(), auth.AccessToken)
	require.NoError(t, err)
	require.Equal(t, auth.User.ID, user.ID)
}

func TestSignupWrongOtpReportsAttemptsRemaining(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Signup(t.Context(), authsdk.SignupRequest{
		Name:            "Bob",
		Email:           "bob@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)

	_, err = client.VerifyOtp(t.Context(), authsdk.VerifyOtpRequest{
		Email: "bob@example.com",
		Otp:   "000000",
	})
	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	require.NotNil(t, apiErr.AttemptsRemaining)
	require.Equal(t, 4, *apiErr.AttemptsRemaining)

	// The correct code still works after a miss.
	auth, err := client.VerifyOtp(t.Context(), authsdk.VerifyOtpRequest{
		Email: "bob@example.com",
		Otp:   testOtpCode,
	})
	require.NoError(t, err)
	require.NotEmpty(t, auth.AccessToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	signupUser(t, client, "Carol", "carol@example.com")

	_, err := client.Signup(t.Context(), authsdk.SignupRequest{
		Name:            "Carol Again",
		Email:           "carol@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	requireAPIError(t, err, http.StatusConflict)
}

func TestSignupValidation(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Signup(t.Context(), authsdk.SignupRequest{
		Name:            "Dave",
		Email:           "dave@example.com",
		Password:        testPassword,
		ConfirmPassword: "different",
	})
	requireAPIError(t, err, http.StatusBadRequest)

	_, err = client.Signup(t.Context(), authsdk.SignupRequest{
		Name:            "Dave",
		Email:           "dave@example.com",
		Password:        "short",
		ConfirmPassword: "short",
	})
	requireAPIError(t, err, http.StatusBadRequest)
}

func TestResendSignupOtp(t *testing.T) {
	baseURL, cleanup := setupAuthServer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Signup(t.Context(), authsdk.SignupRequest{
		Name:            "Erin",
		Email:           "erin@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)

	pending, err := client.ResendOtp(t.Context(), "erin@example.com")
	require.NoError(t, err)
	require.Equal(t, "erin@example.com", pending.Email)

	// Signup still completes with the reissued code.
	auth, err := client.VerifyOtp(t.Context(), authsdk.VerifyOtpRequest{
		Email: "erin@example.com",
		Otp:   testOtpCode,
	})
	require.NoError(t, err)
	require.Equal(t, "Erin", auth.User.Name)

	// Resend without a pending signup is rejected.
	_, err = client.ResendOtp(t.Context(), "nobody@example.com")
	requireAPIError(t, err, http.StatusBadRequest)
}
