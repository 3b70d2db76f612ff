package auth_test

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	httpapi "github.com/nimbuslabs/nimbus/internal/auth/http"
	"github.com/nimbuslabs/nimbus/internal/auth/mail"
	"github.com/nimbuslabs/nimbus/internal/auth/service"
	"github.com/nimbuslabs/nimbus/internal/auth/store/drivers/sqlite"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/nimbuslabs/nimbus/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * The full application stack runs in-process against an in-memory database,
 * with a fixed OTP generator standing in for email delivery.
 */

const (
	testOtpCode  = "428916"
	testPassword = "Sup3rSecret!"
	testIssuer   = "nimbus-e2e"
)

// setupAuthServer starts the full HTTP stack on an httptest server and
// returns its base URL. Each test gets a fresh in-memory database and
// independent rate limiter state.
func setupAuthServer(t *testing.T) (string, func()) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	access, err := jwtx.NewHS256([]byte("e2e-access-secret"), testIssuer)
	require.NoError(t, err)
	refresh, err := jwtx.NewHS256([]byte("e2e-refresh-secret"), testIssuer)
	require.NoError(t, err)

	otpService := &service.OtpService{
		Store:        st,
		GenerateCode: func() (string, error) { return testOtpCode, nil },
	}
	tokenService := &service.TokenService{
		Access:     access,
		Refresh:    refresh,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}
	authService := &service.AuthService{
		Store:  st,
		Otp:    otpService,
		Tokens: tokenService,
		Mailer: &mail.LogSender{},
	}
	userService := &service.UserService{Store: st}

	router := httpapi.NewRouter(access, "e2e-test", st, slog.New(slog.DiscardHandler))
	router.AuthService = authService
	router.UserService = userService
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	return srv.URL, func() {
		srv.Close()
		_ = st.Close()
	}
}

// signupUser completes the full signup flow (request + OTP verification) and
// returns the resulting session.
func signupUser(t *testing.T, client *authsdk.Client, name, email string) *authsdk.AuthResponse {
	t.Helper()

	pending, err := client.Signup(t.Context(), authsdk.SignupRequest{
		Name:            name,
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, email, pending.Email)

	auth, err := client.VerifyOtp(t.Context(), authsdk.VerifyOtpRequest{
		Email: email,
		Otp:   testOtpCode,
	})
	require.NoError(t, err)
	require.NotEmpty(t, auth.AccessToken)
	require.NotEmpty(t, auth.RefreshToken)

	return auth
}

// requireAPIError asserts err is an *authsdk.APIError with the given status.
func requireAPIError(t *testing.T, err error, statusCode int) *authsdk.APIError {
	t.Helper()

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, statusCode, apiErr.StatusCode)
	return apiErr
}
