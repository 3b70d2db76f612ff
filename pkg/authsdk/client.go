package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the nimbus auth service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an auth service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ============================================================================
// Signup
// ============================================================================

// Signup starts the OTP-verified signup flow.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*OtpPendingResponse, error) {
	var out OtpPendingResponse
	if err := c.postJSON(ctx, "/auth/signup", req, &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOtp confirms a pending signup with the emailed code. On success the
// user account is created and a token pair is returned.
func (c *Client) VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.postJSON(ctx, "/auth/verify-otp", req, &out, http.StatusCreated, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOtp reissues the signup code for a pending signup.
func (c *Client) ResendOtp(ctx context.Context, email string) (*OtpPendingResponse, error) {
	var out OtpPendingResponse
	if err := c.postJSON(ctx, "/auth/resend-otp", ResendOtpRequest{Email: email}, &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Login / Session
// ============================================================================

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.postJSON(ctx, "/auth/login", req, &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a live refresh token for a new token pair. The old
// refresh token is revoked on success.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	var out TokenPairResponse
	req := RefreshRequest{RefreshToken: refreshToken}
	if err := c.postJSON(ctx, "/auth/refresh-token", req, &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes a refresh token. Succeeds even if the token was already
// revoked or expired.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	var out MessageResponse
	req := LogoutRequest{RefreshToken: refreshToken}
	return c.postJSON(ctx, "/auth/logout", req, &out, http.StatusOK, "")
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context, accessToken string) (*UserInfo, error) {
	var out MeResponse
	if err := c.getJSON(ctx, "/auth/me", &out, http.StatusOK, accessToken); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ============================================================================
// Forgot-Password
// ============================================================================

// ForgotPassword starts the password reset flow for an existing account.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*OtpPendingResponse, error) {
	var out OtpPendingResponse
	req := ForgotPasswordRequest{Email: email}
	if err := c.postJSON(ctx, "/auth/forgot-password/send-otp", req, &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyResetOtp confirms the reset code, opening the window for the reset
// step.
func (c *Client) VerifyResetOtp(ctx context.Context, req VerifyOtpRequest) (*ForgotVerifyResponse, error) {
	var out ForgotVerifyResponse
	if err := c.postJSON(ctx, "/auth/forgot-password/verify-otp", req, &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword completes the reset flow. All of the user's sessions are
// revoked; a fresh login is required afterwards.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	var out MessageResponse
	return c.postJSON(ctx, "/auth/forgot-password/reset", req, &out, http.StatusOK, "")
}

// ResendResetOtp reissues the password reset code.
func (c *Client) ResendResetOtp(ctx context.Context, email string) (*OtpPendingResponse, error) {
	var out OtpPendingResponse
	req := ForgotPasswordRequest{Email: email}
	if err := c.postJSON(ctx, "/auth/forgot-password/resend-otp", req, &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Health
// ============================================================================

// GetLiveness fetches the liveness probe.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/livez", &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness fetches the readiness probe.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/readyz", &out, http.StatusOK, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// HTTP plumbing
// ============================================================================

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, expectedStatus int, bearer string) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, out, expectedStatus)
}

func (c *Client) getJSON(ctx context.Context, path string, out any, expectedStatus int, bearer string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, out, expectedStatus)
}

// decodeJSON decodes a JSON response into target, returning a typed
// *APIError when the status is not the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
