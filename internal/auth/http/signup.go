package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/auth/service"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/nimbuslabs/nimbus/pkg/cryptox"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

type SignupHandler struct {
	AuthService *service.AuthService
}

// HandleSignup starts the OTP-verified signup flow.
//
//	@Summary		Request signup
//	@Description	Validates the pending user and emails a 6-digit verification code. No account exists until the code is verified.
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupRequest	true	"Pending user"
//	@Success		200		{object}	authsdk.OtpPendingResponse	"Verification code sent"
//	@Failure		400		{object}	authsdk.APIError	"Validation failure"
//	@Failure		409		{object}	authsdk.APIError	"Email already registered"
//	@Router			/auth/signup [post].
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}

	rec, err := h.AuthService.RequestSignup(r.Context(),
		req.Name, req.Email, req.Password, req.ConfirmPassword, req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK,
		otpPending("verification code sent to your email", rec.Email))
}

// HandleVerifyOtp confirms the pending signup.
//
//	@Summary		Verify signup OTP
//	@Description	Confirms the emailed code. On success the account is created and the user is logged in.
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyOtpRequest	true	"Email and code"
//	@Success		201		{object}	authsdk.AuthResponse	"Account created"
//	@Failure		400		{object}	authsdk.APIError	"Invalid, expired, or exhausted code"
//	@Router			/auth/verify-otp [post].
func (h *SignupHandler) HandleVerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyOtpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}
	if !cryptox.IsOTPFormat(req.Otp) {
		authsdk.NewValidationError("otp must be a 6-digit code").WriteError(w)
		return
	}

	user, pair, err := h.AuthService.ConfirmSignup(r.Context(), req.Email, req.Otp)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, authsdk.AuthResponse{
		Message:      "account created successfully",
		User:         toUserInfo(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleResendOtp reissues the signup code.
//
//	@Summary		Resend signup OTP
//	@Description	Regenerates the code for a pending signup, resetting expiry and the attempt counter.
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResendOtpRequest	true	"Email"
//	@Success		200		{object}	authsdk.OtpPendingResponse	"New code sent"
//	@Failure		400		{object}	authsdk.APIError	"No pending signup"
//	@Router			/auth/resend-otp [post].
func (h *SignupHandler) HandleResendOtp(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResendOtpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}

	rec, err := h.AuthService.ResendSignupOtp(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK,
		otpPending("a new verification code has been sent", rec.Email))
}
