package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/auth/service"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/nimbuslabs/nimbus/pkg/cryptox"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

type PasswordResetHandler struct {
	AuthService *service.AuthService
}

// HandleSendOtp starts the password reset flow.
//
//	@Summary		Request password reset
//	@Description	Emails a reset code to an existing account. Unlike login, a missing account is reported as 404.
//	@Tags			PasswordReset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ForgotPasswordRequest	true	"Email"
//	@Success		200		{object}	authsdk.OtpPendingResponse	"Reset code sent"
//	@Failure		404		{object}	authsdk.APIError	"Account not found"
//	@Router			/auth/forgot-password/send-otp [post].
func (h *PasswordResetHandler) HandleSendOtp(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}

	rec, err := h.AuthService.RequestReset(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK,
		otpPending("password reset code sent to your email", rec.Email))
}

// HandleVerifyOtp confirms the reset code.
//
//	@Summary		Verify reset OTP
//	@Description	Confirms the reset code and extends its validity window so the user can submit the new password.
//	@Tags			PasswordReset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyOtpRequest	true	"Email and code"
//	@Success		200		{object}	authsdk.ForgotVerifyResponse	"Code verified"
//	@Failure		400		{object}	authsdk.APIError	"Invalid, expired, or exhausted code"
//	@Router			/auth/forgot-password/verify-otp [post].
func (h *PasswordResetHandler) HandleVerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyOtpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}
	if !cryptox.IsOTPFormat(req.Otp) {
		authsdk.NewValidationError("otp must be a 6-digit code").WriteError(w)
		return
	}

	recID, err := h.AuthService.ConfirmResetOtp(r.Context(), req.Email, req.Otp)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.ForgotVerifyResponse{
		Message:    "code verified, you can now set a new password",
		Email:      req.Email,
		OtpTokenID: recID,
	})
}

// HandleReset completes the password reset.
//
//	@Summary		Reset password
//	@Description	Sets a new password after OTP verification. All of the user's sessions are revoked; no auto-login.
//	@Tags			PasswordReset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"Email, code, and new password"
//	@Success		200		{object}	authsdk.MessageResponse	"Password changed"
//	@Failure		400		{object}	authsdk.APIError	"Invalid or expired reset request"
//	@Router			/auth/forgot-password/reset [post].
func (h *PasswordResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}
	if !cryptox.IsOTPFormat(req.Otp) {
		authsdk.NewValidationError("otp must be a 6-digit code").WriteError(w)
		return
	}

	err := h.AuthService.ResetPassword(r.Context(),
		req.Email, req.Otp, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "password changed successfully, please log in again",
	})
}

// HandleResendOtp reissues the reset code.
//
//	@Summary		Resend reset OTP
//	@Description	Regenerates the reset code and clears any stale verified state.
//	@Tags			PasswordReset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ForgotPasswordRequest	true	"Email"
//	@Success		200		{object}	authsdk.OtpPendingResponse	"New code sent"
//	@Failure		404		{object}	authsdk.APIError	"Account not found"
//	@Router			/auth/forgot-password/resend-otp [post].
func (h *PasswordResetHandler) HandleResendOtp(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}

	rec, err := h.AuthService.ResendResetOtp(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK,
		otpPending("a new reset code has been sent", rec.Email))
}
