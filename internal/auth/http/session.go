package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/auth/service"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

type SessionHandler struct {
	AuthService *service.AuthService
}

// HandleRefresh rotates a refresh token.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a valid refresh token for a new access/refresh pair. The presented token is revoked.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.TokenPairResponse	"New token pair"
//	@Failure		401		{object}	authsdk.APIError	"Session expired or token revoked"
//	@Router			/auth/refresh-token [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}
	if req.RefreshToken == "" {
		authsdk.NewValidationError("refresh token is required").WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenPairResponse{
		Message:      "tokens refreshed successfully",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleLogout revokes a refresh token.
//
//	@Summary		Log out
//	@Description	Revokes the presented refresh token. Returns 200 even when the token is already invalid or revoked.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LogoutRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.MessageResponse	"Logged out"
//	@Failure		400		{object}	authsdk.APIError	"Missing refresh token"
//	@Router			/auth/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LogoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}
	if req.RefreshToken == "" {
		authsdk.NewValidationError("refresh token is required").WriteError(w)
		return
	}

	if err := h.AuthService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "logged out successfully",
	})
}
