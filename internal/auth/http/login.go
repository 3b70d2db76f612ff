package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/auth/service"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// HandleLogin authenticates with email and password.
//
//	@Summary		Login
//	@Description	Exchanges email and password for a token pair. The failure response never reveals whether the email is registered.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.AuthResponse	"Logged in"
//	@Failure		401		{object}	authsdk.APIError	"Invalid credentials"
//	@Router			/auth/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.NewValidationError("invalid request body").WriteError(w)
		return
	}

	user, pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{
		Message:      "logged in successfully",
		User:         toUserInfo(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
