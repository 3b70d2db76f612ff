package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/auth/service"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated user's profile.
//
//	@Summary		Current user
//	@Description	Returns the profile of the user identified by the bearer access token.
//	@Tags			Session
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MeResponse	"User profile"
//	@Failure		401	{object}	authsdk.APIError	"Missing or invalid access token"
//	@Router			/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromCtx(r.Context())
	if userID == "" {
		authsdk.ErrSessionExpired.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Token is valid but the account no longer exists.
			authsdk.ErrAccountNotFound.WriteError(w)
			return
		}
		slogx.FromContext(r.Context()).Error("fetch current user",
			slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{User: toUserInfo(user)})
}
