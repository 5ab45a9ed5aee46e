package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type AccountHandler struct {
	AuthService *service.AuthService
}

type accountRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ServeHTTP godoc
//
//	@Summary		Change password
//	@Description	Swaps the caller's password after verifying the old one.
//	@Description	Tokens issued before the change remain valid.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		accountRequest	true	"Old and new password"
//	@Success		200		{object}	httpx.Envelope	"no data"
//	@Failure		400		{object}	httpx.Envelope	"old password mismatch or weak new password"
//	@Failure		401		{object}	httpx.Envelope	"missing or invalid access token"
//	@Router			/api/auth/account [post].
func (h *AccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Password change Unsuccessful", httpx.StatusAuthFailed, "missing identity")
		return
	}

	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Password change Unsuccessful", httpx.StatusAuthFailed, "invalid request body")
		return
	}

	err := h.AuthService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		httpx.WriteSuccess(w, http.StatusOK, "Password changed successfully!", nil)
	case errors.Is(err, service.ErrInvalidCredentials), service.IsValidation(err), errors.Is(err, service.ErrUserNotFound):
		httpx.WriteFailure(w, http.StatusBadRequest, "Password change Unsuccessful", httpx.StatusAuthFailed, err.Error())
	default:
		log.Error("password change failed", "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, "Password change Unsuccessful", httpx.StatusAuthFailed, "internal error")
	}
}
