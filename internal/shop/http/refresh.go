package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type RefreshHandler struct {
	AuthService *service.AuthService
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ServeHTTP godoc
//
//	@Summary		Rotate a refresh token
//	@Description	Exchanges a live refresh token for a new pair. The old
//	@Description	token is invalidated in the same step; every failure mode
//	@Description	reports the same 400 so callers simply re-authenticate.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	true	"Refresh token"
//	@Success		200		{object}	httpx.Envelope	"accessToken, refreshToken"
//	@Failure		400		{object}	httpx.Envelope	"invalid, expired, revoked or missing token"
//	@Router			/api/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Refresh Unsuccessful", httpx.StatusAuthFailed, "invalid request body")
		return
	}

	pair, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	switch {
	case err == nil:
		httpx.NoCache(w)
		httpx.WriteSuccess(w, http.StatusOK, "Refresh successful!", pair)
	case errors.Is(err, service.ErrInvalidRefresh),
		errors.Is(err, service.ErrUserNotFound),
		service.IsValidation(err):
		httpx.WriteFailure(w, http.StatusBadRequest, "Refresh Unsuccessful", httpx.StatusAuthFailed, err.Error())
	default:
		log.Error("refresh failed", "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, "Refresh Unsuccessful", httpx.StatusAuthFailed, "internal error")
	}
}
