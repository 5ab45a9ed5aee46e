package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges a username and password for an access/refresh
//	@Description	token pair. Both tokens are recorded in the ledger.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	httpx.Envelope	"accessToken, refreshToken"
//	@Failure		400		{object}	httpx.Envelope	"missing fields or unknown username"
//	@Failure		401		{object}	httpx.Envelope	"wrong password"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Login Unsuccessful", httpx.StatusAuthFailed, "invalid request body")
		return
	}

	pair, err := h.AuthService.Login(ctx, req.Username, req.Password)
	switch {
	case err == nil:
		httpx.NoCache(w)
		httpx.WriteSuccess(w, http.StatusOK, "Login successful!", pair)
	case errors.Is(err, service.ErrInvalidCredentials):
		// wrong password is the only 401; an unknown username stays a 400
		httpx.WriteFailure(w, http.StatusUnauthorized, "Invalid Authentication", httpx.StatusAuthFailed, err.Error())
	case errors.Is(err, service.ErrUserNotFound), service.IsValidation(err):
		httpx.WriteFailure(w, http.StatusBadRequest, "Login Unsuccessful", httpx.StatusAuthFailed, err.Error())
	default:
		log.Error("login failed", "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, "Login Unsuccessful", httpx.StatusAuthFailed, "internal error")
	}
}
