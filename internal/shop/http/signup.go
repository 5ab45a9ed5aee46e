package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

type SignupHandler struct {
	AuthService *service.AuthService
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Register a new user
//	@Description	Creates a user account. The password must be at least 8
//	@Description	characters with one symbol and no whitespace; the username
//	@Description	must be at least 5 alphanumeric characters.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		signupRequest	true	"Credentials"
//	@Success		201		{object}	httpx.Envelope	"username, email"
//	@Failure		400		{object}	httpx.Envelope	"validation or duplicate error"
//	@Router			/api/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Validation Error", httpx.StatusAuthFailed, "invalid request body")
		return
	}

	user, err := h.AuthService.Signup(ctx, req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		httpx.WriteSuccess(w, http.StatusCreated, "new user created!", user.Public())
	case service.IsValidation(err):
		httpx.WriteFailure(w, http.StatusBadRequest, "Validation Error", httpx.StatusAuthFailed, err.Error())
	case errors.Is(err, service.ErrDuplicateUser), errors.Is(err, service.ErrDuplicateEmail):
		httpx.WriteFailure(w, http.StatusBadRequest, "Registration Unsuccessful", httpx.StatusAuthFailed, err.Error())
	default:
		log.Error("signup failed", "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, "Registration Unsuccessful", httpx.StatusAuthFailed, "internal error")
	}
}
