package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tradepost/pkg/jwtx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

// AuthnMiddleware is the mandatory request gate. It extracts a bearer
// token from the Authorization header, verifies it, and injects the
// decoded identity into the request context. Requests without a token
// are rejected.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := verifyBearer(w, r, v, raw)
			if err != nil {
				return // response already written
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(r.Context(), claims)))
		})
	}
}

// AllowAnonMiddleware is the anonymous-allowed variant of the gate. A
// missing token is not an error, the request just proceeds with no
// identity in context. A present but invalid or expired token still
// fails closed exactly like the mandatory gate.
func AllowAnonMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifyBearer(w, r, v, raw)
			if err != nil {
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")), true
}

// verifyBearer verifies the token and writes the failure response
// itself so both gate variants reject identically. Expired tokens get
// a dedicated message; everything else reports the verification error.
func verifyBearer(
	w http.ResponseWriter,
	r *http.Request,
	v jwtx.Verifier,
	raw string,
) (jwtx.Claims, error) {
	claims, err := v.Verify(raw)
	if err == nil {
		return claims, nil
	}

	log := slogx.FromContext(r.Context())
	if errors.Is(err, jwtx.ErrExpired) {
		writeBearerError(w, "Token has expired")
	} else {
		log.Warn("jwt verify failed", "err", err)
		writeBearerError(w, err.Error())
	}
	return jwtx.Claims{}, err
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID())
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-style rejection, body in the service's uniform envelope.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteFailure(w, http.StatusUnauthorized, "Authentication failed", StatusAuthFailed, desc)
}
