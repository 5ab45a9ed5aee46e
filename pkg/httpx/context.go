package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyUsername ctxKey = "username"
	CtxKeyClaims   ctxKey = "claims" // full jwtx.Claims if you need them
)

// UserIDFromCtx returns the authenticated user id, or "" for anonymous
// requests (the anonymous-allowed gate ran without a token).
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// UsernameFromCtx returns the authenticated username, or "".
func UsernameFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUsername).(string); ok {
		return v
	}
	return ""
}
