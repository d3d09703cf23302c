package httpx

import (
	"context"

	"github.com/aussiebroadwan/cove/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims" // full jwtx.Claims when you need more than the subject
)

// UserIDFromContext returns the authenticated caller identity set by
// AuthnMiddleware. Handlers behind the middleware can rely on ok being true.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(CtxKeyUserID).(string)
	return userID, ok && userID != ""
}

// ClaimsFromContext returns the full verified claims for handlers that need
// more than the subject.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	claims, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return claims, ok
}
