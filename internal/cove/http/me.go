package http

import (
	"net/http"

	"github.com/aussiebroadwan/cove/pkg/covesdk"
	"github.com/aussiebroadwan/cove/pkg/httpx"
)

// MeHandler echoes back the identity the verifier resolved from the bearer
// token. Useful for clients confirming what the service thinks they are.
//
//	GET /v1/me
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := httpx.ClaimsFromContext(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, covesdk.IdentityEnvelope{
			Data: covesdk.Identity{
				UserID:        claims.Subject,
				Email:         claims.Email,
				PreferredName: claims.PreferredName,
			},
		})
	}
}
