package middleware

import (
	"net/http"

	"paymediator/pkg/domain"
	platformstrings "paymediator/pkg/platform/strings"
	"paymediator/pkg/requestcontext"
)

// AncestorOriginsHeader lists the caller's ancestor origins, nearest first.
const AncestorOriginsHeader = "X-Ancestor-Origins"

// RelyingOrigin binds the request to the origin in its Origin header.
// Requests without a valid origin are rejected with 400.
func RelyingOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Origin")
		if raw == "" {
			writeJSONError(w, http.StatusBadRequest, "invalid_argument", "Origin header is required")
			return
		}
		origin, err := domain.ParseOrigin(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_argument", "Origin header is not a valid origin")
			return
		}
		ctx := requestcontext.WithRelyingOrigin(r.Context(), origin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AncestorOrigins records the ancestor chain used to resolve the top-level
// origin of a payment request.
func AncestorOrigins(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chain := platformstrings.SplitList(r.Header.Get(AncestorOriginsHeader))
		if len(chain) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx := requestcontext.WithAncestorOrigins(r.Context(), chain)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRelyingOrigin returns the origin bound by RelyingOrigin.
func GetRelyingOrigin(r *http.Request) domain.Origin {
	return requestcontext.RelyingOrigin(r.Context())
}
