// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them. Keeping the package free of
// net/http lets services depend on it without pulling in transport code.
//
// Usage in services (read values):
//
//	origin := requestcontext.RelyingOrigin(ctx)
//	topLevel := requestcontext.TopLevelOrigin(ctx, origin)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithAncestorOrigins(ctx, []string{"https://portal.example"})
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	"paymediator/pkg/domain"
)

type (
	requestIDKey       struct{}
	relyingOriginKey   struct{}
	ancestorOriginsKey struct{}
	requestTimeKey     struct{}
)

// RequestID retrieves the correlation ID assigned by middleware.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RelyingOrigin retrieves the origin of the calling page.
// Returns the zero Origin when not set.
func RelyingOrigin(ctx context.Context) domain.Origin {
	if v, ok := ctx.Value(relyingOriginKey{}).(domain.Origin); ok {
		return v
	}
	return ""
}

// WithRelyingOrigin injects the calling page's origin.
func WithRelyingOrigin(ctx context.Context, origin domain.Origin) context.Context {
	return context.WithValue(ctx, relyingOriginKey{}, origin)
}

// AncestorOrigins retrieves the caller's ancestor-origin chain, nearest first.
func AncestorOrigins(ctx context.Context) []string {
	if v, ok := ctx.Value(ancestorOriginsKey{}).([]string); ok {
		return v
	}
	return nil
}

// WithAncestorOrigins injects the caller's ancestor-origin chain, nearest first.
func WithAncestorOrigins(ctx context.Context, origins []string) context.Context {
	return context.WithValue(ctx, ancestorOriginsKey{}, append([]string(nil), origins...))
}

// TopLevelOrigin walks the ancestor chain to its outermost entry. Without a
// chain the fallback (normally the relying origin) is the top-level origin.
func TopLevelOrigin(ctx context.Context, fallback domain.Origin) domain.Origin {
	ancestors := AncestorOrigins(ctx)
	for i := len(ancestors) - 1; i >= 0; i-- {
		if o, err := domain.ParseOrigin(ancestors[i]); err == nil {
			return o
		}
	}
	return fallback
}

// Now returns the request-scoped time, or time.Now when none was injected.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed request time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
