// Package httptransport exposes the mediator services over HTTP. Every route
// below the origin middleware acts on behalf of the caller's Origin header.
package httptransport

import (
	"log/slog"
	"net/http"

	"paymediator/internal/app"
	"paymediator/internal/platform/middleware"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/platform/httputil"
)

// Handler serves the origin-bound API.
type Handler struct {
	services    app.Resolver
	permissions app.PermissionService
	logger      *slog.Logger
}

func New(services app.Resolver, permissions app.PermissionService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{services: services, permissions: permissions, logger: logger}
}

// fail logs and renders err. Client errors log at warn, the rest at error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	attrs := []any{
		"op", op,
		"origin", middleware.GetRelyingOrigin(r),
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	}
	if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, "request rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", dErrors.Newf(dErrors.CodeInvalidArgument, "query parameter %q is required", name)
	}
	return v, nil
}
