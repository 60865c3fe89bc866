package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	permissionmodels "paymediator/internal/permission/models"
	"paymediator/internal/platform/middleware"
	"paymediator/pkg/platform/httputil"
)

func (h *Handler) handleQueryPermission(w http.ResponseWriter, r *http.Request) {
	desc := permissionmodels.Descriptor{Name: permissionmodels.Name(chi.URLParam(r, "name"))}
	status, err := h.permissions.Query(r.Context(), middleware.GetRelyingOrigin(r), desc)
	if err != nil {
		h.fail(w, r, "permissions.query", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) handleRequestPermission(w http.ResponseWriter, r *http.Request) {
	desc := permissionmodels.Descriptor{Name: permissionmodels.Name(chi.URLParam(r, "name"))}
	status, err := h.permissions.Request(r.Context(), middleware.GetRelyingOrigin(r), desc)
	if err != nil {
		h.fail(w, r, "permissions.request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}
