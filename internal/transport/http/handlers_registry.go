package httptransport

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paymediator/internal/app"
	instrumentmodels "paymediator/internal/instrument/models"
	"paymediator/internal/platform/middleware"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/platform/httputil"
)

type registerRequest struct {
	URL string `json:"url"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "registrations.register", err)
		return
	}
	registry, err := h.services.Registry(middleware.GetRelyingOrigin(r))
	if err != nil {
		h.fail(w, r, "registrations.register", err)
		return
	}
	reg, err := registry.Register(r.Context(), req.URL)
	if err != nil {
		h.fail(w, r, "registrations.register", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) handleGetRegistration(w http.ResponseWriter, r *http.Request) {
	url, err := requiredQuery(r, "url")
	if err != nil {
		h.fail(w, r, "registrations.get", err)
		return
	}
	registry, err := h.services.Registry(middleware.GetRelyingOrigin(r))
	if err != nil {
		h.fail(w, r, "registrations.get", err)
		return
	}
	reg, err := registry.GetRegistration(r.Context(), url)
	if err != nil {
		h.fail(w, r, "registrations.get", err)
		return
	}
	if reg == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "payment handler is not registered"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) handleUnregister(w http.ResponseWriter, r *http.Request) {
	url, err := requiredQuery(r, "url")
	if err != nil {
		h.fail(w, r, "registrations.unregister", err)
		return
	}
	registry, err := h.services.Registry(middleware.GetRelyingOrigin(r))
	if err != nil {
		h.fail(w, r, "registrations.unregister", err)
		return
	}
	removed, err := registry.Unregister(r.Context(), url)
	if err != nil {
		h.fail(w, r, "registrations.unregister", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *Handler) handleInstrumentKeys(w http.ResponseWriter, r *http.Request) {
	handlerURL, svc, ok := h.instrumentScope(w, r, "instruments.keys")
	if !ok {
		return
	}
	keys, err := svc.Keys(r.Context(), handlerURL)
	if err != nil {
		h.fail(w, r, "instruments.keys", err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"keys": keys})
}

func (h *Handler) handleClearInstruments(w http.ResponseWriter, r *http.Request) {
	handlerURL, svc, ok := h.instrumentScope(w, r, "instruments.clear")
	if !ok {
		return
	}
	if err := svc.Clear(r.Context(), handlerURL); err != nil {
		h.fail(w, r, "instruments.clear", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetInstrument(w http.ResponseWriter, r *http.Request) {
	handlerURL, svc, ok := h.instrumentScope(w, r, "instruments.get")
	if !ok {
		return
	}
	rec, err := svc.Get(r.Context(), handlerURL, chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, r, "instruments.get", err)
		return
	}
	if rec == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "payment instrument not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleSetInstrument(w http.ResponseWriter, r *http.Request) {
	handlerURL, svc, ok := h.instrumentScope(w, r, "instruments.set")
	if !ok {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, httputil.MaxBodyBytes))
	if err != nil {
		h.fail(w, r, "instruments.set", dErrors.Wrap(err, dErrors.CodeInvalidArgument, "failed to read request body"))
		return
	}
	rec, err := instrumentmodels.DecodeRecord(raw)
	if err != nil {
		h.fail(w, r, "instruments.set", err)
		return
	}
	if err := svc.Set(r.Context(), handlerURL, chi.URLParam(r, "key"), rec); err != nil {
		h.fail(w, r, "instruments.set", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteInstrument(w http.ResponseWriter, r *http.Request) {
	handlerURL, svc, ok := h.instrumentScope(w, r, "instruments.delete")
	if !ok {
		return
	}
	deleted, err := svc.Delete(r.Context(), handlerURL, chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, r, "instruments.delete", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// instrumentScope resolves the handler query parameter and the caller's
// instrument service, rendering the error itself when it fails.
func (h *Handler) instrumentScope(w http.ResponseWriter, r *http.Request, op string) (string, app.InstrumentService, bool) {
	handlerURL, err := requiredQuery(r, "handler")
	if err != nil {
		h.fail(w, r, op, err)
		return "", nil, false
	}
	svc, err := h.services.Instruments(middleware.GetRelyingOrigin(r))
	if err != nil {
		h.fail(w, r, op, err)
		return "", nil, false
	}
	return handlerURL, svc, true
}
