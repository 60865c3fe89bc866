package httptransport

import (
	"net/http"

	"paymediator/internal/app"
	"paymediator/internal/mediator/models"
	"paymediator/internal/platform/middleware"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/platform/httputil"
)

type shippingOptionRequest struct {
	ShippingOptionID string `json:"shippingOptionId"`
}

type canMakePaymentResponse struct {
	CanMakePayment bool `json:"canMakePayment"`
}

// handleShow blocks until the request settles. A client that disconnects
// abandons the request.
func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "payment.show", err)
		return
	}
	payments, ok := h.payments(w, r, "payment.show")
	if !ok {
		return
	}
	resp, err := payments.Show(r.Context(), req)
	if err != nil {
		h.fail(w, r, "payment.show", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var sel models.Selection
	if err := httputil.DecodeJSON(r, &sel); err != nil {
		h.fail(w, r, "payment.select", err)
		return
	}
	payments, ok := h.payments(w, r, "payment.select")
	if !ok {
		return
	}
	resp, err := payments.SelectPaymentInstrument(r.Context(), sel)
	if err != nil {
		h.fail(w, r, "payment.select", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAbort(w http.ResponseWriter, r *http.Request) {
	payments, ok := h.payments(w, r, "payment.abort")
	if !ok {
		return
	}
	if err := payments.Abort(r.Context()); err != nil {
		h.fail(w, r, "payment.abort", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCanMakePayment(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "payment.can_make_payment", err)
		return
	}
	payments, ok := h.payments(w, r, "payment.can_make_payment")
	if !ok {
		return
	}
	can, err := payments.CanMakePayment(r.Context(), &req)
	if err != nil {
		h.fail(w, r, "payment.can_make_payment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, canMakePaymentResponse{CanMakePayment: can})
}

func (h *Handler) handleMatchInstruments(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "payment.instruments", err)
		return
	}
	payments, ok := h.payments(w, r, "payment.instruments")
	if !ok {
		return
	}
	matches, err := payments.MatchPaymentInstruments(r.Context(), &req)
	if err != nil {
		h.fail(w, r, "payment.instruments", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"instruments": matches})
}

func (h *Handler) handleShippingAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.ShippingAddress
	if err := httputil.DecodeJSON(r, &addr); err != nil {
		h.fail(w, r, "payment.shipping_address", err)
		return
	}
	payments, ok := h.payments(w, r, "payment.shipping_address")
	if !ok {
		return
	}
	state, err := payments.ShippingAddressChange(r.Context(), addr)
	if err != nil {
		h.fail(w, r, "payment.shipping_address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) handleShippingOption(w http.ResponseWriter, r *http.Request) {
	var req shippingOptionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "payment.shipping_option", err)
		return
	}
	payments, ok := h.payments(w, r, "payment.shipping_option")
	if !ok {
		return
	}
	state, err := payments.ShippingOptionChange(r.Context(), req.ShippingOptionID)
	if err != nil {
		h.fail(w, r, "payment.shipping_option", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) handleCurrentRequest(w http.ResponseWriter, r *http.Request) {
	payments, ok := h.payments(w, r, "payment.current")
	if !ok {
		return
	}
	state, active := payments.Current()
	if !active {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no payment request is active"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request, op string) (app.PaymentService, bool) {
	svc, err := h.services.Payments(middleware.GetRelyingOrigin(r))
	if err != nil {
		h.fail(w, r, op, err)
		return nil, false
	}
	return svc, true
}
