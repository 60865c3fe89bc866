package models

import (
	"time"

	"paymediator/pkg/domain"
)

// RequestState is a read-only snapshot of the in-flight payment request.
type RequestState struct {
	ID                   domain.RequestID `json:"id"`
	TopLevelOrigin       domain.Origin    `json:"topLevelOrigin"`
	PaymentRequestOrigin domain.Origin    `json:"paymentRequestOrigin"`
	PaymentRequest       PaymentRequest   `json:"paymentRequest"`
	CreatedAt            time.Time        `json:"createdAt"`
	ShippingAddress      *ShippingAddress `json:"shippingAddress,omitempty"`
	ShippingOption       string           `json:"shippingOption,omitempty"`
	// HandlerURL is set while a payment handler is loading or engaged.
	HandlerURL string `json:"handlerUrl,omitempty"`
	Aborting   bool   `json:"aborting,omitempty"`
}

// PaymentRequestEvent is the argument of the handler's requestPayment call.
type PaymentRequestEvent struct {
	TopLevelOrigin       string                   `json:"topLevelOrigin"`
	PaymentRequestOrigin string                   `json:"paymentRequestOrigin"`
	PaymentRequestID     string                   `json:"paymentRequestId"`
	MethodData           []PaymentMethodData      `json:"methodData"`
	Total                PaymentItem              `json:"total"`
	Modifiers            []PaymentDetailsModifier `json:"modifiers,omitempty"`
	InstrumentKey        string                   `json:"instrumentKey"`
}

// AbortPaymentEvent is the argument of the handler's abortPayment call.
type AbortPaymentEvent struct {
	PaymentRequestID     string `json:"paymentRequestId"`
	PaymentRequestOrigin string `json:"paymentRequestOrigin"`
}
