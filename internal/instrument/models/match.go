package models

// Match is one candidate offered to the user: an instrument of a registered
// handler that is compatible with the payment request.
type Match struct {
	PaymentHandler       string  `json:"paymentHandler"`
	PaymentInstrumentKey string  `json:"paymentInstrumentKey"`
	PaymentInstrument    *Record `json:"paymentInstrument"`
}
