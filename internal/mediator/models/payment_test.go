package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "paymediator/pkg/domain-errors"
)

func validRequest() *PaymentRequest {
	return &PaymentRequest{
		MethodData: []PaymentMethodData{{SupportedMethods: []string{"basic-card", "basic-card"}}},
		Details: PaymentDetails{
			Total:        PaymentItem{Label: "Total", Amount: PaymentCurrencyAmount{Currency: "USD", Value: "10.00"}},
			DisplayItems: []PaymentItem{{Label: "Discount", Amount: PaymentCurrencyAmount{Currency: "USD", Value: "-2.50"}}},
		},
	}
}

func TestPaymentRequestValidate(t *testing.T) {
	assert.NoError(t, validRequest().Validate())

	tests := []struct {
		name   string
		mutate func(r *PaymentRequest)
	}{
		{name: "no method data", mutate: func(r *PaymentRequest) { r.MethodData = nil }},
		{name: "empty method", mutate: func(r *PaymentRequest) { r.MethodData[0].SupportedMethods = []string{""} }},
		{name: "missing total label", mutate: func(r *PaymentRequest) { r.Details.Total.Label = "" }},
		{name: "unknown currency", mutate: func(r *PaymentRequest) { r.Details.Total.Amount.Currency = "XYZ1" }},
		{name: "non decimal amount", mutate: func(r *PaymentRequest) { r.Details.Total.Amount.Value = "1,00" }},
		{name: "negative total", mutate: func(r *PaymentRequest) { r.Details.Total.Amount.Value = "-1" }},
		{name: "bad display item", mutate: func(r *PaymentRequest) { r.Details.DisplayItems[0].Amount.Value = "abc" }},
		{name: "bad shipping type", mutate: func(r *PaymentRequest) { r.Options.ShippingType = "teleport" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)
			assert.True(t, dErrors.HasCode(r.Validate(), dErrors.CodeInvalidArgument))
		})
	}
}

func TestSupportedMethods(t *testing.T) {
	r := validRequest()
	r.MethodData = append(r.MethodData, PaymentMethodData{SupportedMethods: []string{"https://bank.example/pay", "basic-card"}})
	assert.Equal(t, []string{"basic-card", "https://bank.example/pay"}, r.SupportedMethods())
}

func TestSelectionValidate(t *testing.T) {
	assert.True(t, dErrors.HasCode((&Selection{PaymentHandler: "https://pay.example/h"}).Validate(), dErrors.CodeInvalidArgument))
	assert.NoError(t, (&Selection{PaymentHandler: "https://pay.example/h", PaymentInstrumentKey: "k"}).Validate())
}
