package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	instrument "paymediator/internal/instrument/models"
	"paymediator/internal/mediator/models"
)

func TestDefaultMatchPolicy(t *testing.T) {
	card := &instrument.Record{
		Name:           "Visa",
		EnabledMethods: []string{"basic-card"},
		Capabilities: map[string]any{
			"supportedNetworks": []any{"visa"},
			"supportedTypes":    []any{"credit", "debit"},
		},
	}
	request := func(data map[string]any, methods ...string) *models.PaymentRequest {
		return &models.PaymentRequest{MethodData: []models.PaymentMethodData{{SupportedMethods: methods, Data: data}}}
	}

	tests := []struct {
		name string
		req  *models.PaymentRequest
		rec  *instrument.Record
		want bool
	}{
		{name: "method and no data", req: request(nil, "basic-card"), rec: card, want: true},
		{name: "method mismatch", req: request(nil, "https://bank.example/pay"), rec: card, want: false},
		{
			name: "no enabled methods",
			req:  request(nil, "basic-card"),
			rec:  &instrument.Record{Name: "x", Capabilities: map[string]any{}},
			want: false,
		},
		{
			name: "overlapping network list",
			req:  request(map[string]any{"supportedNetworks": []any{"mastercard", "visa"}}, "basic-card"),
			rec:  card,
			want: true,
		},
		{
			name: "disjoint network list",
			req:  request(map[string]any{"supportedNetworks": []any{"amex"}}, "basic-card"),
			rec:  card,
			want: false,
		},
		{
			name: "scalar contained in capability list",
			req:  request(map[string]any{"supportedTypes": "debit"}, "basic-card"),
			rec:  card,
			want: true,
		},
		{
			name: "undeclared capability does not constrain",
			req:  request(map[string]any{"billingCountry": "US"}, "basic-card"),
			rec:  card,
			want: true,
		},
		{
			name: "scalar mismatch",
			req:  request(map[string]any{"tier": "gold"}, "basic-card"),
			rec:  &instrument.Record{Name: "x", EnabledMethods: []string{"basic-card"}, Capabilities: map[string]any{"tier": "silver"}},
			want: false,
		},
		{
			name: "second method data entry matches",
			req: &models.PaymentRequest{MethodData: []models.PaymentMethodData{
				{SupportedMethods: []string{"basic-card"}, Data: map[string]any{"supportedNetworks": []any{"amex"}}},
				{SupportedMethods: []string{"basic-card"}, Data: map[string]any{"supportedNetworks": []any{"visa"}}},
			}},
			rec:  card,
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultMatchPolicy(tt.req, tt.rec))
		})
	}
}

func TestPendingAbort(t *testing.T) {
	pa := newPendingAbort()
	assert.True(t, pa.claim())
	assert.False(t, pa.claim(), "only one party may send the abort")
	assert.False(t, pa.settled())

	pa.settle(nil)
	pa.settle(assert.AnError)
	assert.True(t, pa.settled())
	assert.False(t, pa.failed(), "the first settlement wins")
}
