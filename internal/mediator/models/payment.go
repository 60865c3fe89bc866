package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	dErrors "paymediator/pkg/domain-errors"
	platformstrings "paymediator/pkg/platform/strings"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PaymentRequest is the caller's immutable description of what to pay.
type PaymentRequest struct {
	MethodData []PaymentMethodData `json:"methodData" validate:"required,min=1,dive"`
	Details    PaymentDetails      `json:"details"`
	Options    PaymentOptions      `json:"options"`
}

// PaymentMethodData lists accepted method identifiers and any
// method-specific requirements, matched against instrument capabilities.
type PaymentMethodData struct {
	SupportedMethods []string       `json:"supportedMethods" validate:"required,min=1,dive,required"`
	Data             map[string]any `json:"data,omitempty"`
}

type PaymentCurrencyAmount struct {
	Currency string `json:"currency" validate:"required,iso4217"`
	Value    string `json:"value" validate:"required"`
}

type PaymentItem struct {
	Label   string                `json:"label" validate:"required"`
	Amount  PaymentCurrencyAmount `json:"amount"`
	Pending bool                  `json:"pending,omitempty"`
}

type PaymentShippingOption struct {
	ID       string                `json:"id" validate:"required"`
	Label    string                `json:"label" validate:"required"`
	Amount   PaymentCurrencyAmount `json:"amount"`
	Selected bool                  `json:"selected,omitempty"`
}

type PaymentDetailsModifier struct {
	SupportedMethods       []string       `json:"supportedMethods" validate:"required,min=1,dive,required"`
	Total                  *PaymentItem   `json:"total,omitempty"`
	AdditionalDisplayItems []PaymentItem  `json:"additionalDisplayItems,omitempty" validate:"omitempty,dive"`
	Data                   map[string]any `json:"data,omitempty"`
}

type PaymentDetails struct {
	// ID is assigned by the mediator when the caller leaves it empty.
	ID              string                   `json:"id,omitempty"`
	Total           PaymentItem              `json:"total"`
	DisplayItems    []PaymentItem            `json:"displayItems,omitempty" validate:"omitempty,dive"`
	ShippingOptions []PaymentShippingOption  `json:"shippingOptions,omitempty" validate:"omitempty,dive"`
	Modifiers       []PaymentDetailsModifier `json:"modifiers,omitempty" validate:"omitempty,dive"`
}

type PaymentOptions struct {
	RequestPayerName  bool   `json:"requestPayerName,omitempty"`
	RequestPayerEmail bool   `json:"requestPayerEmail,omitempty"`
	RequestPayerPhone bool   `json:"requestPayerPhone,omitempty"`
	RequestShipping   bool   `json:"requestShipping,omitempty"`
	ShippingType      string `json:"shippingType,omitempty" validate:"omitempty,oneof=shipping delivery pickup"`
}

// Validate checks structure and amounts. The total must not be negative;
// other amounts may be (discounts).
func (r *PaymentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "payment request is required")
	}
	if err := validate.Struct(r); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidArgument, describe("invalid payment request", err))
	}

	total, err := parseAmount("details.total", r.Details.Total.Amount)
	if err != nil {
		return err
	}
	if total.IsNegative() {
		return dErrors.New(dErrors.CodeInvalidArgument, "details.total must not be negative")
	}
	for i, item := range r.Details.DisplayItems {
		if _, err := parseAmount(fmt.Sprintf("details.displayItems[%d]", i), item.Amount); err != nil {
			return err
		}
	}
	for i, opt := range r.Details.ShippingOptions {
		if _, err := parseAmount(fmt.Sprintf("details.shippingOptions[%d]", i), opt.Amount); err != nil {
			return err
		}
	}
	for i, mod := range r.Details.Modifiers {
		if mod.Total == nil {
			continue
		}
		amount, err := parseAmount(fmt.Sprintf("details.modifiers[%d].total", i), mod.Total.Amount)
		if err != nil {
			return err
		}
		if amount.IsNegative() {
			return dErrors.Newf(dErrors.CodeInvalidArgument, "details.modifiers[%d].total must not be negative", i)
		}
	}
	return nil
}

// SupportedMethods returns every accepted method identifier, deduplicated,
// in first-seen order.
func (r *PaymentRequest) SupportedMethods() []string {
	var all []string
	for _, md := range r.MethodData {
		all = append(all, md.SupportedMethods...)
	}
	return platformstrings.DedupeAndTrim(all)
}

// ShippingOption returns the option with id.
func (r *PaymentRequest) ShippingOption(id string) (PaymentShippingOption, bool) {
	for _, opt := range r.Details.ShippingOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return PaymentShippingOption{}, false
}

func parseAmount(field string, amount PaymentCurrencyAmount) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount.Value)
	if err != nil {
		return decimal.Decimal{}, dErrors.Wrap(err, dErrors.CodeInvalidArgument,
			fmt.Sprintf("%s.amount.value %q is not a decimal monetary value", field, amount.Value))
	}
	return d, nil
}

// Selection is the UI's choice of instrument.
type Selection struct {
	PaymentHandler       string `json:"paymentHandler" validate:"required"`
	PaymentInstrumentKey string `json:"paymentInstrumentKey" validate:"required"`
}

func (s *Selection) Validate() error {
	if s == nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "selection is required")
	}
	if err := validate.Struct(s); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidArgument, describe("invalid selection", err))
	}
	return nil
}

// ShippingAddress follows the PaymentAddress shape.
type ShippingAddress struct {
	Country           string   `json:"country,omitempty"`
	AddressLine       []string `json:"addressLine,omitempty"`
	Region            string   `json:"region,omitempty"`
	City              string   `json:"city,omitempty"`
	DependentLocality string   `json:"dependentLocality,omitempty"`
	PostalCode        string   `json:"postalCode,omitempty"`
	SortingCode       string   `json:"sortingCode,omitempty"`
	LanguageCode      string   `json:"languageCode,omitempty"`
	Organization      string   `json:"organization,omitempty"`
	Recipient         string   `json:"recipient,omitempty"`
	Phone             string   `json:"phone,omitempty"`
}

// PaymentResponse is returned to the caller of Show. Shipping and payer
// fields are reserved; handlers do not populate them yet.
type PaymentResponse struct {
	RequestID       string           `json:"requestId"`
	MethodName      string           `json:"methodName"`
	Details         map[string]any   `json:"details"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	ShippingOption  string           `json:"shippingOption,omitempty"`
	PayerName       string           `json:"payerName,omitempty"`
	PayerEmail      string           `json:"payerEmail,omitempty"`
	PayerPhone      string           `json:"payerPhone,omitempty"`
}

func describe(prefix string, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return prefix
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns+" ("+fe.Tag()+")")
	}
	return prefix + ": " + strings.Join(fields, ", ")
}
