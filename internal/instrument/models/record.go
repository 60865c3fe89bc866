package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "paymediator/pkg/domain-errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ImageObject describes one icon of an instrument. FetchedImage carries the
// icon bytes (usually a data URL) once fetched; it is never returned to
// callers that only need matching metadata.
type ImageObject struct {
	Src          string `json:"src" validate:"required"`
	Sizes        string `json:"sizes" validate:"required"`
	Type         string `json:"type" validate:"required"`
	FetchedImage string `json:"fetchedImage,omitempty"`
}

// Record is one payment instrument stored under a handler.
//
// Invariants:
//   - Name is present
//   - Capabilities is present (it may be empty)
//   - every icon carries src, sizes and type
//   - every enabled method is a non-empty identifier
type Record struct {
	Name           string         `json:"name" validate:"required"`
	Icons          []ImageObject  `json:"icons,omitempty" validate:"omitempty,dive"`
	EnabledMethods []string       `json:"enabledMethods,omitempty" validate:"omitempty,dive,required"`
	Capabilities   map[string]any `json:"capabilities" validate:"required"`
}

// Validate enforces the record invariants. Failures are CodeInvalidArgument.
func (r *Record) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "instrument details must be an object")
	}
	if err := validate.Struct(r); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidArgument, describe(err))
	}
	return nil
}

// Redacted returns a deep-enough copy with every FetchedImage removed. The
// capabilities map is shared; callers treat records as read-only.
func (r *Record) Redacted() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.Icons != nil {
		out.Icons = make([]ImageObject, len(r.Icons))
		for i, icon := range r.Icons {
			icon.FetchedImage = ""
			out.Icons[i] = icon
		}
	}
	if r.EnabledMethods != nil {
		out.EnabledMethods = append([]string(nil), r.EnabledMethods...)
	}
	return &out
}

// SupportsMethod reports whether the method identifier is enabled.
func (r *Record) SupportsMethod(method string) bool {
	for _, m := range r.EnabledMethods {
		if m == method {
			return true
		}
	}
	return false
}

// DecodeRecord parses a JSON instrument payload. Type mismatches (icons not
// an array, a method that is not a string) surface as CodeInvalidArgument
// before validation runs.
func DecodeRecord(raw []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument,
				fmt.Sprintf("%q must be of type %s", typeErr.Field, typeErr.Type))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, "instrument details must be an object")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid instrument details"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, jsonPath(fe.Namespace()))
	}
	return "invalid instrument details: " + strings.Join(fields, ", ")
}

// jsonPath turns "Record.Icons[0].Src" into "icons[0].src".
func jsonPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}
