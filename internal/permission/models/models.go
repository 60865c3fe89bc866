package models

import (
	"time"

	dErrors "paymediator/pkg/domain-errors"
)

// Name identifies a permission that can be granted to an origin.
type Name string

// PaymentHandler gates handler registration and instrument storage.
const PaymentHandler Name = "paymenthandler"

var knownNames = map[Name]bool{
	PaymentHandler: true,
}

// State is the outcome of a permission query or request.
type State string

const (
	StateGranted State = "granted"
	StateDenied  State = "denied"
)

// Descriptor names the permission being queried or requested.
type Descriptor struct {
	Name Name `json:"name"`
}

// Validate rejects permission names the gate does not know about.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "permission name is required")
	}
	if !knownNames[d.Name] {
		return dErrors.Newf(dErrors.CodeInvalidArgument, "unknown permission %q", d.Name)
	}
	return nil
}

// Status is returned by query and request.
type Status struct {
	State State `json:"state"`
}

// IsGranted reports whether the status allows the gated operation.
func (s Status) IsGranted() bool {
	return s.State == StateGranted
}

// Decision is the persisted outcome for one origin and permission.
type Decision struct {
	Name      Name      `json:"name"`
	State     State     `json:"state"`
	DecidedAt time.Time `json:"decided_at"`
}
