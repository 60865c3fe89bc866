package domain

import (
	"github.com/google/uuid"

	dErrors "paymediator/pkg/domain-errors"
)

// RequestID identifies one in-flight payment request (one RequestState).
type RequestID uuid.UUID

// NewRequestID returns a random request ID.
func NewRequestID() RequestID {
	return RequestID(uuid.New())
}

// ParseRequestID validates the canonical UUID form.
func ParseRequestID(s string) (RequestID, error) {
	if s == "" {
		return RequestID{}, dErrors.New(dErrors.CodeInvalidArgument, "request id must not be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return RequestID{}, dErrors.Wrap(err, dErrors.CodeInvalidArgument, "invalid request id")
	}
	if parsed == uuid.Nil {
		return RequestID{}, dErrors.New(dErrors.CodeInvalidArgument, "request id must not be nil")
	}
	return RequestID(parsed), nil
}

func (id RequestID) String() string {
	return uuid.UUID(id).String()
}

func (id RequestID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id RequestID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *RequestID) UnmarshalText(text []byte) error {
	parsed, err := ParseRequestID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
