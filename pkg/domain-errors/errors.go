// Package domainerrors carries the mediator's error taxonomy. Services return
// *Error values (optionally wrapping an infrastructure cause) so transports can
// map failures without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure. Codes are stable strings and appear verbatim in
// HTTP error bodies.
type Code string

const (
	// CodeInvalidArgument covers malformed URLs, instrument records, keys and
	// payment requests. Never retried.
	CodeInvalidArgument Code = "invalid_argument"
	// CodeOriginMismatch is returned when a URL does not belong to the
	// origin a registry or instrument store is bound to.
	CodeOriginMismatch Code = "origin_mismatch"
	// CodePermissionDenied is returned when the permission gate did not
	// report "granted".
	CodePermissionDenied Code = "permission_denied"
	// CodeAlreadyInProgress is returned by Show while a request is active.
	CodeAlreadyInProgress Code = "already_in_progress"
	// CodeNoActiveRequest is returned by operations that need an active
	// request when there is none.
	CodeNoActiveRequest Code = "no_active_request"
	// CodeHandlerLoadFailure covers execution-context creation and proxy
	// binding failures.
	CodeHandlerLoadFailure Code = "handler_load_failure"
	// CodeRemoteCallFailure covers timeouts and transport or application
	// errors from requestPayment/abortPayment.
	CodeRemoteCallFailure Code = "remote_call_failure"
	// CodeInvalidResponse is returned when a handler or the UI produced a
	// malformed or absent response.
	CodeInvalidResponse Code = "invalid_response"

	CodeNotFound Code = "not_found"
	CodeAborted  Code = "aborted"
	CodeTimeout  Code = "timeout"
	CodeInternal Code = "internal_error"
)

// Error is a domain error with a stable code.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf is New with formatting.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether the outermost domain error in err's chain carries
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost domain code, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the client-safe message of a domain error. Foreign errors
// are reported generically so infrastructure details do not leak.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code onto the HTTP status used by the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidArgument, CodeOriginMismatch, CodeInvalidResponse:
		return http.StatusBadRequest
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyInProgress, CodeNoActiveRequest:
		return http.StatusConflict
	case CodeHandlerLoadFailure, CodeRemoteCallFailure:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeAborted:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
