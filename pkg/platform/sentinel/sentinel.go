package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Storage backends and the remote
// invocation layer return these (optionally wrapped) so services can translate
// them into domain errors.
//
// These represent factual states, not validation failures:
// - ErrNotFound: key does not exist in a storage namespace
// - ErrUnavailable: backend or execution context temporarily unavailable
// - ErrTimeout: a bounded remote call exceeded its configured timeout
// - ErrClosed: the execution context was torn down before the call finished
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrTimeout     = errors.New("timeout")
	ErrClosed      = errors.New("closed")
)
