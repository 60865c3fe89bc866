package audit

import "time"

// EventCategory classifies audit events by their primary purpose so sinks can
// apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers registration and instrument changes made on
	// behalf of an origin.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers permission decisions and rejected access.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers the payment request lifecycle.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	// Origin is the relying origin the action was performed for.
	Origin string `json:"origin"`
	// Subject is the handler URL, instrument key or permission name acted on.
	Subject   string `json:"subject,omitempty"`
	Action    string `json:"action"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	// Permission events
	EventPermissionGranted AuditEvent = "permission_granted"
	EventPermissionDenied  AuditEvent = "permission_denied"

	// Registration events
	EventHandlerRegistered   AuditEvent = "handler_registered"
	EventHandlerUnregistered AuditEvent = "handler_unregistered"

	// Instrument events
	EventInstrumentSet     AuditEvent = "instrument_set"
	EventInstrumentDeleted AuditEvent = "instrument_deleted"
	EventInstrumentsClear  AuditEvent = "instruments_cleared"

	// Payment request events
	EventPaymentRequestShown     AuditEvent = "payment_request_shown"
	EventPaymentRequestCompleted AuditEvent = "payment_request_completed"
	EventPaymentRequestFailed    AuditEvent = "payment_request_failed"
	EventPaymentHandlerEngaged   AuditEvent = "payment_handler_engaged"
	EventPaymentAborted          AuditEvent = "payment_aborted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventPermissionGranted: CategorySecurity,
	EventPermissionDenied:  CategorySecurity,

	EventHandlerRegistered:   CategoryCompliance,
	EventHandlerUnregistered: CategoryCompliance,
	EventInstrumentSet:       CategoryCompliance,
	EventInstrumentDeleted:   CategoryCompliance,
	EventInstrumentsClear:    CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
