// Package queue defines the booking event feed exchanged over the
// message broker and the background consumer that records it.
package queue

// Booking event actions.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// BookingEvent is published whenever a booking is created or deleted.
// It carries enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type BookingEvent struct {
	Action           string `json:"action"`
	BookingID        int64  `json:"booking_id"`
	OrganizationName string `json:"organization_name,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
	OccurredAt       string `json:"occurred_at"`
}
