package model

// Booking is the sole entity of the service: one reservation of the
// bounce house for an inclusive calendar-date range.
//
// Fields:
//  ID               – primary key, assigned by the store on insert.
//  OrganizationName – club or association renting the bounce house.
//  ContactPerson    – who to reach about the booking.
//  Email, Phone     – contact details, required.
//  StartDate        – first booked day (YYYY-MM-DD).
//  EndDate          – last booked day, inclusive (YYYY-MM-DD).
//  EventDescription – optional free text about the event.
//  CreatedAt        – insert timestamp, assigned by the store (RFC 3339).
//
// Bookings are immutable once created; the only lifecycle transition
// is deletion by ID.
type Booking struct {
	ID               int64  `json:"id"`                         // bookings.id
	OrganizationName string `json:"organizationName"`           // bookings.organization_name
	ContactPerson    string `json:"contactPerson"`              // bookings.contact_person
	Email            string `json:"email"`                      // bookings.email
	Phone            string `json:"phone"`                      // bookings.phone
	StartDate        string `json:"startDate"`                  // bookings.start_date
	EndDate          string `json:"endDate"`                    // bookings.end_date
	EventDescription string `json:"eventDescription,omitempty"` // bookings.event_description (nullable)
	CreatedAt        string `json:"createdAt"`                  // bookings.created_at
}
