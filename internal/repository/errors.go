// Package repository implements the booking store on top of database/sql.
// This file defines the error values handlers use to translate store
// outcomes into HTTP responses: a sentinel for missing rows and a typed
// conflict error that carries the bookings blocking a create.
package repository

import (
	"errors"

	"github.com/maikra/bounce-booking/internal/model"
)

// ErrBookingNotFound is returned when a lookup or delete matches no
// booking. Handlers should translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ConflictError is returned by CreateIfFree when the requested period
// overlaps one or more stored bookings. It carries the conflicting
// records so handlers can include them in the HTTP 409 payload.
type ConflictError struct {
	Conflicts []model.Booking
}

func (e *ConflictError) Error() string {
	return "the bounce house is already booked for this period"
}
