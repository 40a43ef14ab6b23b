// Package validator checks incoming booking requests before they reach
// the store. Field presence is declared with struct tags; the date
// rules (parseable YYYY-MM-DD, end not before start) are applied on
// top because they relate two fields.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maikra/bounce-booking/internal/daterange"
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors aggregates every rejected field of one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// CreateBookingRequest is the JSON body accepted by POST /api/bookings.
// All fields except EventDescription are required.
type CreateBookingRequest struct {
	OrganizationName string `json:"organizationName" validate:"required"`
	ContactPerson    string `json:"contactPerson" validate:"required"`
	Email            string `json:"email" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate" validate:"required"`
	EventDescription string `json:"eventDescription"`
}

// BookingValidator validates booking creation requests.
type BookingValidator struct {
	validate *validator.Validate
}

// NewBookingValidator returns a validator ready for use.
func NewBookingValidator() *BookingValidator {
	return &BookingValidator{validate: validator.New()}
}

// Validate checks a create request. It returns ValidationErrors listing
// every failed field, or nil when the request is acceptable. The range
// returned on success is the parsed [StartDate, EndDate] pair.
// Reversed ranges (endDate before startDate) are rejected here so a
// direct API call cannot store one.
func (v *BookingValidator) Validate(req *CreateBookingRequest) (daterange.Range, error) {
	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return daterange.Range{}, translateFieldErrors(fieldErrs)
		}
		return daterange.Range{}, err
	}

	start, err := daterange.ParseDate(req.StartDate)
	if err != nil {
		return daterange.Range{}, ValidationErrors{{
			Field:   "startDate",
			Message: "startDate must be a calendar date in YYYY-MM-DD format",
		}}
	}
	end, err := daterange.ParseDate(req.EndDate)
	if err != nil {
		return daterange.Range{}, ValidationErrors{{
			Field:   "endDate",
			Message: "endDate must be a calendar date in YYYY-MM-DD format",
		}}
	}
	if end.Before(start) {
		return daterange.Range{}, ValidationErrors{{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		}}
	}
	return daterange.Range{Start: start, End: end}, nil
}

func translateFieldErrors(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		message := err.Error()
		if err.Tag() == "required" {
			message = fmt.Sprintf("%s is required", fieldName(err.Field()))
		}
		out = append(out, ValidationError{
			Field:   fieldName(err.Field()),
			Message: message,
		})
	}
	return out
}

// fieldName maps the Go struct field back to its JSON name.
func fieldName(goField string) string {
	if goField == "" {
		return goField
	}
	return strings.ToLower(goField[:1]) + goField[1:]
}
