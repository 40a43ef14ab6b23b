// Package handler exposes the HTTP surface of the booking service: the
// JSON API under /api/bookings and the server-rendered calendar pages.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/maikra/bounce-booking/internal/model"
	"github.com/maikra/bounce-booking/internal/queue"
	"github.com/maikra/bounce-booking/internal/repository"
	"github.com/maikra/bounce-booking/internal/validator"
)

// BookingHandler serves the booking API. The repository and validator
// are injected so tests can run against a mocked database. PublishEvent
// is optional; when set it receives a BookingEvent after every
// successful create and delete, and its errors are ignored so a broker
// outage never fails a request.
type BookingHandler struct {
	Repo         *repository.BookingRepo
	Validator    *validator.BookingValidator
	PublishEvent func(ctx context.Context, ev queue.BookingEvent) error
}

// ListBookings handles GET /api/bookings. It returns every booking
// ordered ascending by start date.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Repo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListBookingsInRange handles GET /api/bookings/range?start=D&end=D.
// It returns the bookings whose inclusive date range intersects
// [start, end]. The parameters are passed through as given: a reversed
// pair simply matches nothing.
func (h *BookingHandler) ListBookingsInRange(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	bookings, err := h.Repo.ListOverlapping(c.Request().Context(), start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, b)
}

// CreateBooking handles POST /api/bookings. The request is validated
// (all required fields present, dates well-formed, endDate not before
// startDate), then inserted unless it overlaps a stored booking. On
// overlap the conflicting bookings are returned with HTTP 409.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req validator.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if _, err := h.Validator.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	booking := model.Booking{
		OrganizationName: req.OrganizationName,
		ContactPerson:    req.ContactPerson,
		Email:            req.Email,
		Phone:            req.Phone,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		EventDescription: req.EventDescription,
	}

	created, err := h.Repo.CreateIfFree(c.Request().Context(), booking)
	if err != nil {
		var conflict *repository.ConflictError
		if errors.As(err, &conflict) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":               conflict.Error(),
				"conflictingBookings": conflict.Conflicts,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.publish(queue.BookingEvent{
		Action:           queue.ActionCreated,
		BookingID:        created.ID,
		OrganizationName: created.OrganizationName,
		StartDate:        created.StartDate,
		EndDate:          created.EndDate,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      created.ID,
		"message": "booking created successfully",
	})
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Repo.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.publish(queue.BookingEvent{
		Action:     queue.ActionDeleted,
		BookingID:  id,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted successfully"})
}

// publish emits a booking event when a publisher is wired. Failures are
// already logged by the publisher and deliberately not surfaced.
func (h *BookingHandler) publish(ev queue.BookingEvent) {
	if h.PublishEvent == nil {
		return
	}
	if err := h.PublishEvent(context.Background(), ev); err != nil {
		logrus.WithError(err).WithField("action", ev.Action).Debug("booking event not published")
	}
}
