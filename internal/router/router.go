package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/maikra/bounce-booking/internal/handler"
)

// RegisterRoutes wires every route of the service onto the provided
// Echo instance: the health check, the booking JSON API and the
// server-rendered calendar pages.
//
// /api/bookings/range is registered before /api/bookings/:id; Echo
// matches the static segment first so range queries are never mistaken
// for an ID lookup.
func RegisterRoutes(e *echo.Echo, b *handler.BookingHandler, cal *handler.CalendarHandler) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Booking API.
	api := e.Group("/api")
	api.GET("/bookings", b.ListBookings)
	api.GET("/bookings/range", b.ListBookingsInRange)
	api.GET("/bookings/:id", b.GetBooking)
	api.POST("/bookings", b.CreateBooking)
	api.DELETE("/bookings/:id", b.DeleteBooking)

	// Calendar UI.
	e.GET("/", cal.CalendarPage)
	e.GET("/calendar", cal.CalendarPage)
}
