package handler

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maikra/bounce-booking/internal/daterange"
	"github.com/maikra/bounce-booking/internal/model"
	"github.com/maikra/bounce-booking/internal/repository"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer adapts html/template to Echo's Renderer interface.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() *Renderer {
	return &Renderer{templates: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// CalendarHandler renders the month calendar and booking list. It is a
// consumer of the same store the API uses; all conflict logic stays in
// the service, the page only displays which days are taken.
type CalendarHandler struct {
	Repo *repository.BookingRepo
}

// calendarDay is one cell of the month grid.
type calendarDay struct {
	Day     int
	InMonth bool
	Today   bool
	Booked  bool
}

// calendarPage is the template payload for calendar.html.
type calendarPage struct {
	MonthLabel string
	Year       int
	Month      int
	PrevYear   int
	PrevMonth  int
	NextYear   int
	NextMonth  int
	DayNames   []string
	Weeks      [][]calendarDay
	Bookings   []model.Booking
}

// CalendarPage handles GET /calendar (and GET /). Optional year and
// month query parameters select the displayed month; anything missing
// or unparseable falls back to the current month.
func (h *CalendarHandler) CalendarPage(c echo.Context) error {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if y, err := strconv.Atoi(c.QueryParam("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(c.QueryParam("month")); err == nil {
		month = m
	}
	// time.Date normalizes out-of-range months (month 0 is December of
	// the previous year), which makes prev/next navigation trivial.
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), int(first.Month())

	bookings, err := h.Repo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	ranges := make([]daterange.Range, 0, len(bookings))
	for _, b := range bookings {
		r, err := daterange.NewRange(b.StartDate, b.EndDate)
		if err != nil {
			continue // a malformed stored range is skipped, not fatal
		}
		ranges = append(ranges, r)
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	page := calendarPage{
		MonthLabel: first.Format("January 2006"),
		Year:       year,
		Month:      month,
		PrevYear:   prev.Year(),
		PrevMonth:  int(prev.Month()),
		NextYear:   next.Year(),
		NextMonth:  int(next.Month()),
		DayNames:   []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Weeks:      buildMonthGrid(first, now, ranges),
		Bookings:   bookings,
	}
	return c.Render(http.StatusOK, "calendar.html", page)
}

// buildMonthGrid lays the month out as six Monday-first weeks, padded
// with the adjacent months' days. A day is marked booked when any
// stored range contains it.
func buildMonthGrid(first, now time.Time, ranges []daterange.Range) [][]calendarDay {
	offset := (int(first.Weekday()) + 6) % 7 // days since Monday
	cur := first.AddDate(0, 0, -offset)

	weeks := make([][]calendarDay, 0, 6)
	for w := 0; w < 6; w++ {
		week := make([]calendarDay, 0, 7)
		for d := 0; d < 7; d++ {
			day, _ := daterange.ParseDate(cur.Format(daterange.Layout))
			booked := false
			for _, r := range ranges {
				if r.Contains(day) {
					booked = true
					break
				}
			}
			week = append(week, calendarDay{
				Day:     cur.Day(),
				InMonth: cur.Month() == first.Month(),
				Today:   cur.Year() == now.Year() && cur.YearDay() == now.YearDay(),
				Booked:  booked,
			})
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
