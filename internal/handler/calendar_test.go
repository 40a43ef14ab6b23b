package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maikra/bounce-booking/internal/daterange"
	"github.com/maikra/bounce-booking/internal/repository"
)

func TestCalendarPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(bookingCols).
		AddRow(bookingRow(1, "SV Adler", "2024-06-10", "2024-06-12")...)
	mock.ExpectQuery(`FROM bookings ORDER BY start_date ASC`).WillReturnRows(rows)

	h := &CalendarHandler{Repo: repository.NewBookingRepo(db)}

	e := echo.New()
	e.Renderer = NewRenderer()
	req := httptest.NewRequest(http.MethodGet, "/calendar?year=2024&month=6", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CalendarPage(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "June 2024")
	assert.Contains(t, body, "SV Adler")
	assert.Contains(t, body, "Booked")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarPageEmptyStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM bookings ORDER BY start_date ASC`).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	h := &CalendarHandler{Repo: repository.NewBookingRepo(db)}

	e := echo.New()
	e.Renderer = NewRenderer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CalendarPage(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No bookings yet.")
}

func TestBuildMonthGrid(t *testing.T) {
	// June 2024 starts on a Saturday; Monday-first layout puts five
	// leading days from May in the first week.
	first := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	r, err := daterange.NewRange("2024-06-10", "2024-06-12")
	require.NoError(t, err)

	weeks := buildMonthGrid(first, now, []daterange.Range{r})
	require.Len(t, weeks, 6)
	for _, w := range weeks {
		require.Len(t, w, 7)
	}

	// First cell is Monday, May 27.
	assert.Equal(t, 27, weeks[0][0].Day)
	assert.False(t, weeks[0][0].InMonth)
	// June 1 sits on Saturday of the first week.
	assert.Equal(t, 1, weeks[0][5].Day)
	assert.True(t, weeks[0][5].InMonth)

	booked := 0
	var todays int
	for _, w := range weeks {
		for _, d := range w {
			if d.Booked {
				booked++
			}
			if d.Today {
				todays++
			}
		}
	}
	assert.Equal(t, 3, booked, "June 10-12 inclusive")
	assert.Equal(t, 1, todays)
}
