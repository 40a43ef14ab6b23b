package handler

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maikra/bounce-booking/internal/model"
	"github.com/maikra/bounce-booking/internal/queue"
	"github.com/maikra/bounce-booking/internal/repository"
	"github.com/maikra/bounce-booking/internal/validator"
)

var bookingCols = []string{
	"id", "organization_name", "contact_person", "email", "phone",
	"start_date", "end_date", "event_description", "created_at",
}

func bookingRow(id int64, org, start, end string) []driver.Value {
	return []driver.Value{
		id, org, "Jo Doe", "jo@example.com", "+49123456", start, end, nil, "2024-05-20 10:30:00",
	}
}

// newTestHandler builds a BookingHandler over a mocked database and
// records every published event.
func newTestHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock, *[]queue.BookingEvent) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var events []queue.BookingEvent
	h := &BookingHandler{
		Repo:      repository.NewBookingRepo(db),
		Validator: validator.NewBookingValidator(),
		PublishEvent: func(_ context.Context, ev queue.BookingEvent) error {
			events = append(events, ev)
			return nil
		},
	}
	return h, mock, &events
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListBookings(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	rows := sqlmock.NewRows(bookingCols).
		AddRow(bookingRow(1, "SV Adler", "2024-06-01", "2024-06-03")...).
		AddRow(bookingRow(2, "TuS Falke", "2024-07-01", "2024-07-02")...)
	mock.ExpectQuery(`FROM bookings ORDER BY start_date ASC`).WillReturnRows(rows)

	c, rec := newContext(t, http.MethodGet, "/api/bookings", "")
	require.NoError(t, h.ListBookings(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "SV Adler", got[0].OrganizationName)
	assert.Equal(t, "2024-06-01", got[0].StartDate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookingsStoreError(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectQuery(`FROM bookings ORDER BY start_date ASC`).
		WillReturnError(assert.AnError)

	c, rec := newContext(t, http.MethodGet, "/api/bookings", "")
	require.NoError(t, h.ListBookings(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestListBookingsInRange(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	rows := sqlmock.NewRows(bookingCols).
		AddRow(bookingRow(1, "SV Adler", "2024-06-01", "2024-06-03")...)
	mock.ExpectQuery(`WHERE start_date <= \? AND end_date >= \?`).
		WithArgs("2024-06-05", "2024-06-03").
		WillReturnRows(rows)

	c, rec := newContext(t, http.MethodGet, "/api/bookings/range?start=2024-06-03&end=2024-06-05", "")
	require.NoError(t, h.ListBookingsInRange(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBooking(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(5, "SV Adler", "2024-06-01", "2024-06-03")...))

	c, rec := newContext(t, http.MethodGet, "/api/bookings/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.GetBooking(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(5), got.ID)
}

func TestGetBookingNotFound(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	c, rec := newContext(t, http.MethodGet, "/api/bookings/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.GetBooking(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking not found")
}

func TestGetBookingInvalidID(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, rec := newContext(t, http.MethodGet, "/api/bookings/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const createBody = `{
  "organizationName": "SV Adler",
  "contactPerson": "Jo Doe",
  "email": "jo@example.com",
  "phone": "+49123456",
  "startDate": "2024-07-01",
  "endDate": "2024-07-02",
  "eventDescription": "club festival"
}`

func TestCreateBooking(t *testing.T) {
	h, mock, events := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("2024-07-02", "2024-07-01").
		WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs("SV Adler", "Jo Doe", "jo@example.com", "+49123456",
			"2024-07-01", "2024-07-02", "club festival").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(11, "SV Adler", "2024-07-01", "2024-07-02")...))
	mock.ExpectCommit()

	c, rec := newContext(t, http.MethodPost, "/api/bookings", createBody)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.EqualValues(t, 11, out["id"])
	assert.Equal(t, "booking created successfully", out["message"])

	// A created event is emitted for the feed.
	require.Len(t, *events, 1)
	assert.Equal(t, queue.ActionCreated, (*events)[0].Action)
	assert.Equal(t, int64(11), (*events)[0].BookingID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingMissingField(t *testing.T) {
	h, mock, events := newTestHandler(t)

	body := `{"organizationName": "", "contactPerson": "Jo Doe", "email": "jo@example.com",
              "phone": "+49123456", "startDate": "2024-07-01", "endDate": "2024-07-02"}`
	c, rec := newContext(t, http.MethodPost, "/api/bookings", body)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "organizationName is required")
	assert.Empty(t, *events)
	// The store is never touched on validation failure.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingEndBeforeStart(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := strings.Replace(createBody, `"endDate": "2024-07-02"`, `"endDate": "2024-06-30"`, 1)
	c, rec := newContext(t, http.MethodPost, "/api/bookings", body)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "endDate must not be before startDate")
}

func TestCreateBookingConflict(t *testing.T) {
	h, mock, events := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("2024-07-02", "2024-07-01").
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(3, "TuS Falke", "2024-06-30", "2024-07-01")...))
	mock.ExpectRollback()

	c, rec := newContext(t, http.MethodPost, "/api/bookings", createBody)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var out struct {
		Error               string          `json:"error"`
		ConflictingBookings []model.Booking `json:"conflictingBookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Error)
	require.Len(t, out.ConflictingBookings, 1)
	assert.Equal(t, int64(3), out.ConflictingBookings[0].ID)

	assert.Empty(t, *events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBooking(t *testing.T) {
	h, mock, events := newTestHandler(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \?`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newContext(t, http.MethodDelete, "/api/bookings/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.DeleteBooking(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking deleted successfully")
	require.Len(t, *events, 1)
	assert.Equal(t, queue.ActionDeleted, (*events)[0].Action)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookingNotFound(t *testing.T) {
	h, mock, events := newTestHandler(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \?`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := newContext(t, http.MethodDelete, "/api/bookings/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.DeleteBooking(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, *events)
	assert.NoError(t, mock.ExpectationsWereMet())
}
