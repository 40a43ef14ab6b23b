package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/maikra/bounce-booking/internal/model"
)

// BookingRepo provides CRUD operations for bounce house bookings.
// There is exactly one rentable resource, so the table carries no
// resource key: any two rows with intersecting date ranges are a
// double-booking. Dates are stored as DATE columns and handled as
// YYYY-MM-DD strings end to end; created_at is stored as DATETIME
// in UTC and exposed as RFC 3339.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, organization_name, contact_person, email, phone,
       DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
       event_description, created_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking reads one bookings row. event_description is nullable and
// created_at arrives in the driver's DATETIME format; both are
// normalized here so callers only ever see wire-ready values.
func scanBooking(s rowScanner) (model.Booking, error) {
	var b model.Booking
	var desc sql.NullString
	var createdAt string
	if err := s.Scan(
		&b.ID, &b.OrganizationName, &b.ContactPerson, &b.Email, &b.Phone,
		&b.StartDate, &b.EndDate, &desc, &createdAt,
	); err != nil {
		return model.Booking{}, err
	}
	if desc.Valid {
		b.EventDescription = desc.String
	}
	// Convert DB timestamps (YYYY-MM-DD HH:MM:SS) to RFC3339 in UTC
	if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		b.CreatedAt = t.UTC().Format(time.RFC3339)
	} else {
		b.CreatedAt = createdAt
	}
	return b, nil
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every booking ordered ascending by start date. When
// the table is empty an empty slice is returned, never nil.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_date ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListOverlapping returns the bookings whose inclusive [start_date,
// end_date] range intersects [start, end]. The predicate is the general
// inclusive-overlap test (stored.start <= end AND stored.end >= start),
// which also covers the case of a stored booking fully containing the
// query range. start and end are taken as given; a reversed pair simply
// matches nothing.
func (r *BookingRepo) ListOverlapping(ctx context.Context, start, end string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
               WHERE start_date <= ? AND end_date >= ?
               ORDER BY start_date ASC`
	rows, err := r.db.QueryContext(ctx, q, end, start)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// GetByID returns a single booking by its primary key. When no booking
// with the given ID exists, ErrBookingNotFound is returned.
func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteByID removes a booking. ErrBookingNotFound is returned when no
// row matched, so handlers can distinguish a missing booking from a
// successful delete.
func (r *BookingRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CreateIfFree inserts a booking unless its date range overlaps an
// existing one. The overlap check and the insert run in a single
// transaction with the conflicting rows locked (SELECT ... FOR UPDATE),
// so two concurrent requests for intersecting ranges cannot both pass
// the check. On conflict a *ConflictError carrying the blocking
// bookings is returned and nothing is inserted. On success the stored
// record is returned with its generated ID and created_at populated.
func (r *BookingRepo) CreateIfFree(ctx context.Context, b model.Booking) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const checkQ = `SELECT ` + bookingColumns + ` FROM bookings
                    WHERE start_date <= ? AND end_date >= ?
                    ORDER BY start_date ASC
                    FOR UPDATE`
	rows, err := tx.QueryContext(ctx, checkQ, b.EndDate, b.StartDate)
	if err != nil {
		return nil, err
	}
	conflicts, err := collectBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	var desc interface{}
	if b.EventDescription != "" {
		desc = b.EventDescription
	}
	const insertQ = `INSERT INTO bookings
        (organization_name, contact_person, email, phone, start_date, end_date, event_description)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insertQ,
		b.OrganizationName, b.ContactPerson, b.Email, b.Phone,
		b.StartDate, b.EndDate, desc,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Query back the full row to populate created_at and defaults
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	created, err := scanBooking(tx.QueryRowContext(ctx, sel, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}
