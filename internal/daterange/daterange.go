// Package daterange implements calendar-date ranges with inclusive
// endpoints. The bounce house is booked per calendar day, so all range
// math here works at day granularity with no time-of-day or timezone
// component. The overlap predicate in this package is the single source
// of truth for conflict detection: two closed ranges intersect iff
// neither lies entirely before the other.
package daterange

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar dates (ISO 8601 date).
const Layout = "2006-01-02"

// Date is a single calendar day. The zero value is the zero time and
// should not be used as a real date.
type Date struct {
	t time.Time
}

// ParseDate parses an ISO calendar-date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// String formats the date back into YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(Layout) }

// Before reports whether d falls on an earlier day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d falls on a later day than o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Range is an inclusive calendar-date range [Start, End]. Callers are
// not required to supply Start <= End; the predicates answer for
// whatever ordered pair they receive.
type Range struct {
	Start Date
	End   Date
}

// NewRange builds a Range from two ISO date strings.
func NewRange(start, end string) (Range, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: s, End: e}, nil
}

// Overlaps reports whether r and o intersect, counting shared endpoints
// as overlap. This is the general test r.Start <= o.End && r.End >= o.Start;
// it covers partial overlap in either direction as well as full
// containment of one range by the other.
func (r Range) Overlaps(o Range) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

// Contains reports whether the day d falls inside r, endpoints included.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}
