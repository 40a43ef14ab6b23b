package daterange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) Range {
	t.Helper()
	r, err := NewRange(start, end)
	require.NoError(t, err)
	return r
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", d.String())

	for _, bad := range []string{"", "2024-6-1", "01.06.2024", "2024-13-01", "not-a-date"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestOverlaps(t *testing.T) {
	stored := mustRange(t, "2024-06-01", "2024-06-03")

	tests := []struct {
		name      string
		candidate Range
		want      bool
	}{
		{"shared endpoint counts as overlap", mustRange(t, "2024-06-03", "2024-06-05"), true},
		{"adjacent day after does not overlap", mustRange(t, "2024-06-04", "2024-06-05"), false},
		{"adjacent day before does not overlap", mustRange(t, "2024-05-28", "2024-05-31"), false},
		{"candidate start inside stored", mustRange(t, "2024-06-02", "2024-06-10"), true},
		{"candidate end inside stored", mustRange(t, "2024-05-30", "2024-06-01"), true},
		{"candidate contains stored", mustRange(t, "2024-05-01", "2024-06-30"), true},
		{"identical ranges", mustRange(t, "2024-06-01", "2024-06-03"), true},
		{"single day inside stored", mustRange(t, "2024-06-02", "2024-06-02"), true},
		{"fully disjoint", mustRange(t, "2024-07-01", "2024-07-02"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stored.Overlaps(tt.candidate))
			// The predicate is symmetric.
			assert.Equal(t, tt.want, tt.candidate.Overlaps(stored))
		})
	}
}

// Regression guard for the containment case: a candidate lying fully
// inside a stored booking must be reported, which an enumeration of
// "start inside, end inside" sub-cases would miss.
func TestOverlapsContainment(t *testing.T) {
	stored := mustRange(t, "2024-06-01", "2024-06-10")
	candidate := mustRange(t, "2024-06-03", "2024-06-04")

	assert.True(t, stored.Overlaps(candidate))
	assert.True(t, candidate.Overlaps(stored))
}

func TestContains(t *testing.T) {
	r := mustRange(t, "2024-06-01", "2024-06-03")

	for day, want := range map[string]bool{
		"2024-05-31": false,
		"2024-06-01": true,
		"2024-06-02": true,
		"2024-06-03": true,
		"2024-06-04": false,
	} {
		d, err := ParseDate(day)
		require.NoError(t, err)
		assert.Equal(t, want, r.Contains(d), "day %s", day)
	}
}

// A reversed range (start after end) contains nothing and overlaps
// nothing; callers are allowed to pass one through.
func TestReversedRange(t *testing.T) {
	reversed := mustRange(t, "2024-06-10", "2024-06-01")
	stored := mustRange(t, "2024-06-04", "2024-06-06")

	assert.False(t, reversed.Overlaps(stored))
	d, _ := ParseDate("2024-06-05")
	assert.False(t, reversed.Contains(d))
}
