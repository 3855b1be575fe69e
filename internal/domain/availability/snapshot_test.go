package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/domain/shared/daterange"
)

const today = datekey.DateKey("2024-01-10")

func requireInvariants(t *testing.T, s Snapshot) {
	t.Helper()
	for d := range s.Available {
		require.False(t, s.Excluded.Contains(d), "available/excluded overlap at %s", d)
		require.False(t, s.Booked.Contains(d), "available/booked overlap at %s", d)
	}
	for d := range s.Excluded {
		require.False(t, s.Booked.Contains(d), "excluded/booked overlap at %s", d)
	}
}

func TestStatusPriority(t *testing.T) {
	s := NewSnapshot()
	s.Available.Add("2024-01-15")
	s.Excluded.Add("2024-01-16")
	s.Booked.Add("2024-01-17")

	tests := []struct {
		date datekey.DateKey
		want DateStatus
	}{
		{"2024-01-17", StatusBooked},
		{"2024-01-16", StatusExcluded},
		{"2024-01-15", StatusAvailable},
		{"2024-01-05", StatusPast},
		{"2024-01-20", StatusDefault},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Status(tt.date, today), "status of %s", tt.date)
	}
}

func TestToggleAvailableBecomesExcluded(t *testing.T) {
	// Scenario: clicking an available date moves it to excluded.
	s := NewSnapshot()
	s.Available.Add("2024-01-15")
	s.Available.Add("2024-01-16")

	status, err := s.Toggle("2024-01-15", today)
	require.NoError(t, err)
	assert.Equal(t, StatusExcluded, status)
	assert.True(t, s.Available.Equal(datekey.NewSet("2024-01-16")))
	assert.True(t, s.Excluded.Equal(datekey.NewSet("2024-01-15")))
	requireInvariants(t, s)
}

func TestToggleRoundTrip(t *testing.T) {
	s := NewSnapshot()

	status, err := s.Toggle("2024-01-20", today)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, status)

	status, err = s.Toggle("2024-01-20", today)
	require.NoError(t, err)
	assert.Equal(t, StatusExcluded, status)

	status, err = s.Toggle("2024-01-20", today)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, status)
	requireInvariants(t, s)
}

func TestToggleBookedRejected(t *testing.T) {
	s := NewSnapshot()
	s.Booked.Add("2024-01-20")
	before := s.Clone()

	_, err := s.Toggle("2024-01-20", today)
	require.ErrorIs(t, err, ErrBookedDateImmutable)
	assert.True(t, s.Available.Equal(before.Available))
	assert.True(t, s.Excluded.Equal(before.Excluded))
	assert.True(t, s.Booked.Equal(before.Booked))
}

func TestTogglePastRejected(t *testing.T) {
	s := NewSnapshot()
	_, err := s.Toggle("2024-01-01", today)
	require.ErrorIs(t, err, ErrPastDateImmutable)
	assert.Equal(t, 0, s.Available.Len())
}

func TestApplyAvailableRangeSkipsExcluded(t *testing.T) {
	// Scenario: generating 02-01..02-05 with 02-03 pre-excluded.
	s := NewSnapshot()
	s.Excluded.Add("2024-02-03")

	r, err := daterange.New("2024-02-01", "2024-02-05")
	require.NoError(t, err)

	added, err := s.ApplyAvailableRange(r)
	require.NoError(t, err)
	assert.Len(t, added, 4)
	assert.True(t, s.Available.Equal(datekey.NewSet("2024-02-01", "2024-02-02", "2024-02-04", "2024-02-05")))
	assert.True(t, s.Excluded.Contains("2024-02-03"))
	requireInvariants(t, s)
}

func TestApplyAvailableRangeIdempotent(t *testing.T) {
	s := NewSnapshot()
	r, _ := daterange.New("2024-02-01", "2024-02-03")

	_, err := s.ApplyAvailableRange(r)
	require.NoError(t, err)
	first := s.Available.Clone()

	added, err := s.ApplyAvailableRange(r)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.True(t, s.Available.Equal(first))
}

func TestApplyAvailableRangeInvalid(t *testing.T) {
	s := NewSnapshot()
	_, err := s.ApplyAvailableRange(daterange.DateRange{Start: "2024-02-05", End: "2024-02-01"})
	require.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestExcludeDateWithinRange(t *testing.T) {
	s := NewSnapshot()
	r, _ := daterange.New("2024-02-01", "2024-02-05")
	_, err := s.ApplyAvailableRange(r)
	require.NoError(t, err)

	require.NoError(t, s.ExcludeDateWithinRange("2024-02-03", r))
	assert.False(t, s.Available.Contains("2024-02-03"))
	assert.True(t, s.Excluded.Contains("2024-02-03"))
	requireInvariants(t, s)

	err = s.ExcludeDateWithinRange("2024-02-03", r)
	require.ErrorIs(t, err, ErrAlreadyExcluded)

	err = s.ExcludeDateWithinRange("2024-02-10", r)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestRemovesAreIdempotent(t *testing.T) {
	s := NewSnapshot()
	s.Available.Add("2024-02-01")
	s.Excluded.Add("2024-02-02")

	s.RemoveFromAvailable("2024-02-01")
	s.RemoveFromAvailable("2024-02-01")
	s.RemoveFromExcluded("2024-02-02")
	s.RemoveFromExcluded("2024-02-02")

	assert.Equal(t, 0, s.Available.Len())
	assert.Equal(t, 0, s.Excluded.Len())
}
