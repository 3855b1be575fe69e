package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/domain/shared/daterange"
)

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func TestCalendarToggleRecordsEvents(t *testing.T) {
	cal := NewCalendar("g-1")

	status, err := cal.ToggleDate("2024-01-20", today, testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, status)

	status, err = cal.ToggleDate("2024-01-20", today, testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusExcluded, status)

	evs := cal.PendingEvents()
	require.Len(t, evs, 2)
	assert.Equal(t, "availability.date_opened", evs[0].EventName())
	assert.Equal(t, "availability.date_excluded", evs[1].EventName())
	assert.Equal(t, "g-1", evs[0].AggregateID())
}

func TestCalendarToggleRejectionRecordsNothing(t *testing.T) {
	cal := NewCalendar("g-1")
	cal.Snapshot.Booked.Add("2024-01-20")

	_, err := cal.ToggleDate("2024-01-20", today, testNow)
	require.ErrorIs(t, err, ErrBookedDateImmutable)
	assert.Empty(t, cal.PendingEvents())
}

func TestCalendarGenerateRange(t *testing.T) {
	cal := NewCalendar("g-1")
	r, err := daterange.New("2024-02-01", "2024-02-03")
	require.NoError(t, err)

	added, err := cal.GenerateRange(r, testNow)
	require.NoError(t, err)
	assert.Len(t, added, 3)

	evs := cal.PendingEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, "availability.range_generated", evs[0].EventName())

	// second run adds nothing and stays silent
	cal.ClearEvents()
	added, err = cal.GenerateRange(r, testNow)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Empty(t, cal.PendingEvents())
}

func TestCalendarExcludeDate(t *testing.T) {
	cal := NewCalendar("g-1")
	r, _ := daterange.New("2024-02-01", "2024-02-03")
	_, err := cal.GenerateRange(r, testNow)
	require.NoError(t, err)
	cal.ClearEvents()

	require.NoError(t, cal.ExcludeDate("2024-02-02", r, testNow))
	assert.True(t, cal.Snapshot.Excluded.Contains("2024-02-02"))

	evs := cal.PendingEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, "availability.date_excluded", evs[0].EventName())
}
