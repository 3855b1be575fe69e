package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/domain/shared/datekey"
)

func TestRenderMonthShape(t *testing.T) {
	// February 2024: 29 days, the 1st is a Thursday (weekday 4).
	grid := RenderMonth(2024, time.February, NewSnapshot(), today)

	require.Len(t, grid.Weeks, 5)
	for i := 0; i < 4; i++ {
		assert.Nil(t, grid.Weeks[0][i].Date, "leading blank %d", i)
	}
	require.NotNil(t, grid.Weeks[0][4].Date)
	assert.Equal(t, datekey.DateKey("2024-02-01"), *grid.Weeks[0][4].Date)

	// last real day is the 29th, a Thursday, then trailing blanks
	require.NotNil(t, grid.Weeks[4][4].Date)
	assert.Equal(t, datekey.DateKey("2024-02-29"), *grid.Weeks[4][4].Date)
	assert.Nil(t, grid.Weeks[4][5].Date)
	assert.Nil(t, grid.Weeks[4][6].Date)

	var days int
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Date != nil {
				days++
			}
		}
	}
	assert.Equal(t, 29, days)
}

func TestRenderMonthStates(t *testing.T) {
	snap := NewSnapshot()
	snap.Available.Add("2024-02-10")
	snap.Excluded.Add("2024-02-11")
	snap.Booked.Add("2024-02-12")

	grid := RenderMonth(2024, time.February, snap, datekey.DateKey("2024-02-05"))

	states := map[datekey.DateKey]DateStatus{}
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Date != nil {
				states[*cell.Date] = cell.State
			}
		}
	}
	assert.Equal(t, StatusAvailable, states["2024-02-10"])
	assert.Equal(t, StatusExcluded, states["2024-02-11"])
	assert.Equal(t, StatusBooked, states["2024-02-12"])
	assert.Equal(t, StatusPast, states["2024-02-01"])
	assert.Equal(t, StatusDefault, states["2024-02-20"])
}

func TestCellClick(t *testing.T) {
	req, err := CellClick("2024-02-10", StatusDefault)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, req.To)

	req, err = CellClick("2024-02-10", StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, StatusExcluded, req.To)

	req, err = CellClick("2024-02-10", StatusExcluded)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, req.To)

	_, err = CellClick("2024-02-10", StatusBooked)
	assert.ErrorIs(t, err, ErrBookedDateImmutable)

	_, err = CellClick("2024-02-10", StatusPast)
	assert.ErrorIs(t, err, ErrPastDateImmutable)
}

func TestNavigatorWrapsYears(t *testing.T) {
	n := Navigator{Year: 2024, Month: time.December}
	n.Next()
	assert.Equal(t, 2025, n.Year)
	assert.Equal(t, time.January, n.Month)

	n.Previous()
	assert.Equal(t, 2024, n.Year)
	assert.Equal(t, time.December, n.Month)

	n = Navigator{Year: 2024, Month: time.June}
	n.Next()
	assert.Equal(t, time.July, n.Month)
	assert.Equal(t, 2024, n.Year)
}
