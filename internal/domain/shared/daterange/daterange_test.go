package daterange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/domain/shared/datekey"
)

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := New("2024-02-05", "2024-02-01")
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = New("", "2024-02-01")
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestDaysExpansion(t *testing.T) {
	tests := []struct {
		name  string
		start datekey.DateKey
		end   datekey.DateKey
		count int
	}{
		{"single day", "2024-02-01", "2024-02-01", 1},
		{"plain span", "2024-02-01", "2024-02-05", 5},
		{"across leap day", "2024-02-27", "2024-03-02", 5},
		{"across year boundary", "2023-12-30", "2024-01-02", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.start, tt.end)
			require.NoError(t, err)

			days := r.Days()
			assert.Len(t, days, tt.count)
			assert.Equal(t, tt.count, r.DayCount())
			assert.Equal(t, tt.start, days[0])
			assert.Equal(t, tt.end, days[len(days)-1])
			for i := 1; i < len(days); i++ {
				assert.Equal(t, days[i-1].Next(), days[i], "gap or duplicate at %d", i)
			}
		})
	}
}

func TestContainsDate(t *testing.T) {
	r, err := New("2024-02-01", "2024-02-05")
	require.NoError(t, err)

	assert.True(t, r.ContainsDate("2024-02-01"))
	assert.True(t, r.ContainsDate("2024-02-05"))
	assert.True(t, r.ContainsDate("2024-02-03"))
	assert.False(t, r.ContainsDate("2024-01-31"))
	assert.False(t, r.ContainsDate("2024-02-06"))
}

func TestOverlaps(t *testing.T) {
	a, _ := New("2024-02-01", "2024-02-05")
	b, _ := New("2024-02-05", "2024-02-08")
	c, _ := New("2024-02-06", "2024-02-08")

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
}
