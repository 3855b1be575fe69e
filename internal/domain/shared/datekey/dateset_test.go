package datekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOperations(t *testing.T) {
	a := NewSet("2024-01-01", "2024-01-02", "2024-01-03")
	b := NewSet("2024-01-03", "2024-01-04")

	union := Union(a, b)
	assert.Equal(t, 4, union.Len())
	assert.True(t, union.Contains("2024-01-04"))

	diff := Difference(a, b)
	assert.True(t, diff.Equal(NewSet("2024-01-01", "2024-01-02")))

	// inputs untouched
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestListSorted(t *testing.T) {
	s := NewSet("2024-03-01", "2023-12-31", "2024-01-15")
	got := s.List()
	want := []DateKey{"2023-12-31", "2024-01-15", "2024-03-01"}
	assert.Equal(t, want, got)
}

func TestParseListLenient(t *testing.T) {
	s, err := ParseList(" 2024-01-01, bogus ,2024-01-02,, 2024-13-40 ", ParseLenient)
	require.NoError(t, err)
	assert.True(t, s.Equal(NewSet("2024-01-01", "2024-01-02")))
}

func TestParseListStrict(t *testing.T) {
	_, err := ParseList("2024-01-01,bogus", ParseStrict)
	require.ErrorIs(t, err, ErrInvalidDate)

	s, err := ParseList("2024-01-01 , 2024-01-02", ParseStrict)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestFormatListRoundTrip(t *testing.T) {
	s := NewSet("2024-02-29", "2024-01-01", "2024-12-31")
	text := FormatList(s)
	assert.Equal(t, "2024-01-01,2024-02-29,2024-12-31", text)

	back, err := ParseList(text, ParseStrict)
	require.NoError(t, err)
	assert.True(t, back.Equal(s))
}

func TestFormatListEmpty(t *testing.T) {
	assert.Equal(t, "", FormatList(NewSet()))
}
