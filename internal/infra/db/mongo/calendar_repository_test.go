package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
)

func TestCalendarDocumentRoundTrip(t *testing.T) {
	cal := domainavailability.NewCalendar(domaincatalog.GarmentID("grm-1"))
	cal.Snapshot.Available.Add("2026-09-12")
	cal.Snapshot.Available.Add("2026-09-10")
	cal.Snapshot.Excluded.Add("2026-09-11")
	cal.Version = 3

	doc := newCalendarDocument(cal)
	assert.Equal(t, "grm-1", doc.ID)
	assert.Equal(t, []string{"2026-09-10", "2026-09-12"}, doc.AvailableDates)
	assert.Equal(t, []string{"2026-09-11"}, doc.ExcludedDates)

	restored, err := doc.toAggregate()
	require.NoError(t, err)
	assert.Equal(t, cal.GarmentID, restored.GarmentID)
	assert.True(t, restored.Snapshot.Available.Equal(cal.Snapshot.Available))
	assert.True(t, restored.Snapshot.Excluded.Equal(cal.Snapshot.Excluded))
	assert.Zero(t, restored.Snapshot.Booked.Len())
	assert.Equal(t, int64(3), restored.Version)
}

func TestCalendarDocumentRejectsCorruptDates(t *testing.T) {
	doc := calendarDocument{
		ID:             "grm-1",
		AvailableDates: []string{"2026-09-10", "2026-9-11"},
	}
	_, err := doc.toAggregate()
	require.ErrorIs(t, err, datekey.ErrInvalidDate)

	doc = calendarDocument{
		ID:            "grm-1",
		ExcludedDates: []string{"not-a-date"},
	}
	_, err = doc.toAggregate()
	require.ErrorIs(t, err, datekey.ErrInvalidDate)
}

func TestGarmentDocumentRoundTrip(t *testing.T) {
	g := &domaincatalog.Garment{
		ID:             "grm-2",
		Title:          "Wool Coat",
		Category:       "outerwear",
		Sizes:          []string{"M", "L"},
		DailyRateCents: 4200,
		State:          domaincatalog.GarmentActive,
		Version:        7,
	}
	doc := newGarmentDocument(g)
	restored := doc.toAggregate()
	assert.Equal(t, g.ID, restored.ID)
	assert.Equal(t, g.Title, restored.Title)
	assert.Equal(t, g.Sizes, restored.Sizes)
	assert.Equal(t, g.State, restored.State)
	assert.Equal(t, g.Version, restored.Version)
}
