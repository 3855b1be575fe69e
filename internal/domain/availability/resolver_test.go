package availability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentwear/internal/domain/orders"
	"rentwear/internal/domain/shared/datekey"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDeriveBooked(t *testing.T) {
	spans := []orders.BookedRange{
		{OrderID: "ord-1", StartDate: "2024-03-10", EndDate: "2024-03-12"},
		{OrderID: "ord-2", StartDate: "2024-03-11T14:00:00Z", EndDate: "2024-03-13T10:00:00Z"},
	}
	booked := DeriveBooked(spans, discardLogger())
	assert.True(t, booked.Equal(datekey.NewSet(
		"2024-03-10", "2024-03-11", "2024-03-12", "2024-03-13",
	)))
}

func TestDeriveBookedSkipsCorruptSpans(t *testing.T) {
	spans := []orders.BookedRange{
		{OrderID: "ord-1", StartDate: "2024-03-12", EndDate: "2024-03-10"}, // inverted
		{OrderID: "ord-2", StartDate: "bogus", EndDate: "2024-03-10"},
		{OrderID: "ord-3", StartDate: "2024-03-20", EndDate: "2024-03-21"},
	}
	booked := DeriveBooked(spans, discardLogger())
	assert.True(t, booked.Equal(datekey.NewSet("2024-03-20", "2024-03-21")))
}

func TestReconcileBookedWins(t *testing.T) {
	// Scenario: order 03-10..03-12 confirmed while 03-11 was still open.
	s := NewSnapshot()
	s.Available.Add("2024-03-11")

	booked := DeriveBooked([]orders.BookedRange{
		{OrderID: "ord-1", StartDate: "2024-03-10", EndDate: "2024-03-12"},
	}, discardLogger())

	got := Reconcile(s, booked)
	assert.True(t, got.Booked.Equal(datekey.NewSet("2024-03-10", "2024-03-11", "2024-03-12")))
	assert.Equal(t, 0, got.Available.Len())
	// original snapshot untouched
	assert.True(t, s.Available.Contains("2024-03-11"))
}

func TestReconcileIdempotent(t *testing.T) {
	s := NewSnapshot()
	s.Available.Add("2024-03-11")
	s.Excluded.Add("2024-03-12")
	booked := datekey.NewSet("2024-03-11", "2024-03-12", "2024-03-13")

	once := Reconcile(s, booked)
	twice := Reconcile(once, booked)

	assert.True(t, once.Available.Equal(twice.Available))
	assert.True(t, once.Excluded.Equal(twice.Excluded))
	assert.True(t, once.Booked.Equal(twice.Booked))
}

func TestApplyBookedRecordsEventOnChange(t *testing.T) {
	cal := NewCalendar("g-1")
	cal.Snapshot.Available.Add("2024-03-11")

	booked := datekey.NewSet("2024-03-11")
	cal.ApplyBooked(booked, testNow)
	assert.Len(t, cal.PendingEvents(), 1)

	cal.ClearEvents()
	cal.ApplyBooked(booked, testNow)
	assert.Empty(t, cal.PendingEvents())
}
