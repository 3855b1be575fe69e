package availability

import (
	"context"
	"time"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/events"
)

// ProductCalendar is the availability aggregate for one garment. The
// snapshot inside is a plain value; this wrapper adds identity, the
// optimistic version and domain event recording.
type ProductCalendar struct {
	GarmentID catalog.GarmentID
	Snapshot  Snapshot
	Version   int64
	events.EventRecorder
}

// Repository loads and stores calendars. Loading re-derives the booked
// set from live order data; saving persists available and excluded
// only, since booked is a view over orders, never product state.
type Repository interface {
	Calendar(ctx context.Context, id catalog.GarmentID) (*ProductCalendar, error)
	Save(ctx context.Context, cal *ProductCalendar) error
}

func NewCalendar(id catalog.GarmentID) *ProductCalendar {
	return &ProductCalendar{GarmentID: id, Snapshot: NewSnapshot()}
}

// ToggleDate applies a single-date admin transition.
func (c *ProductCalendar) ToggleDate(d, today datekey.DateKey, now time.Time) (DateStatus, error) {
	status, err := c.Snapshot.Toggle(d, today)
	if err != nil {
		return status, err
	}
	switch status {
	case StatusAvailable:
		c.Record(DateOpenedEvent{GarmentID: string(c.GarmentID), Date: string(d), At: now.UTC()})
	case StatusExcluded:
		c.Record(DateExcludedEvent{GarmentID: string(c.GarmentID), Date: string(d), At: now.UTC()})
	}
	return status, nil
}

// GenerateRange bulk-opens a date range, skipping excluded days.
func (c *ProductCalendar) GenerateRange(r daterange.DateRange, now time.Time) ([]datekey.DateKey, error) {
	added, err := c.Snapshot.ApplyAvailableRange(r)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		c.Record(RangeGeneratedEvent{
			GarmentID: string(c.GarmentID),
			Start:     string(r.Start),
			End:       string(r.End),
			Added:     len(added),
			At:        now.UTC(),
		})
	}
	return added, nil
}

// ExcludeDate withholds a single date inside a generated range.
func (c *ProductCalendar) ExcludeDate(d datekey.DateKey, r daterange.DateRange, now time.Time) error {
	if err := c.Snapshot.ExcludeDateWithinRange(d, r); err != nil {
		return err
	}
	c.Record(DateExcludedEvent{GarmentID: string(c.GarmentID), Date: string(d), At: now.UTC()})
	return nil
}

// ApplyBooked reconciles the snapshot against a freshly derived booked
// set, recording an event when the reconciliation changed anything.
func (c *ProductCalendar) ApplyBooked(booked datekey.DateSet, now time.Time) {
	reconciled := Reconcile(c.Snapshot, booked)
	changed := !c.Snapshot.Booked.Equal(reconciled.Booked) ||
		c.Snapshot.Available.Len() != reconciled.Available.Len() ||
		c.Snapshot.Excluded.Len() != reconciled.Excluded.Len()
	c.Snapshot = reconciled
	if changed {
		c.Record(CalendarReconciledEvent{
			GarmentID:  string(c.GarmentID),
			BookedDays: booked.Len(),
			At:         now.UTC(),
		})
	}
}
