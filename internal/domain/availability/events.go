package availability

import "time"

type DateOpenedEvent struct {
	GarmentID string
	Date      string
	At        time.Time
}

func (e DateOpenedEvent) EventName() string     { return "availability.date_opened" }
func (e DateOpenedEvent) AggregateID() string   { return e.GarmentID }
func (e DateOpenedEvent) OccurredAt() time.Time { return e.At }

type DateExcludedEvent struct {
	GarmentID string
	Date      string
	At        time.Time
}

func (e DateExcludedEvent) EventName() string     { return "availability.date_excluded" }
func (e DateExcludedEvent) AggregateID() string   { return e.GarmentID }
func (e DateExcludedEvent) OccurredAt() time.Time { return e.At }

type RangeGeneratedEvent struct {
	GarmentID string
	Start     string
	End       string
	Added     int
	At        time.Time
}

func (e RangeGeneratedEvent) EventName() string     { return "availability.range_generated" }
func (e RangeGeneratedEvent) AggregateID() string   { return e.GarmentID }
func (e RangeGeneratedEvent) OccurredAt() time.Time { return e.At }

type CalendarReconciledEvent struct {
	GarmentID  string
	BookedDays int
	At         time.Time
}

func (e CalendarReconciledEvent) EventName() string     { return "availability.calendar_reconciled" }
func (e CalendarReconciledEvent) AggregateID() string   { return e.GarmentID }
func (e CalendarReconciledEvent) OccurredAt() time.Time { return e.At }
