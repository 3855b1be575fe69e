package catalog

import "time"

type GarmentCreatedEvent struct {
	GarmentID string
	At        time.Time
}

func (e GarmentCreatedEvent) EventName() string     { return "catalog.garment_created" }
func (e GarmentCreatedEvent) AggregateID() string   { return e.GarmentID }
func (e GarmentCreatedEvent) OccurredAt() time.Time { return e.At }

type GarmentActivatedEvent struct {
	GarmentID string
	At        time.Time
}

func (e GarmentActivatedEvent) EventName() string     { return "catalog.garment_activated" }
func (e GarmentActivatedEvent) AggregateID() string   { return e.GarmentID }
func (e GarmentActivatedEvent) OccurredAt() time.Time { return e.At }

type GarmentRetiredEvent struct {
	GarmentID string
	At        time.Time
}

func (e GarmentRetiredEvent) EventName() string     { return "catalog.garment_retired" }
func (e GarmentRetiredEvent) AggregateID() string   { return e.GarmentID }
func (e GarmentRetiredEvent) OccurredAt() time.Time { return e.At }

type GarmentUpdatedEvent struct {
	GarmentID string
	At        time.Time
}

func (e GarmentUpdatedEvent) EventName() string     { return "catalog.garment_updated" }
func (e GarmentUpdatedEvent) AggregateID() string   { return e.GarmentID }
func (e GarmentUpdatedEvent) OccurredAt() time.Time { return e.At }
