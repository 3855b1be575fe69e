package orders

import (
	"context"

	"rentwear/internal/domain/catalog"
)

type OrderID string

// BookedRange is the date span of one confirmed order as stored by the
// checkout service. Start and end are raw strings because the order
// store mixes plain dates with full timestamps; the availability
// resolver normalizes them.
type BookedRange struct {
	OrderID   OrderID
	StartDate string
	EndDate   string
}

// Repository reads confirmed orders. The order book is owned by
// checkout; this side never writes to it.
type Repository interface {
	ConfirmedRanges(ctx context.Context, id catalog.GarmentID) ([]BookedRange, error)
}
