package availability

import (
	"log/slog"

	"rentwear/internal/domain/orders"
	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/domain/shared/daterange"
)

// DeriveBooked expands every confirmed order span into individual days
// and unions the results. Overlapping orders collapse naturally in the
// set. A corrupt span (unparseable date, end before start) is logged
// and skipped so one bad order cannot hide the rest of the calendar.
func DeriveBooked(spans []orders.BookedRange, log *slog.Logger) datekey.DateSet {
	booked := datekey.NewSet()
	for _, span := range spans {
		start, err := datekey.ParseLoose(span.StartDate)
		if err != nil {
			warn(log, "order span has invalid start date", span, err)
			continue
		}
		end, err := datekey.ParseLoose(span.EndDate)
		if err != nil {
			warn(log, "order span has invalid end date", span, err)
			continue
		}
		r, err := daterange.New(start, end)
		if err != nil {
			warn(log, "order span is inverted", span, err)
			continue
		}
		for _, d := range r.Days() {
			booked.Add(d)
		}
	}
	return booked
}

// Reconcile returns a snapshot whose booked set is the derived one and
// whose available/excluded sets have every booked day subtracted. This
// restores the disjointness invariants even when stale persisted data
// overlaps a newly confirmed order.
func Reconcile(s Snapshot, booked datekey.DateSet) Snapshot {
	return Snapshot{
		Available: datekey.Difference(s.Available, booked),
		Excluded:  datekey.Difference(s.Excluded, booked),
		Booked:    booked.Clone(),
	}
}

func warn(log *slog.Logger, msg string, span orders.BookedRange, err error) {
	if log == nil {
		return
	}
	log.Warn(msg, "order_id", string(span.OrderID), "start", span.StartDate, "end", span.EndDate, "error", err)
}
