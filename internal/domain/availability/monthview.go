package availability

import (
	"time"

	"rentwear/internal/domain/shared/datekey"
)

// Cell is one slot of a rendered month grid. Date is nil for the
// leading/trailing blanks that pad the first and last week.
type Cell struct {
	Date  *datekey.DateKey
	State DateStatus
}

type Week [7]Cell

// MonthGrid is the renderable month: rows of seven cells, Sunday first,
// matching the storefront calendar widget.
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks []Week
}

// RenderMonth lays the month out as weeks of seven cells and classifies
// every real day against the snapshot. Pure: the caller supplies today
// so rendering stays deterministic in tests.
func RenderMonth(year int, month time.Month, snap Snapshot, today datekey.DateKey) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	grid := MonthGrid{Year: year, Month: month}
	var week Week
	slot := lead
	for day := 1; day <= daysInMonth; day++ {
		d := datekey.FromCalendarDate(year, month, day)
		week[slot] = Cell{Date: &d, State: snap.Status(d, today)}
		slot++
		if slot == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = Week{}
			slot = 0
		}
	}
	if slot != 0 {
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// TransitionRequest is the state change a cell click asks for. The
// caller applies it through the snapshot; rendering never mutates.
type TransitionRequest struct {
	Date datekey.DateKey
	From DateStatus
	To   DateStatus
}

// CellClick translates an admin click on a rendered cell into a
// transition request. Clicks on booked or past days are rejected with
// the matching sentinel; the UI surfaces those as no-ops.
func CellClick(d datekey.DateKey, state DateStatus) (TransitionRequest, error) {
	switch state {
	case StatusBooked:
		return TransitionRequest{}, ErrBookedDateImmutable
	case StatusPast:
		return TransitionRequest{}, ErrPastDateImmutable
	case StatusAvailable:
		return TransitionRequest{Date: d, From: state, To: StatusExcluded}, nil
	case StatusExcluded:
		return TransitionRequest{Date: d, From: state, To: StatusAvailable}, nil
	default:
		return TransitionRequest{Date: d, From: StatusDefault, To: StatusAvailable}, nil
	}
}

// Navigator is the month the widget currently shows. Pure state; no
// clamping, so callers can walk arbitrarily far in either direction.
type Navigator struct {
	Year  int
	Month time.Month
}

func (n *Navigator) Next() {
	if n.Month == time.December {
		n.Month = time.January
		n.Year++
		return
	}
	n.Month++
}

func (n *Navigator) Previous() {
	if n.Month == time.January {
		n.Month = time.December
		n.Year--
		return
	}
	n.Month--
}
