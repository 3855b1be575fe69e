package daterange

import (
	"errors"

	"rentwear/internal/domain/shared/datekey"
)

var ErrInvalidRange = errors.New("daterange: end must not be before start")

// DateRange is a closed interval [Start, End] of calendar days. Rentals
// are charged per day, so both endpoints are rentable.
type DateRange struct {
	Start datekey.DateKey
	End   datekey.DateKey
}

func New(start, end datekey.DateKey) (DateRange, error) {
	dr := DateRange{Start: start, End: end}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Start == "" || dr.End == "" {
		return ErrInvalidRange
	}
	if dr.End.Before(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

// DayCount is the number of days in the interval, endpoints included.
func (dr DateRange) DayCount() int {
	return int(dr.End.Time().Sub(dr.Start.Time()).Hours()/24) + 1
}

// Days expands the range into every day from Start to End inclusive, in
// ascending order.
func (dr DateRange) Days() []datekey.DateKey {
	if dr.Validate() != nil {
		return nil
	}
	out := make([]datekey.DateKey, 0, dr.DayCount())
	for d := dr.Start; !d.After(dr.End); d = d.Next() {
		out = append(out, d)
	}
	return out
}

func (dr DateRange) ContainsDate(d datekey.DateKey) bool {
	return !d.Before(dr.Start) && !d.After(dr.End)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.Start.After(other.End) && !other.Start.After(dr.End)
}
