package availability

import (
	"errors"

	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/domain/shared/daterange"
)

var (
	ErrBookedDateImmutable = errors.New("availability: booked dates cannot be edited")
	ErrPastDateImmutable   = errors.New("availability: past dates cannot be edited")
	ErrOutOfRange          = errors.New("availability: date falls outside the generated range")
	ErrAlreadyExcluded     = errors.New("availability: date is already excluded")
	ErrEmptyAvailability   = errors.New("availability: at least one offerable date is required")
)

// DateStatus classifies a single calendar day for one garment.
type DateStatus string

const (
	StatusBooked    DateStatus = "BOOKED"
	StatusExcluded  DateStatus = "EXCLUDED"
	StatusAvailable DateStatus = "AVAILABLE"
	StatusPast      DateStatus = "PAST"
	StatusDefault   DateStatus = "DEFAULT"
)

// Snapshot holds the three date sets for one garment. Available and
// Excluded are admin-controlled; Booked is derived from confirmed
// orders and never edited by hand. Invariants after every mutation:
// Available, Excluded and Booked are pairwise disjoint.
type Snapshot struct {
	Available datekey.DateSet
	Excluded  datekey.DateSet
	Booked    datekey.DateSet
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Available: datekey.NewSet(),
		Excluded:  datekey.NewSet(),
		Booked:    datekey.NewSet(),
	}
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Available: s.Available.Clone(),
		Excluded:  s.Excluded.Clone(),
		Booked:    s.Booked.Clone(),
	}
}

// Status classifies a date by priority: booked wins over excluded wins
// over available; anything else is past or default.
func (s Snapshot) Status(d, today datekey.DateKey) DateStatus {
	switch {
	case s.Booked.Contains(d):
		return StatusBooked
	case s.Excluded.Contains(d):
		return StatusExcluded
	case s.Available.Contains(d):
		return StatusAvailable
	case d.Before(today):
		return StatusPast
	default:
		return StatusDefault
	}
}

// Toggle applies the single-date transition an admin click requests and
// returns the resulting status. Booked and past dates are immutable.
func (s *Snapshot) Toggle(d, today datekey.DateKey) (DateStatus, error) {
	switch s.Status(d, today) {
	case StatusBooked:
		return StatusBooked, ErrBookedDateImmutable
	case StatusPast:
		return StatusPast, ErrPastDateImmutable
	case StatusAvailable:
		s.Available.Remove(d)
		s.Excluded.Add(d)
		return StatusExcluded, nil
	case StatusExcluded:
		s.Excluded.Remove(d)
		s.Available.Add(d)
		return StatusAvailable, nil
	default:
		s.Available.Add(d)
		return StatusAvailable, nil
	}
}

// ApplyAvailableRange opens every day of the range that is not already
// excluded or available. Exclusion wins over bulk-add so an admin can
// pre-exclude a date before generating the surrounding range. Returns
// the dates actually inserted.
func (s *Snapshot) ApplyAvailableRange(r daterange.DateRange) ([]datekey.DateKey, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	var added []datekey.DateKey
	for _, d := range r.Days() {
		if s.Excluded.Contains(d) || s.Available.Contains(d) || s.Booked.Contains(d) {
			continue
		}
		s.Available.Add(d)
		added = append(added, d)
	}
	return added, nil
}

// ExcludeDateWithinRange withholds a single date inside a generated
// range, removing it from the available set if present.
func (s *Snapshot) ExcludeDateWithinRange(d datekey.DateKey, r daterange.DateRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.ContainsDate(d) {
		return ErrOutOfRange
	}
	if s.Excluded.Contains(d) {
		return ErrAlreadyExcluded
	}
	if s.Booked.Contains(d) {
		return ErrBookedDateImmutable
	}
	s.Excluded.Add(d)
	s.Available.Remove(d)
	return nil
}

// RemoveFromAvailable retracts an open date. Idempotent.
func (s *Snapshot) RemoveFromAvailable(d datekey.DateKey) {
	s.Available.Remove(d)
}

// RemoveFromExcluded retracts an exclusion. Idempotent.
func (s *Snapshot) RemoveFromExcluded(d datekey.DateKey) {
	s.Excluded.Remove(d)
}
