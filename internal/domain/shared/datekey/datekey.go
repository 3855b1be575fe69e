package datekey

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical textual form of a calendar day.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("datekey: invalid calendar date")

// DateKey identifies a calendar day by its canonical YYYY-MM-DD text.
// The layout is fixed-width and zero-padded, so lexical order on the
// string matches calendar order and no time.Time values ever need to be
// compared across time zones.
type DateKey string

// Parse accepts only the canonical YYYY-MM-DD form. Timestamps,
// malformed strings and out-of-range month/day components are rejected.
func Parse(text string) (DateKey, error) {
	t, err := time.Parse(Layout, text)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	if t.Format(Layout) != text {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return DateKey(text), nil
}

// ParseLoose tolerates a full ISO-8601 timestamp by truncating it to the
// date portion. Used at the read boundary where order records may carry
// either form.
func ParseLoose(text string) (DateKey, error) {
	text = strings.TrimSpace(text)
	if idx := strings.IndexAny(text, "T "); idx > 0 {
		text = text[:idx]
	}
	return Parse(text)
}

// FromCalendarDate builds a key from integer components, normalized to
// the canonical form. Out-of-range components roll over the way
// time.Date does, which is what month-grid iteration relies on.
func FromCalendarDate(year int, month time.Month, day int) DateKey {
	return DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(Layout))
}

// FromTime truncates a timestamp to its calendar day in the timestamp's
// own location.
func FromTime(t time.Time) DateKey {
	return DateKey(t.Format(Layout))
}

// Today returns the current date in the system's local calendar.
func Today() DateKey {
	return FromTime(time.Now())
}

// Compare reports -1, 0 or 1. Lexical comparison is sufficient because
// the canonical form is fixed-width.
func Compare(a, b DateKey) int {
	return strings.Compare(string(a), string(b))
}

func (d DateKey) Before(other DateKey) bool { return d < other }

func (d DateKey) After(other DateKey) bool { return d > other }

// Next returns the following calendar day.
func (d DateKey) Next() DateKey {
	return FromTime(d.Time().AddDate(0, 0, 1))
}

// Time converts the key back to midnight UTC, for arithmetic only.
func (d DateKey) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d DateKey) String() string { return string(d) }
