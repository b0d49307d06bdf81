package week

import (
	"fmt"
	"time"
)

// keyLayout is the wire format of a week key: the Monday of the week.
const keyLayout = "2006-01-02"

// Key identifies a calendar week by its Monday. Every date within a week
// maps to the same Key, which is what lets daily leave entries and weekly
// allocation rows be joined without date arithmetic at the call sites.
type Key struct {
	start time.Time
}

// FromDate returns the Key of the week containing date. The normalization
// is total and idempotent: any day of the week, any time of day, and any
// timezone offset inside the date produce the same Key.
func FromDate(date time.Time) Key {
	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	delta := (int(midnight.Weekday()) + 6) % 7 // Monday = 0
	return Key{start: midnight.AddDate(0, 0, -delta)}
}

// FromString parses a "YYYY-MM-DD" week key. The date is normalized to the
// Monday of its week, so callers may pass any day of the week.
func FromString(s string) (Key, error) {
	date, err := time.Parse(keyLayout, s)
	if err != nil {
		return Key{}, fmt.Errorf("invalid week key %q: %w", s, err)
	}
	return FromDate(date), nil
}

// Start returns the Monday of the week at midnight UTC.
func (k Key) Start() time.Time {
	return k.start
}

// End returns the Sunday of the week at midnight UTC.
func (k Key) End() time.Time {
	return k.start.AddDate(0, 0, 6)
}

// AddWeeks returns the Key n weeks after k (n may be negative).
func (k Key) AddWeeks(n int) Key {
	return Key{start: k.start.AddDate(0, 0, 7*n)}
}

// Next returns the Key of the following week.
func (k Key) Next() Key {
	return k.AddWeeks(1)
}

// Equal reports whether both keys identify the same week.
func (k Key) Equal(other Key) bool {
	return k.start.Equal(other.start)
}

// Before reports whether k identifies an earlier week than other.
func (k Key) Before(other Key) bool {
	return k.start.Before(other.start)
}

// After reports whether k identifies a later week than other.
func (k Key) After(other Key) bool {
	return k.start.After(other.start)
}

// String returns the canonical "YYYY-MM-DD" form of the week's Monday.
func (k Key) String() string {
	return k.start.Format(keyLayout)
}

// Range returns the keys of weeks consecutive weeks starting at the week
// containing start.
func Range(start time.Time, weeks int) []Key {
	if weeks <= 0 {
		return nil
	}
	keys := make([]Key, 0, weeks)
	key := FromDate(start)
	for i := 0; i < weeks; i++ {
		keys = append(keys, key)
		key = key.Next()
	}
	return keys
}

// Span returns every week key from the week containing from up to and
// including the week containing to. An inverted span yields nil.
func Span(from time.Time, to time.Time) []Key {
	first := FromDate(from)
	last := FromDate(to)
	if last.Before(first) {
		return nil
	}
	var keys []Key
	for key := first; !key.After(last); key = key.Next() {
		keys = append(keys, key)
	}
	return keys
}
