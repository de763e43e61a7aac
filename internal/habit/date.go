package habit

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// Date is a timezone-naive calendar day. Completions are always recorded
// against the local wall-clock day, never a full timestamp, so day-boundary
// comparisons can't shift under DST or UTC offsets.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.time().Format(dateFormat)
}

// time maps d to midnight UTC, used only for arithmetic. UTC is safe here
// because the value never travels back through a local clock.
func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// WeekdayIndex returns the Monday-based weekday: Monday=0 .. Sunday=6.
func (d Date) WeekdayIndex() int {
	wd := d.time().Weekday()
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
