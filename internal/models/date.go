package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only wire and storage form of a civil date.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time of day and no zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts exactly YYYY-MM-DD and rejects impossible dates.
func ParseDate(raw string) (Date, error) {
	if len(raw) != len(DateLayout) {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// NormalizeDate accepts YYYY-MM-DD or an RFC 3339 timestamp. For a timestamp the
// leading date text is kept as written; the offset is ignored.
func NormalizeDate(raw string) (Date, error) {
	value := strings.TrimSpace(raw)
	if len(value) == len(DateLayout) {
		return ParseDate(value)
	}
	if _, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ParseDate(value[:len(DateLayout)])
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := NormalizeDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
