package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the stored text form of every task timestamp. Its first
// ten characters are the ISO date in the timestamp's own location, which is
// what date filtering matches on.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const DateLayout = "2006-01-02"

// Layouts without a zone are read in the local zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp reads the stored form back to the same instant. It also
// accepts RFC 3339 input and zone-less values typed by hand.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	return t, nil
}
