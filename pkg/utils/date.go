package utils

import (
	"errors"
	"time"
)

// timestampLayouts are tried in order when reading struck-at values. The
// export tools in play disagree on formatting, so several layouts are
// accepted.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
}

var errUnparseableTimestamp = errors.New("unparseable timestamp")

// ParseTimestamp reads a record timestamp, trying the known layouts.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparseableTimestamp
}

// ParseInstant reads a filter bound from a request parameter: either a full
// date-time or a bare date.
func ParseInstant(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04:05", s)
	}
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}
