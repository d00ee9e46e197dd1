package domain

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrNoEvents is returned when no record survives filtering.
var ErrNoEvents = errors.New("no events with positive magnitude")

// Qualifying returns the records with a magnitude strictly greater than zero,
// preserving feed order.
func Qualifying(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Magnitude > 0 {
			out = append(out, r)
		}
	}
	return out
}

// SortByMagnitude returns a copy of records ordered strongest first.
// Equal magnitudes keep their relative order.
func SortByMagnitude(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		return cmp.Compare(b.Magnitude, a.Magnitude)
	})
	return out
}

// DateRange returns the dates of the last and first records, in that order.
// The feed lists newest events first, so this yields (oldest, newest) for an
// unsorted feed.
func DateRange(records []Record) (start, end string, err error) {
	if len(records) == 0 {
		return "", "", ErrNoEvents
	}
	return records[len(records)-1].Date(), records[0].Date(), nil
}

// Title formats the map title for a date range.
func Title(start, end string) string {
	return fmt.Sprintf("Earthquakes %s to %s", start, end)
}
