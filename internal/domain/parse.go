package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column positions in the USGS summary CSV.
const (
	colTime      = 0
	colLatitude  = 1
	colLongitude = 2
	colMagnitude = 4

	minColumns = colMagnitude + 1
)

// ErrEmptyFeed is returned when the feed has no header row.
var ErrEmptyFeed = errors.New("feed is empty")

// ParseFeed reads a USGS CSV feed. The header row is skipped unchecked.
// Coordinates must parse; magnitudes that don't are recorded as 0.
func ParseFeed(r io.Reader) (Feed, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return Feed{}, ErrEmptyFeed
		}
		return Feed{}, fmt.Errorf("read header: %w", err)
	}

	var feed Feed
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Feed{}, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rec, validMag, err := parseRow(row)
		if err != nil {
			return Feed{}, fmt.Errorf("line %d: %w", line, err)
		}
		if !validMag {
			feed.InvalidMagnitudes++
		}
		feed.Records = append(feed.Records, rec)
	}
	return feed, nil
}

// parseRow builds a Record from a CSV row. The bool result is false when the
// magnitude field could not be parsed and was replaced with 0.
func parseRow(row []string) (Record, bool, error) {
	if len(row) < minColumns {
		return Record{}, false, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}

	lat, err := parseFloat(row[colLatitude])
	if err != nil {
		return Record{}, false, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := parseFloat(row[colLongitude])
	if err != nil {
		return Record{}, false, fmt.Errorf("parse longitude: %w", err)
	}

	validMag := true
	mag, err := parseFloat(row[colMagnitude])
	if err != nil {
		mag = 0
		validMag = false
	}

	return Record{
		Timestamp: row[colTime],
		Geo:       Geo{Lat: lat, Lon: lon},
		Magnitude: mag,
	}, validMag, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
