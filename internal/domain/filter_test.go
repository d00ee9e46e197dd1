package domain

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func magnitudes(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Magnitude
	}
	return out
}

func TestQualifying(t *testing.T) {
	records := []Record{
		{Timestamp: "a", Magnitude: 0.4},
		{Timestamp: "b", Magnitude: 0},
		{Timestamp: "c", Magnitude: -0.5},
		{Timestamp: "d", Magnitude: 6.1},
	}

	got := Qualifying(records)
	assert.Equal(t, []float64{0.4, 6.1}, magnitudes(got))
	assert.Equal(t, "a", got[0].Timestamp)
	assert.Equal(t, "d", got[1].Timestamp)
	for _, r := range got {
		assert.Greater(t, r.Magnitude, 0.0)
	}
}

func TestQualifying_AllInvalid(t *testing.T) {
	feed, err := ParseFeed(strings.NewReader(testHeader +
		"2024-01-01T00:00:00Z,10,20,0,bad,md\n" +
		"2024-01-02T00:00:00Z,11,21,0,,md\n"))
	require.NoError(t, err)

	got := Qualifying(feed.Records)
	assert.Empty(t, got)

	_, _, err = DateRange(got)
	require.ErrorIs(t, err, ErrNoEvents)
}

func TestSortByMagnitude(t *testing.T) {
	records := []Record{
		{Timestamp: "1", Magnitude: 2.5},
		{Timestamp: "2", Magnitude: 4.0},
		{Timestamp: "3", Magnitude: 2.5},
		{Timestamp: "4", Magnitude: 0.7},
		{Timestamp: "5", Magnitude: 5.5},
	}
	original := append([]Record(nil), records...)

	sorted := SortByMagnitude(records)
	assert.Equal(t, []float64{5.5, 4.0, 2.5, 2.5, 0.7}, magnitudes(sorted))
	assert.Equal(t, "1", sorted[2].Timestamp, "equal magnitudes keep feed order")
	assert.Equal(t, "3", sorted[3].Timestamp)

	if diff := cmp.Diff(original, records); diff != "" {
		t.Fatalf("input was modified (-want +got):\n%s", diff)
	}

	twice := SortByMagnitude(sorted)
	if diff := cmp.Diff(sorted, twice); diff != "" {
		t.Fatalf("sort is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestDateRange(t *testing.T) {
	records := []Record{
		{Timestamp: "2024-01-01T00:00:00Z", Magnitude: 0.4},
		{Timestamp: "2024-01-03T00:00:00Z", Magnitude: 6.1},
	}

	start, end, err := DateRange(records)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", start)
	assert.Equal(t, "2024-01-01", end)

	// Sorting must not be allowed to change the labels, so callers pass the
	// unsorted sequence; check the sorted one really would differ.
	sortedStart, sortedEnd, err := DateRange(SortByMagnitude(records))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", sortedStart)
	assert.Equal(t, "2024-01-03", sortedEnd)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Earthquakes 2024-01-03 to 2024-01-01", Title("2024-01-03", "2024-01-01"))
}

func TestScenario_FeedToMarkers(t *testing.T) {
	body := testHeader +
		"2024-01-01T00:00:00Z,10,20,0,0.4,md\n" +
		"2024-01-02T00:00:00Z,11,21,0,bad,md\n" +
		"2024-01-03T00:00:00Z,12,22,0,6.1,mww\n"

	feed, err := ParseFeed(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0, 6.1}, magnitudes(feed.Records))

	qualifying := Qualifying(feed.Records)
	assert.Equal(t, []float64{0.4, 6.1}, magnitudes(qualifying))

	start, end, err := DateRange(qualifying)
	require.NoError(t, err)
	assert.Equal(t, "Earthquakes 2024-01-03 to 2024-01-01", Title(start, end))

	sorted := SortByMagnitude(qualifying)
	assert.Equal(t, []float64{6.1, 0.4}, magnitudes(sorted))

	first, second := MarkerFor(sorted[0].Magnitude), MarkerFor(sorted[1].Magnitude)
	assert.Equal(t, MarkerRed, first.Color)
	assert.InDelta(t, 15.25, first.Size, 1e-9)
	assert.Equal(t, MarkerBlue, second.Color)
	assert.InDelta(t, 1.0, second.Size, 1e-9)
}
