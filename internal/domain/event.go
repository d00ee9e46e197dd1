package domain

// dateLen is the length of the YYYY-MM-DD prefix of a feed timestamp.
const dateLen = 10

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Record is one parsed earthquake event.
type Record struct {
	Timestamp string  `json:"time"`
	Geo       Geo     `json:"geo"`
	Magnitude float64 `json:"mag"`
}

// Date returns the date portion of the timestamp.
func (r Record) Date() string {
	if len(r.Timestamp) < dateLen {
		return r.Timestamp
	}
	return r.Timestamp[:dateLen]
}

// Feed is the result of parsing one CSV download.
type Feed struct {
	Records []Record

	// InvalidMagnitudes counts rows whose magnitude failed to parse and was
	// replaced with 0.
	InvalidMagnitudes int
}

// Polyline is an ordered run of coordinates drawn as connected segments.
type Polyline []Geo

// Closed reports whether the first and last vertices coincide.
func (p Polyline) Closed() bool {
	return len(p) > 2 && p[0] == p[len(p)-1]
}

// Basemap holds the static line layers drawn beneath the markers.
type Basemap struct {
	Coastlines []Polyline
	Borders    []Polyline
}
