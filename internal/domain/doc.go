// Package domain models USGS earthquake feed data and the rules that turn it
// into map markers.
//
// # Data Source
//
// Events come from the USGS Earthquake Hazards Program summary feeds, e.g.
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/2.5_day.csv.
// The feed is regenerated every few minutes and lists the most recent events
// first.
//
// # Feed Conventions
//
// Column layout (only the first five columns are consulted):
//
//	time,latitude,longitude,depth,mag,magType,nst,gap,dmin,rms,net,id,...
//	2024-04-26T15:10:03.120Z,38.8,-122.8,2.1,2.6,md,...
//
// The header row is discarded without checking column names.
//
// Time format:
//
//	ISO-8601 UTC. Only the date portion (first 10 characters) is ever shown,
//	so the timestamp is kept as the raw string.
//
// Magnitude:
//
//	A decimal value on the magnitude scale named by magType. Empty or
//	malformed values become 0, which is indistinguishable from a reported
//	zero magnitude. Both are dropped by [Qualifying].
//
// Coordinates:
//
//	WGS-84 decimal degrees. Unlike magnitude, coordinates are required; a
//	malformed coordinate fails the whole parse.
//
// # Marker Classification
//
// Markers are sized at 2.5 points per unit of magnitude and colored by bucket:
//
//	m < 1.0 blue | m < 3.0 green | m < 5.0 yellow | m >= 5.0 red
//
// Records are drawn strongest first so smaller markers stay visible on top of
// the larger ones. See [MarkerFor] and [SortByMagnitude].
package domain
