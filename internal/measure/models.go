package measure

import "yellowduck-gpx/gpx"

// Report is a distance together with its derived unit views.
type Report struct {
	Distance    gpx.Distance `json:"distance_m"`
	Kilometers  float64      `json:"kilometers"`
	Miles       float64      `json:"miles"`
	FormattedKm string       `json:"formatted_km"`
	FormattedMi string       `json:"formatted_mi"`
}

type PairRequest struct {
	From gpx.TrackPoint `json:"from" yaml:"from"`
	To   gpx.TrackPoint `json:"to" yaml:"to"`
}

type NearestRequest struct {
	From      gpx.TrackPoint `json:"from" yaml:"from"`
	Waypoints []gpx.Waypoint `json:"waypoints" yaml:"waypoints"`
}

type NearestReport struct {
	Waypoint gpx.Waypoint `json:"waypoint"`
	Report
}

type SegmentReport struct {
	Points         int     `json:"points"`
	DurationSec    *int64  `json:"duration_sec,omitempty"`
	ElevationGainM float64 `json:"elevation_gain_m"`
	Report
}

type TrackReport struct {
	Name           string          `json:"name,omitempty"`
	Segments       []SegmentReport `json:"segments"`
	DurationSec    *int64          `json:"duration_sec,omitempty"`
	ElevationGainM float64         `json:"elevation_gain_m"`
	Bounds         *gpx.Bounds     `json:"bounds,omitempty"`
	Report
}

type RouteReport struct {
	Name   string      `json:"name,omitempty"`
	Points int         `json:"points"`
	Bounds *gpx.Bounds `json:"bounds,omitempty"`
	Report
}

type DocumentReport struct {
	Tracks    []TrackReport `json:"tracks"`
	Routes    []RouteReport `json:"routes"`
	Waypoints int           `json:"waypoints"`
	Report
}
