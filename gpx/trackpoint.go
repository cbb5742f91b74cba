package gpx

import (
	"time"

	"yellowduck-gpx/internal/shared/geo"
)

// TrackPoint is a single geodetic sample.
//
// Lat and Lon are in degrees, Ele in meters. Ele and Time are optional.
// No invariant ties the fields together and none of them is validated.
// A TrackPoint is not safe for concurrent mutation; callers that share one
// between goroutines must synchronize access themselves.
type TrackPoint struct {
	Lat  float64    `json:"lat" yaml:"lat"`
	Lon  float64    `json:"lon" yaml:"lon"`
	Ele  *float64   `json:"ele,omitempty" yaml:"ele,omitempty"`
	Time *time.Time `json:"time,omitempty" yaml:"time,omitempty"`
}

// PointOption sets an optional TrackPoint field.
type PointOption func(*TrackPoint)

// WithElevation sets the elevation in meters.
func WithElevation(ele float64) PointOption {
	return func(p *TrackPoint) {
		p.Ele = &ele
	}
}

// WithTime sets the timestamp.
func WithTime(t time.Time) PointOption {
	return func(p *TrackPoint) {
		p.Time = &t
	}
}

// NewTrackPoint returns a point at lat/lon. Elevation and time are unset
// unless given as options.
func NewTrackPoint(lat, lon float64, opts ...PointOption) TrackPoint {
	p := TrackPoint{Lat: lat, Lon: lon}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// DistanceTo returns the great-circle distance to other using the haversine
// formula on a sphere of radius 6,371,000 m. Elevation and time are ignored.
// Out of range or non-finite coordinates are not rejected; the result simply
// carries whatever the trigonometry yields, NaN included.
func (p TrackPoint) DistanceTo(other TrackPoint) Distance {
	return NewDistance(geo.Haversine(p.Lat, p.Lon, other.Lat, other.Lon))
}

// Clone returns a deep copy of p, so the copy shares no elevation or time
// storage with the original.
func (p TrackPoint) Clone() TrackPoint {
	c := TrackPoint{Lat: p.Lat, Lon: p.Lon}
	if p.Ele != nil {
		ele := *p.Ele
		c.Ele = &ele
	}
	if p.Time != nil {
		t := *p.Time
		c.Time = &t
	}
	return c
}
