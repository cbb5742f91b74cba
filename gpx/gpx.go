// Package gpx models GPS Exchange Format data (waypoints, routes and tracks)
// and measures great-circle distances between its points.
//
// Reading and writing the GPX XML format is left to callers; this package
// only holds the in-memory model.
package gpx

import (
	"math"
	"time"
)

// Waypoint is a named point of interest.
type Waypoint struct {
	TrackPoint  `yaml:",inline"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"desc,omitempty" yaml:"desc,omitempty"`
	Symbol      string `json:"sym,omitempty" yaml:"sym,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Segment is a continuous, ordered run of track points.
type Segment struct {
	Points []TrackPoint `json:"points" yaml:"points"`
}

// Track is an ordered list of segments. Gaps between segments do not count
// towards its distance.
type Track struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string    `json:"type,omitempty" yaml:"type,omitempty"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Route is an ordered list of points leading to a destination.
type Route struct {
	Name   string       `json:"name,omitempty" yaml:"name,omitempty"`
	Points []TrackPoint `json:"points" yaml:"points"`
}

// Document is the root of a GPX file.
type Document struct {
	Creator   string     `json:"creator,omitempty" yaml:"creator,omitempty"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Waypoints []Waypoint `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
	Routes    []Route    `json:"routes,omitempty" yaml:"routes,omitempty"`
	Tracks    []Track    `json:"tracks,omitempty" yaml:"tracks,omitempty"`
}

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p TrackPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

func (b Bounds) extend(o Bounds) Bounds {
	return Bounds{
		MinLat: math.Min(b.MinLat, o.MinLat),
		MinLon: math.Min(b.MinLon, o.MinLon),
		MaxLat: math.Max(b.MaxLat, o.MaxLat),
		MaxLon: math.Max(b.MaxLon, o.MaxLon),
	}
}

// PathDistance sums the distances between consecutive points.
func PathDistance(points []TrackPoint) Distance {
	var total Distance
	for i := 1; i < len(points); i++ {
		total = total.Add(points[i-1].DistanceTo(points[i]))
	}
	return total
}

// PathBounds returns the bounding box of points; ok is false when empty.
func PathBounds(points []TrackPoint) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b = Bounds{MinLat: points[0].Lat, MinLon: points[0].Lon, MaxLat: points[0].Lat, MaxLon: points[0].Lon}
	for _, p := range points[1:] {
		b = b.extend(Bounds{MinLat: p.Lat, MinLon: p.Lon, MaxLat: p.Lat, MaxLon: p.Lon})
	}
	return b, true
}

// Distance returns the length of the segment.
func (s Segment) Distance() Distance {
	return PathDistance(s.Points)
}

// Duration returns the time between the first and the last point. ok is
// false when either of them has no timestamp.
func (s Segment) Duration() (d time.Duration, ok bool) {
	if len(s.Points) == 0 {
		return 0, false
	}
	first, last := s.Points[0].Time, s.Points[len(s.Points)-1].Time
	if first == nil || last == nil {
		return 0, false
	}
	return last.Sub(*first), true
}

// ElevationGain sums the climbs, in meters, between consecutive points that
// both carry an elevation.
func (s Segment) ElevationGain() float64 {
	gain := 0.0
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1].Ele, s.Points[i].Ele
		if prev == nil || cur == nil {
			continue
		}
		if *cur > *prev {
			gain += *cur - *prev
		}
	}
	return gain
}

// Bounds returns the bounding box of the segment.
func (s Segment) Bounds() (Bounds, bool) {
	return PathBounds(s.Points)
}

// Distance sums the length of all segments.
func (t Track) Distance() Distance {
	var total Distance
	for _, s := range t.Segments {
		total = total.Add(s.Distance())
	}
	return total
}

// Duration sums the durations of the segments that have timestamps.
func (t Track) Duration() (time.Duration, bool) {
	var total time.Duration
	found := false
	for _, s := range t.Segments {
		if d, ok := s.Duration(); ok {
			total += d
			found = true
		}
	}
	return total, found
}

// ElevationGain sums the climbs of all segments.
func (t Track) ElevationGain() float64 {
	gain := 0.0
	for _, s := range t.Segments {
		gain += s.ElevationGain()
	}
	return gain
}

// Bounds returns the bounding box over all segments.
func (t Track) Bounds() (Bounds, bool) {
	var (
		b     Bounds
		found bool
	)
	for _, s := range t.Segments {
		sb, ok := s.Bounds()
		if !ok {
			continue
		}
		if !found {
			b, found = sb, true
			continue
		}
		b = b.extend(sb)
	}
	return b, found
}

// Points returns the points of all segments in order.
func (t Track) Points() []TrackPoint {
	var points []TrackPoint
	for _, s := range t.Segments {
		points = append(points, s.Points...)
	}
	return points
}

// Distance returns the length of the route.
func (r Route) Distance() Distance {
	return PathDistance(r.Points)
}

// Distance sums the length of all tracks in the document.
func (d Document) Distance() Distance {
	var total Distance
	for _, t := range d.Tracks {
		total = total.Add(t.Distance())
	}
	return total
}

// Nearest returns the waypoint closest to from. Waypoints at NaN distance
// are skipped; ok is false when none is left.
func Nearest(from TrackPoint, waypoints []Waypoint) (wp Waypoint, dist Distance, ok bool) {
	for _, w := range waypoints {
		d := from.DistanceTo(w.TrackPoint)
		if math.IsNaN(d.Meters()) {
			continue
		}
		if !ok || d.Meters() < dist.Meters() {
			wp, dist, ok = w, d, true
		}
	}
	return wp, dist, ok
}
