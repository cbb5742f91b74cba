package measure

import (
	"time"

	"yellowduck-gpx/gpx"
)

func NewReport(d gpx.Distance) Report {
	return Report{
		Distance:    d,
		Kilometers:  d.Kilometers(),
		Miles:       d.Miles(),
		FormattedKm: d.FormattedKilometers(),
		FormattedMi: d.FormattedMiles(),
	}
}

func Pair(req PairRequest) Report {
	return NewReport(req.From.DistanceTo(req.To))
}

func Nearest(req NearestRequest) (NearestReport, bool) {
	wp, d, ok := gpx.Nearest(req.From, req.Waypoints)
	if !ok {
		return NearestReport{}, false
	}
	return NearestReport{Waypoint: wp, Report: NewReport(d)}, true
}

func Segment(s gpx.Segment) SegmentReport {
	r := SegmentReport{
		Points:         len(s.Points),
		ElevationGainM: s.ElevationGain(),
		Report:         NewReport(s.Distance()),
	}
	if d, ok := s.Duration(); ok {
		r.DurationSec = seconds(d)
	}
	return r
}

func Track(t gpx.Track) TrackReport {
	r := TrackReport{
		Name:           t.Name,
		Segments:       make([]SegmentReport, 0, len(t.Segments)),
		ElevationGainM: t.ElevationGain(),
		Report:         NewReport(t.Distance()),
	}
	for _, s := range t.Segments {
		r.Segments = append(r.Segments, Segment(s))
	}
	if d, ok := t.Duration(); ok {
		r.DurationSec = seconds(d)
	}
	if b, ok := t.Bounds(); ok {
		r.Bounds = &b
	}
	return r
}

func Route(rt gpx.Route) RouteReport {
	r := RouteReport{
		Name:   rt.Name,
		Points: len(rt.Points),
		Report: NewReport(rt.Distance()),
	}
	if b, ok := gpx.PathBounds(rt.Points); ok {
		r.Bounds = &b
	}
	return r
}

func Document(doc gpx.Document) DocumentReport {
	r := DocumentReport{
		Tracks:    make([]TrackReport, 0, len(doc.Tracks)),
		Routes:    make([]RouteReport, 0, len(doc.Routes)),
		Waypoints: len(doc.Waypoints),
		Report:    NewReport(doc.Distance()),
	}
	for _, t := range doc.Tracks {
		r.Tracks = append(r.Tracks, Track(t))
	}
	for _, rt := range doc.Routes {
		r.Routes = append(r.Routes, Route(rt))
	}
	return r
}

func seconds(d time.Duration) *int64 {
	s := int64(d.Seconds())
	return &s
}
