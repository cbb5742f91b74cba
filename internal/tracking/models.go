package tracking

import (
	"time"

	"yellowduck-gpx/gpx"
)

const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

type Session struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	StartedAt      time.Time    `json:"started_at"`
	EndedAt        *time.Time   `json:"ended_at,omitempty"`
	Status         string       `json:"status"`
	Distance       gpx.Distance `json:"distance_m"`
	ElevationGainM float64      `json:"elevation_gain_m"`
}

// PointAdded is the event published to stream subscribers for every new point.
type PointAdded struct {
	SessionID string         `json:"session_id"`
	Index     int            `json:"index"`
	Point     gpx.TrackPoint `json:"point"`
	Delta     gpx.Distance   `json:"delta_m"`
	Total     gpx.Distance   `json:"total_m"`
}

type Summary struct {
	SessionID       string       `json:"session_id"`
	Name            string       `json:"name"`
	Status          string       `json:"status"`
	PointCount      int          `json:"point_count"`
	Distance        gpx.Distance `json:"distance_m"`
	DistanceKm      float64      `json:"distance_km"`
	DistanceMi      float64      `json:"distance_mi"`
	FormattedKm     string       `json:"formatted_km"`
	FormattedMi     string       `json:"formatted_mi"`
	ElevationGainM  float64      `json:"elevation_gain_m"`
	DurationSec     int64        `json:"duration_sec"`
	AverageSpeedMps float64      `json:"average_speed_mps"`
}
