package tracking

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"yellowduck-gpx/gpx"
	"yellowduck-gpx/internal/metrics"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session already ended")
)

// Broadcaster publishes a session update to live subscribers.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}

type session struct {
	Session
	points []gpx.TrackPoint
}

// Service keeps live tracking sessions in memory.
//
// Points are copied on the way in and out, so the TrackPoints held here are
// never shared with callers.
type Service struct {
	hub Broadcaster
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(hub Broadcaster) *Service {
	return &Service{
		hub:      hub,
		now:      time.Now,
		sessions: map[string]*session{},
	}
}

func (s *Service) StartSession(name string) Session {
	sess := &session{Session: Session{
		ID:        uuid.NewString(),
		Name:      name,
		StartedAt: s.now().UTC(),
		Status:    StatusActive,
	}}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	metrics.ActiveSessions.Inc()
	slog.Info("tracking session started", "session_id", sess.ID, "name", name)
	return sess.Session
}

// AddPoint appends a point to an active session and returns the resulting
// event. A point without a timestamp is stamped with the current time.
func (s *Service) AddPoint(sessionID string, point gpx.TrackPoint) (PointAdded, error) {
	point = point.Clone()
	if point.Time == nil {
		ts := s.now().UTC()
		point.Time = &ts
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return PointAdded{}, ErrSessionNotFound
	}
	if sess.Status == StatusEnded {
		s.mu.Unlock()
		return PointAdded{}, ErrSessionEnded
	}

	var delta gpx.Distance
	if n := len(sess.points); n > 0 {
		last := sess.points[n-1]
		delta = last.DistanceTo(point)
		sess.Distance = sess.Distance.Add(delta)
		if last.Ele != nil && point.Ele != nil && *point.Ele > *last.Ele {
			sess.ElevationGainM += *point.Ele - *last.Ele
		}
	}
	sess.points = append(sess.points, point)
	event := PointAdded{
		SessionID: sessionID,
		Index:     len(sess.points) - 1,
		Point:     point.Clone(),
		Delta:     delta,
		Total:     sess.Distance,
	}
	s.mu.Unlock()

	metrics.PointsIngested.Inc()
	s.publish(event)
	return event, nil
}

func (s *Service) EndSession(sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if sess.Status == StatusEnded {
		return Session{}, ErrSessionEnded
	}
	ended := s.now().UTC()
	sess.EndedAt = &ended
	sess.Status = StatusEnded

	metrics.ActiveSessions.Dec()
	slog.Info("tracking session ended", "session_id", sessionID, "distance_m", sess.Distance.Meters())
	return sess.Session, nil
}

func (s *Service) Session(sessionID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess.Session, nil
}

func (s *Service) Summary(sessionID string) (Summary, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.RUnlock()
		return Summary{}, ErrSessionNotFound
	}
	snapshot := sess.Session
	pointCount := len(sess.points)
	s.mu.RUnlock()

	end := s.now().UTC()
	if snapshot.EndedAt != nil {
		end = *snapshot.EndedAt
	}
	duration := end.Sub(snapshot.StartedAt)
	avgSpeed := 0.0
	if duration.Seconds() > 0 {
		avgSpeed = snapshot.Distance.Meters() / duration.Seconds()
	}

	return Summary{
		SessionID:       snapshot.ID,
		Name:            snapshot.Name,
		Status:          snapshot.Status,
		PointCount:      pointCount,
		Distance:        snapshot.Distance,
		DistanceKm:      snapshot.Distance.Kilometers(),
		DistanceMi:      snapshot.Distance.Miles(),
		FormattedKm:     snapshot.Distance.FormattedKilometers(),
		FormattedMi:     snapshot.Distance.FormattedMiles(),
		ElevationGainM:  snapshot.ElevationGainM,
		DurationSec:     int64(duration.Seconds()),
		AverageSpeedMps: avgSpeed,
	}, nil
}

func (s *Service) Points(sessionID string) ([]gpx.TrackPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	points := make([]gpx.TrackPoint, len(sess.points))
	for i, p := range sess.points {
		points[i] = p.Clone()
	}
	return points, nil
}

// Track exports the session as a single-segment GPX track.
func (s *Service) Track(sessionID string) (gpx.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return gpx.Track{}, ErrSessionNotFound
	}
	points := make([]gpx.TrackPoint, len(sess.points))
	for i, p := range sess.points {
		points[i] = p.Clone()
	}
	return gpx.Track{
		Name:     sess.Name,
		Segments: []gpx.Segment{{Points: points}},
	}, nil
}

func (s *Service) publish(event PointAdded) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("tracking event not published", "session_id", event.SessionID, "error", err)
		return
	}
	s.hub.Broadcast(event.SessionID, payload)
}
