package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yellowduck-gpx/internal/auth"
	"yellowduck-gpx/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "secret", ServerPort: ":0", MetricsEnabled: true}
}

func TestHealthRoute(t *testing.T) {
	s := NewServer(testConfig(), nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestMetricsRoute(t *testing.T) {
	s := NewServer(testConfig(), nil)
	resp, err := s.App.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil || resp.StatusCode != 200 {
		t.Fatalf("metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "gpx_") {
		t.Fatalf("expected gpx metrics in output")
	}

	cfg := testConfig()
	cfg.MetricsEnabled = false
	resp, _ = NewServer(cfg, nil).App.Test(httptest.NewRequest("GET", "/metrics", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected metrics to be disabled, got %d", resp.StatusCode)
	}
}

func TestMeasureRoute(t *testing.T) {
	s := NewServer(testConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/measure/distance",
		strings.NewReader(`{"from":{"lat":12.5,"lon":43.5},"to":{"lat":13.5,"lon":45.5}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("measure: %v %v", err, resp)
	}
}

func TestTrackingRequiresToken(t *testing.T) {
	s := NewServer(testConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/tracking/sessions", strings.NewReader(`{"name":"ride"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := s.App.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["error"] == "" {
		t.Fatalf("expected error body: %v %v", err, body)
	}
}

func TestTrackingPublishesThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := NewServer(testConfig(), rdb)
	defer s.Stream.Close()

	token, err := auth.SignToken("secret", "rider-1", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/tracking/sessions", strings.NewReader(`{"name":"ride"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("start session: %v %v", err, resp)
	}
	var session struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}

	client := s.Stream.Register(session.ID)
	defer s.Stream.Unregister(client)

	req = httptest.NewRequest(http.MethodPost, "/tracking/sessions/"+session.ID+"/points",
		bytes.NewReader([]byte(`{"lat":12.5,"lon":43.5}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("add point: %v %v", err, resp)
	}

	select {
	case msg := <-client.Send:
		if !strings.Contains(string(msg), session.ID) {
			t.Fatalf("unexpected message: %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for relayed point")
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if resp.StatusCode != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", resp.StatusCode)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "short and stout" {
		t.Fatalf("unexpected body: %v", body)
	}
}
