package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("session-1")
	defer hub.Unregister(client)

	payload := []byte("hello")
	hub.Broadcast("session-1", payload)

	select {
	case msg := <-client.Send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubBroadcastOtherSession(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("session-1")
	defer hub.Unregister(client)

	hub.Broadcast("session-2", []byte("nope"))

	select {
	case <-client.Send:
		t.Fatalf("received message for another session")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("busy")
	defer hub.Unregister(client)

	for i := 0; i < cap(client.Send)+10; i++ {
		hub.Broadcast("busy", []byte("x"))
	}
	if len(client.Send) != cap(client.Send) {
		t.Fatalf("expected full buffer, got %d", len(client.Send))
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "gpx:tracking:abc:points" {
		t.Fatalf("unexpected channel %q", ch)
	}
	if sessionIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected session id")
	}
	if sessionIDFromChannel("bad") != "" {
		t.Fatalf("expected empty session id")
	}
	if sessionIDFromChannel("other:prefix:abc:points") != "" {
		t.Fatalf("expected empty session id for foreign channel")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("session-2")
	if hub.Subscribers("session-2") != 1 {
		t.Fatalf("expected one subscriber")
	}
	hub.Unregister(client)
	_, ok := <-client.Send
	if ok {
		t.Fatalf("expected channel closed")
	}
	if hub.Subscribers("session-2") != 0 {
		t.Fatalf("expected no subscribers")
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	defer hub.Close()
	ws := hub.Register("session-redis")
	defer hub.Unregister(ws)

	hub.Broadcast("session-redis", []byte("ping"))

	select {
	case msg := <-ws.Send:
		if string(msg) != "ping" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting for broadcast")
	}

	// a publish from another instance reaches local clients
	if err := client.Publish(context.Background(), redisChannel("session-redis"), "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	select {
	case msg := <-ws.Send:
		if string(msg) != "pong" {
			t.Fatalf("unexpected message from redis")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting for redis message")
	}

	select {
	case msg := <-ws.Send:
		t.Fatalf("unexpected duplicate message %q", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHubRedisPublishErrorFallsBack(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	defer client.Close()

	hub := NewHub(client)
	defer hub.Close()
	ws := hub.Register("session-bad")
	defer hub.Unregister(ws)

	server.Close()
	hub.Broadcast("session-bad", []byte("ping"))

	select {
	case msg := <-ws.Send:
		if string(msg) != "ping" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected local delivery when redis is down")
	}
}

func TestHubRedisUnavailableAtStart(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	defer client.Close()
	server.Close()

	hub := NewHub(client)
	if hub.redis != nil {
		t.Fatalf("expected local-only hub")
	}
	if err := hub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	ws := hub.Register("session-local")
	defer hub.Unregister(ws)
	hub.Broadcast("session-local", []byte("ping"))
	if msg := <-ws.Send; string(msg) != "ping" {
		t.Fatalf("unexpected message")
	}
}
