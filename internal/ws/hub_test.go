package ws

import (
	"encoding/json"
	"testing"

	"community_backend/internal/domain"
)

func TestBroadcastReachesClients(t *testing.T) {
	hub := NewHub()

	a := &Client{UserID: 1, hub: hub, send: make(chan []byte, 4)}
	b := &Client{UserID: 2, hub: hub, send: make(chan []byte, 4)}
	hub.register(a)
	hub.register(b)

	hub.Broadcast(PointsRecorded{UserID: 7, Kind: domain.ActionLike, Points: 1})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.send:
			var notice PointsRecorded
			if err := json.Unmarshal(raw, &notice); err != nil {
				t.Fatalf("unmarshal notice: %v", err)
			}
			if notice.Type != "points_recorded" || notice.UserID != 7 || notice.Points != 1 {
				t.Fatalf("notice = %+v", notice)
			}
		default:
			t.Fatalf("client %d received nothing", c.UserID)
		}
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub := NewHub()

	slow := &Client{UserID: 1, hub: hub, send: make(chan []byte)} // zero buffer, never drained
	hub.register(slow)

	hub.Broadcast(PointsRecorded{UserID: 7, Kind: domain.ActionComment, Points: 2})

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount = %d, want 0 after dropping slow client", got)
	}
}

func TestUnregisterIdempotent(t *testing.T) {
	hub := NewHub()
	c := &Client{UserID: 1, hub: hub, send: make(chan []byte, 1)}
	hub.register(c)
	hub.unregister(c)
	hub.unregister(c) // second call must not panic on the closed channel

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount = %d, want 0", got)
	}
}
