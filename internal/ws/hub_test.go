package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func roomExists(h *Hub, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room]
	return ok
}

func TestHub_RelaysToRoomPeers(t *testing.T) {
	h := NewHub()
	go h.Run()

	peer := &Client{hub: h, send: make(chan []byte, 1), userID: "u1", room: "match-1"}
	outsider := &Client{hub: h, send: make(chan []byte, 1), userID: "u2", room: "match-2"}
	h.register <- peer
	h.register <- outsider

	h.relay <- &RoomMessage{
		Room:      "match-1",
		SenderID:  "u3",
		Data:      json.RawMessage(`"kickoff"`),
		Timestamp: time.Now(),
	}

	select {
	case payload := <-peer.send:
		var m RoomMessage
		require.NoError(t, json.Unmarshal(payload, &m))
		require.Equal(t, "match-1", m.Room)
		require.Equal(t, "u3", m.SenderID)
	case <-time.After(time.Second):
		t.Fatal("room peer never received the frame")
	}

	select {
	case <-outsider.send:
		t.Fatal("frame leaked into another room")
	default:
	}
}

// A client that cannot keep up is dropped, and a room left with no
// clients is removed rather than lingering for the process lifetime.
func TestHub_DropsSlowClientAndEmptyRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Unbuffered send channel with no reader: the relay's non-blocking
	// write fails immediately.
	slow := &Client{hub: h, send: make(chan []byte), userID: "u1", room: "match-1"}
	h.register <- slow
	require.Eventually(t, func() bool { return roomExists(h, "match-1") }, time.Second, 10*time.Millisecond)

	h.relay <- &RoomMessage{Room: "match-1", SenderID: "u2", Timestamp: time.Now()}

	require.Eventually(t, func() bool { return !roomExists(h, "match-1") }, time.Second, 10*time.Millisecond)
}

func TestHub_UnregisterRemovesEmptyRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := &Client{hub: h, send: make(chan []byte, 1), userID: "u1", room: "match-1"}
	h.register <- c
	require.Eventually(t, func() bool { return roomExists(h, "match-1") }, time.Second, 10*time.Millisecond)

	h.unregister <- c
	require.Eventually(t, func() bool { return !roomExists(h, "match-1") }, time.Second, 10*time.Millisecond)
}
