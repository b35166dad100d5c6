package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sportlink/backend/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 60 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RoomMessage is the frame relayed to every peer in a room.
type RoomMessage struct {
	Room      string          `json:"room"`
	SenderID  string          `json:"senderId"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Client is one websocket connection bound to a room.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
	room   string
}

// Hub relays frames between the clients of each room. Delivery is
// fire-and-forget: a slow client is dropped rather than blocking the
// relay loop.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	relay      chan *RoomMessage
	mu         sync.RWMutex
}

// NewHub creates a room relay hub. Call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		relay:      make(chan *RoomMessage),
	}
}

// Run drives the hub loop until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.room] == nil {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.relay:
			payload, err := json.Marshal(message)
			if err != nil {
				logger.Warn("frame serialization failed", zap.Error(err))
				continue
			}
			h.mu.Lock()
			for client := range h.rooms[message.Room] {
				select {
				case client.send <- payload:
				default:
					close(client.send)
					delete(h.rooms[message.Room], client)
				}
			}
			if len(h.rooms[message.Room]) == 0 {
				delete(h.rooms, message.Room)
			}
			h.mu.Unlock()
		}
	}
}

// Serve upgrades the request and joins the authenticated user to room.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID, room string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
		room:   room,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pingPeriod + writeWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pingPeriod + writeWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			break
		}
		payload := json.RawMessage(data)
		if !json.Valid(data) {
			payload, _ = json.Marshal(string(data))
		}
		c.hub.relay <- &RoomMessage{
			Room:      c.room,
			SenderID:  c.userID,
			Data:      payload,
			Timestamp: time.Now(),
		}
	}
}
