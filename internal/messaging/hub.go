package messaging

import (
	"context"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Event is the wire format pushed to thread subscribers.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one open subscription: a user watching one thread.
type Client struct {
	UserID   uint
	ThreadID uint
	Conn     *websocket.Conn
	Send     chan Event

	ctx    context.Context
	cancel context.CancelFunc
}

// Hub tracks subscriptions per thread. One subscription per open thread on
// the client side maps to one Client here.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{} // threadID -> clients
}

func NewHub() *Hub {
	return &Hub{clients: map[uint]map[*Client]struct{}{}}
}

func (h *Hub) AddClient(userID, threadID uint, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		UserID:   userID,
		ThreadID: threadID,
		Conn:     conn,
		Send:     make(chan Event, 64),
		ctx:      ctx,
		cancel:   cancel,
	}
	h.register(c)

	go c.writeLoop()
	go c.keepAliveLoop()

	return c
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.ThreadID] == nil {
		h.clients[c.ThreadID] = map[*Client]struct{}{}
	}
	h.clients[c.ThreadID][c] = struct{}{}
}

// RemoveClient drops the subscription. The client leaves the registry before
// its context is cancelled, so no broadcast can reach it afterwards; Send is
// never closed and goes away with the client. The close handshake happens
// outside the lock so it cannot stall broadcasts.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.ThreadID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.ThreadID)
		}
	}
	h.mu.Unlock()

	c.cancel()
	if c.Conn != nil {
		_ = c.Conn.Close(websocket.StatusNormalClosure, "bye")
	}
}

// SubscribersOf returns the user ids currently watching a thread.
func (h *Hub) SubscribersOf(threadID uint) []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := map[uint]struct{}{}
	var ids []uint
	for c := range h.clients[threadID] {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		ids = append(ids, c.UserID)
	}
	return ids
}

// BroadcastToThread pushes an event to every subscriber except the sender.
func (h *Hub) BroadcastToThread(threadID uint, senderID uint, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[threadID] {
		if c.UserID == senderID {
			continue
		}
		select {
		case c.Send <- ev:
		default:
			// slow consumer, drop
		}
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.Send:
			writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			_ = wsjson.Write(writeCtx, c.Conn, ev)
			cancel()
		}
	}
}

func (c *Client) keepAliveLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = c.Conn.Ping(pingCtx)
			cancel()
		}
	}
}
