package messaging

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newHubClient(userID, threadID uint) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		UserID:   userID,
		ThreadID: threadID,
		Send:     make(chan Event, 64),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func TestBroadcastSkipsSender(t *testing.T) {
	h := NewHub()
	sender := newHubClient(1, 9)
	receiver := newHubClient(2, 9)
	h.register(sender)
	h.register(receiver)

	h.BroadcastToThread(9, 1, Event{Type: "message.created"})

	assert.Len(t, receiver.Send, 1)
	assert.Empty(t, sender.Send)
}

func TestSubscribersOfDeduplicatesUsers(t *testing.T) {
	h := NewHub()
	h.register(newHubClient(1, 9))
	h.register(newHubClient(1, 9)) // second tab, same user
	h.register(newHubClient(2, 9))

	ids := h.SubscribersOf(9)
	assert.ElementsMatch(t, []uint{1, 2}, ids)
	assert.Empty(t, h.SubscribersOf(10))
}

func TestBroadcastDropsSlowConsumer(t *testing.T) {
	h := NewHub()
	c := newHubClient(2, 9)
	h.register(c)

	// no write loop draining, so the buffer fills and extra events drop
	// instead of blocking the broadcaster
	for i := 0; i < cap(c.Send)+10; i++ {
		h.BroadcastToThread(9, 1, Event{Type: "message.created"})
	}
	assert.Len(t, c.Send, cap(c.Send))
}

// Clients come and go while messages fan out. A removed client must never be
// reachable from a broadcast, whatever the interleaving.
func TestRemoveClientDuringBroadcast(t *testing.T) {
	h := NewHub()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				h.BroadcastToThread(9, 0, Event{Type: "message.created"})
			}
		}
	}()

	for i := 0; i < 500; i++ {
		c := newHubClient(uint(i+1), 9)
		h.register(c)
		h.RemoveClient(c)
	}

	close(stop)
	wg.Wait()

	assert.Empty(t, h.SubscribersOf(9))
}

func TestRemoveClientCleansEmptyThread(t *testing.T) {
	h := NewHub()
	a := newHubClient(1, 9)
	b := newHubClient(2, 9)
	h.register(a)
	h.register(b)

	h.RemoveClient(a)
	assert.ElementsMatch(t, []uint{2}, h.SubscribersOf(9))

	h.RemoveClient(b)
	assert.Empty(t, h.SubscribersOf(9))

	h.mu.RLock()
	_, ok := h.clients[9]
	h.mu.RUnlock()
	assert.False(t, ok, "empty thread entry should be deleted")
}
