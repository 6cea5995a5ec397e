package live

import (
	"sync"
)

// Event is a live update pushed to subscribers of a tenant-scoped topic.
type Event struct {
	BusinessID string
	Topic      string
	Name       string
	Data       interface{}
}

// Hub fans live events out to subscribers. Topics are scoped by tenant so a
// subscriber never observes another business's updates.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

func topicKey(businessID, topic string) string {
	return businessID + "/" + topic
}

// Subscribe registers a subscriber for a tenant topic and returns the event
// channel plus a cleanup function. The cleanup function is idempotent via
// the hub's bookkeeping: the channel is removed and closed exactly once.
func (h *Hub) Subscribe(businessID, topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := topicKey(businessID, topic)
	ch := make(chan Event, 10)

	if h.subscribers[key] == nil {
		h.subscribers[key] = make(map[chan Event]struct{})
	}
	h.subscribers[key][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[key][ch]; !ok {
			return
		}
		delete(h.subscribers[key], ch)
		close(ch)
		if len(h.subscribers[key]) == 0 {
			delete(h.subscribers, key)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every subscriber of the event's tenant topic.
// Delivery is non-blocking; slow subscribers miss events rather than stall
// the writer.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[topicKey(event.BusinessID, event.Topic)]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a topic.
func (h *Hub) SubscriberCount(businessID, topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[topicKey(businessID, topic)])
}
