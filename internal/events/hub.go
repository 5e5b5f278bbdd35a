package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alfagnish/usuarios-api/internal/users"
)

// Type identifies the kind of change an Event describes.
type Type string

const (
	UserCreated Type = "user.created"
	UserUpdated Type = "user.updated"
	UserDeleted Type = "user.deleted"
)

// subscriberBuffer is the number of events queued per subscriber before
// further events are dropped for it.
const subscriberBuffer = 16

// Event is a single change to the user store.
type Event struct {
	ID   string     `json:"id"`
	Type Type       `json:"type"`
	User users.User `json:"user"`
	Time time.Time  `json:"time"`
}

// New builds an event with a fresh id stamped with the current time.
func New(t Type, u users.User) Event {
	return Event{
		ID:   uuid.New().String(),
		Type: t,
		User: u,
		Time: time.Now().UTC(),
	}
}

// Hub fans published events out to every current subscriber. All public
// methods are safe for concurrent use.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]chan Event
}

// NewHub creates a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]chan Event)}
}

// Subscribe registers a new subscriber and returns its id and the channel
// events are delivered on. The channel is closed by Unsubscribe.
func (h *Hub) Subscribe() (uuid.UUID, <-chan Event) {
	id := uuid.New()
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(ch)
}

// Publish delivers e to every subscriber without blocking. A subscriber
// whose buffer is full misses the event. It returns the number of
// subscribers the event was delivered to.
func (h *Hub) Publish(e Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, ch := range h.subs {
		select {
		case ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
