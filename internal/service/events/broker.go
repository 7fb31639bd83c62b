// Package events fans out workspace changes to connected clients.
package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Event types
const (
	TypeCollectionUpdated = "collection.updated"
	TypeMembersUpdated    = "members.updated"
	TypeUIUpdated         = "ui.updated"
	TypeCollectionReset   = "collection.reset"
)

// Event is one published change
type Event struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Data any    `json:"data"`
}

// CollectionUpdated is published after every applied mutation
type CollectionUpdated struct {
	WorkspaceID string   `json:"workspace_id"`
	Version     int64    `json:"version"`
	Touched     []string `json:"touched_folder_ids"`
}

// MembersUpdated is published when a folder's members or permission change
type MembersUpdated struct {
	FolderID string `json:"folder_id"`
}

// UIUpdated is published when a user's UI state changes. Subscribers filter
// by UserID.
type UIUpdated struct {
	UserID string `json:"user_id"`
}

// Subscription receives events until Close is called
type Subscription struct {
	C <-chan Event

	broker *Broker
	id     int64
	ch     chan Event
	once   sync.Once
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.unsubscribe(s.id)
	})
}

// Broker is an in-process publish/subscribe hub. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Broker struct {
	mu      sync.RWMutex
	subs    map[int64]*Subscription
	nextSub int64
	nextID  atomic.Int64
	buffer  int
	logger  *slog.Logger
}

// NewBroker creates a broker with the given per-subscriber buffer size
func NewBroker(buffer int, logger *slog.Logger) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{
		subs:   make(map[int64]*Subscription),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a new subscriber
func (b *Broker) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSub++
	ch := make(chan Event, b.buffer)
	sub := &Subscription{C: ch, broker: b, id: b.nextSub, ch: ch}
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers an event to every subscriber and returns its ID
func (b *Broker) Publish(e Event) int64 {
	e.ID = b.nextID.Add(1)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, sub := range b.subs {
		select {
		case sub.ch <- e:
		default:
			b.logger.Warn("event dropped for slow subscriber",
				"subscriber", id,
				"event_type", e.Type,
				"event_id", e.ID,
			)
		}
	}
	return e.ID
}

// Subscribers returns the number of live subscriptions
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broker) unsubscribe(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}
