package browser

import (
	"sync"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/domain/tabs"
)

// EventType names a browser state change
type EventType string

const (
	EventTabOpened       EventType = "tab.opened"
	EventTabClosed       EventType = "tab.closed"
	EventTabActivated    EventType = "tab.activated"
	EventTabUpdated      EventType = "tab.updated"
	EventCapacityChanged EventType = "tabs.capacity"
	EventCacheHydrated   EventType = "cache.hydrated"
)

// Event is published on every state change
type Event struct {
	Type     EventType `json:"type"`
	TabID    string    `json:"tab_id,omitempty"`
	ActiveID string    `json:"active_id,omitempty"`
	Tab      *tabs.Tab `json:"tab,omitempty"`
	Capacity int       `json:"capacity,omitempty"`
	Records  int       `json:"records,omitempty"`
}

const defaultEventBuffer = 64

type broker struct {
	mu     sync.RWMutex
	subs   map[int]chan Event // Protected by mu
	nextID int                // Protected by mu
}

func newBroker() *broker {
	return &broker{subs: make(map[int]chan Event)}
}

func (b *broker) subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = defaultEventBuffer
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// publish never blocks; full subscribers miss the event
func (b *broker) publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a channel of state events and a function that ends
// the subscription. buffer < 1 uses a default size.
func (a *App) Subscribe(buffer int) (<-chan Event, func()) {
	return a.events.subscribe(buffer)
}
