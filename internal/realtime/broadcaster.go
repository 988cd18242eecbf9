// Package realtime fans order changes out to live dashboard subscribers.
package realtime

import (
	"log/slog"
	"sync"

	"pharmaflow/internal/core/ports"
)

// defaultBuffer is the per-subscriber queue depth. A subscriber that falls
// further behind starts losing frames; the dashboard resyncs on reconnect.
const defaultBuffer = 16

// Scope narrows a subscription to the changes a subscriber may see.
type Scope struct {
	pharmacyID *string
}

// ScopeAll subscribes to every order change. Admin dashboards use this.
func ScopeAll() Scope {
	return Scope{}
}

// ScopePharmacy subscribes to changes of orders assigned to one pharmacy.
func ScopePharmacy(pharmacyID string) Scope {
	return Scope{pharmacyID: &pharmacyID}
}

func (s Scope) matches(change ports.OrderChange) bool {
	if s.pharmacyID == nil {
		return true
	}
	return change.PharmacyID != nil && *change.PharmacyID == *s.pharmacyID
}

type subscriber struct {
	scope Scope
	ch    chan ports.OrderChange
}

// Broadcaster is an in-process channel registry implementing
// ports.ChangePublisher. Publish never blocks: a slow subscriber's frame is
// dropped once its buffer is full, so a stuck dashboard connection cannot
// stall command handlers.
type Broadcaster struct {
	log *slog.Logger

	mu          sync.Mutex
	subscribers map[int]*subscriber
	nextID      int
}

// NewBroadcaster creates an empty change broadcaster.
func NewBroadcaster(log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		log:         log.With("component", "realtime"),
		subscribers: make(map[int]*subscriber),
	}
}

// Subscribe registers a subscriber and returns its channel together with a
// cancel function. Cancel is synchronous: once it returns, no further sends
// to the channel happen and the channel is closed.
func (b *Broadcaster) Subscribe(scope Scope) (<-chan ports.OrderChange, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	sub := &subscriber{
		scope: scope,
		ch:    make(chan ports.OrderChange, defaultBuffer),
	}
	b.subscribers[id] = sub

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subscribers[id]; !ok {
			return
		}
		delete(b.subscribers, id)
		close(sub.ch)
	}

	return sub.ch, cancel
}

// Publish delivers the change to every subscriber whose scope matches.
func (b *Broadcaster) Publish(change ports.OrderChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscribers {
		if !sub.scope.matches(change) {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			b.log.Debug("dropping change for slow subscriber",
				"order_id", change.OrderID, "label", change.Label)
		}
	}
}

// SubscriberCount reports the number of active subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
