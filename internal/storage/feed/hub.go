// Package feed fans change-feed events out to every subscribed observer
// (one per open session, typically an SSE connection).
package feed

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
)

var (
	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_events_published_total",
			Help: "Forum change-feed events delivered to subscribers",
		},
		[]string{"op"},
	)
	eventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_events_dropped_total",
			Help: "Forum change-feed events dropped because a subscriber was slow",
		},
	)
)

const subscriberBuffer = 16

type Hub struct {
	mu     sync.Mutex
	subs   map[int64]chan domain.ForumEvent
	nextId int64
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]chan domain.ForumEvent)}
}

// Subscribe registers an observer. The returned cancel func must be called
// when the observer goes away; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan domain.ForumEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan domain.ForumEvent, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextId
	h.nextId++
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber without blocking. A subscriber
// that cannot keep up loses events; the SSE layer compensates by having
// clients re-list on every event, so a drop costs freshness, not
// correctness.
func (h *Hub) Publish(ev domain.ForumEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for _, sub := range h.subs {
		select {
		case sub <- ev:
			eventsPublished.WithLabelValues(string(ev.Op)).Inc()
		default:
			eventsDropped.Inc()
			logger.Log.Warn("dropping forum event for slow subscriber", "op", ev.Op, "thread_id", ev.ThreadId)
		}
	}
}

// Close terminates all subscriptions. Publish and Subscribe become no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub)
	}
}
