package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Hub tracks connected subscribers and the last published payload.
type Hub struct {
	greeting string
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.RWMutex
	subs map[string]Subscriber

	// Single-slot cache, swapped atomically before each fan-out.
	last atomic.Pointer[[]byte]

	joined    atomic.Int64
	published atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
}

// NewHub creates a Hub that greets subscribers with the given info text.
func NewHub(greeting string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		greeting: greeting,
		logger:   logger.With("component", "hub"),
		now:      time.Now,
		subs:     make(map[string]Subscriber),
	}
}

// Join greets sub, registers it and sends the retained payload if one
// exists. A subscriber whose greeting fails is not registered.
func (h *Hub) Join(sub Subscriber) error {
	greeting, err := json.Marshal(Greeting{Info: h.greeting, TS: h.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("encode greeting: %w", err)
	}
	if err := send(sub, greeting); err != nil {
		return fmt.Errorf("send greeting: %w", err)
	}

	// Registering and reading the cache under the same lock means a
	// concurrent Publish either lands in the cache we read or sees sub in its
	// snapshot, so sub misses nothing. The replay below runs unlocked and may
	// arrive after that newer payload.
	h.mu.Lock()
	h.subs[sub.ID()] = sub
	count := len(h.subs)
	last := h.last.Load()
	h.mu.Unlock()

	h.joined.Add(1)
	h.logger.Info("subscriber joined", "id", sub.ID(), "subscribers", count)

	if last != nil {
		if err := send(sub, *last); err != nil {
			h.Leave(sub.ID())
			return fmt.Errorf("send last payload: %w", err)
		}
	}

	return nil
}

// Leave unregisters a subscriber. It reports whether it was registered.
func (h *Hub) Leave(id string) bool {
	h.mu.Lock()
	_, ok := h.subs[id]
	delete(h.subs, id)
	count := len(h.subs)
	h.mu.Unlock()

	if ok {
		h.logger.Info("subscriber left", "id", id, "subscribers", count)
	}
	return ok
}

// Publish stores data as the last payload and sends it to every current
// subscriber. Failures are counted and skipped. It returns the number of
// successful deliveries.
func (h *Hub) Publish(data []byte) int {
	h.last.Store(&data)
	h.published.Add(1)

	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range subs {
		if err := send(s, data); err != nil {
			h.failed.Add(1)
			h.logger.Debug("delivery failed", "id", s.ID(), "error", err)
			continue
		}
		delivered++
	}

	h.delivered.Add(int64(delivered))
	return delivered
}

// send delivers data to sub, turning a panic in Send into an error so one
// subscriber cannot abort a fan-out.
func send(sub Subscriber, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSubscriberPanic, r)
		}
	}()
	return sub.Send(data)
}

// Last returns the retained payload, or nil before the first Publish.
func (h *Hub) Last() []byte {
	p := h.last.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Count returns the number of registered subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// CloseAll closes and unregisters every subscriber.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[string]Subscriber)
	h.mu.Unlock()

	for _, s := range subs {
		if err := s.Close(); err != nil {
			h.logger.Debug("close subscriber", "id", s.ID(), "error", err)
		}
	}
}

// Stats returns a snapshot of hub counters.
func (h *Hub) Stats() Stats {
	return Stats{
		Subscribers: h.Count(),
		Joined:      h.joined.Load(),
		Published:   h.published.Load(),
		Delivered:   h.delivered.Load(),
		Failed:      h.failed.Load(),
	}
}
