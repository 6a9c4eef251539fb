package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

type subscriber struct {
	names   map[string]bool // nil means every event
	dropped uint64
}

func (s *subscriber) wants(name string) bool {
	return s.names == nil || s.names[name]
}

// EventHub fans events out to subscribers. Every published event gets the
// next sequence number, so subscribers can tell when they missed some.
type EventHub struct {
	mu   sync.RWMutex
	seq  uint64
	subs map[chan Event]*subscriber
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan Event]*subscriber)}
}

// Subscribe returns a channel receiving the named events, or every event if
// no names are given.
func (h *EventHub) Subscribe(names ...string) chan Event {
	sub := &subscriber{}
	if len(names) > 0 {
		sub.names = make(map[string]bool, len(names))
		for _, n := range names {
			sub.names[n] = true
		}
	}

	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = sub
	h.mu.Unlock()
	return ch
}

func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[ch]
	if !ok {
		return
	}
	if sub.dropped > 0 {
		logrus.WithField("dropped", sub.dropped).Debug("slow event subscriber went away")
	}
	delete(h.subs, ch)
	close(ch)
}

// Subscribers returns the number of active subscribers.
func (h *EventHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish sends payload as JSON to every interested subscriber. Subscribers
// with full buffers miss the event.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).WithField("event", name).Warn("failed to marshal event payload")
		return
	}

	// Write lock: seq and drop counters change.
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	msg := Event{ID: h.seq, Name: name, Data: b}
	for ch, sub := range h.subs {
		if !sub.wants(name) {
			continue
		}
		select {
		case ch <- msg:
		default:
			sub.dropped++
		}
	}
}
