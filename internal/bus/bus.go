// Package bus is the in-process notification channel between the workflow
// engine and whichever dashboard views are currently mounted.
//
// Delivery is synchronous, at-most-once, best-effort: a publish with no
// subscribers is dropped, there is no retry, and ordering is guaranteed only
// among publishes of the same event name. Payloads are structurally cloned
// so no subscriber can mutate another's view.
package bus

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is what a subscriber receives: the event name and a private copy of
// the encoded payload.
type Event struct {
	Name    string
	Payload json.RawMessage
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// Handler consumes one event. Handlers run on the publisher's goroutine.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Bus is a typed publish/subscribe hub keyed by event name.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]subscription
}

func New() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers handler for name and returns its unsubscribe func.
// Subscriptions follow the lifetime of the view that mounts them: call the
// returned func on unmount.
func (b *Bus) Subscribe(name string, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[name]
		for i, s := range subs {
			if s.id == id {
				b.subs[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish encodes payload once and delivers a fresh copy to every current
// subscriber of name, in subscribe order. A payload that fails to encode is
// logged and dropped; publication is fire-and-forget either way.
func (b *Bus) Publish(name string, payload any) {
	doc, err := json.Marshal(payload)
	if err != nil {
		log.Printf("bus: dropping %q event, payload not encodable: %v", name, err)
		return
	}

	b.mu.Lock()
	subs := make([]subscription, len(b.subs[name]))
	copy(subs, b.subs[name])
	b.mu.Unlock()

	for _, s := range subs {
		clone := make(json.RawMessage, len(doc))
		copy(clone, doc)
		s.fn(Event{Name: name, Payload: clone})
	}
}
