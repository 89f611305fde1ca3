// Package eventstest provides a Notifier that records events for tests.
package eventstest

import (
	"sync"

	"github.com/cbodonnell/flipmatch/pkg/events"
)

// Recorder is a Notifier that keeps every event it receives.
type Recorder struct {
	lock   sync.Mutex
	events []events.Event
}

func (r *Recorder) Notify(event events.Event) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []events.Event {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]events.Event(nil), r.events...)
}

// OfType returns the recorded events with the given type.
func (r *Recorder) OfType(eventType events.EventType) []events.Event {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = nil
}
