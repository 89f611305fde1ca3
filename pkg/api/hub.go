package api

import (
	"encoding/json"
	"sync"

	"github.com/cbodonnell/flipmatch/pkg/events"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/messages"
)

// EventHub encodes core events as messages and fans them out to websocket
// subscribers. Slow subscribers lose messages rather than stall the loop.
type EventHub struct {
	lock        sync.RWMutex
	subscribers map[chan []byte]struct{}
	closed      bool
}

func NewEventHub() *EventHub {
	return &EventHub{
		subscribers: make(map[chan []byte]struct{}),
	}
}

// Notify encodes the event on the calling goroutine, so card pointers in
// the payload are read while the game loop still owns them.
func (h *EventHub) Notify(event events.Event) {
	msg, err := messages.NewMessage(string(event.Type()), event)
	if err != nil {
		log.Error("Failed to encode %s event: %v", event.Type(), err)
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to marshal %s message: %v", event.Type(), err)
		return
	}

	h.lock.RLock()
	defer h.lock.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- b:
		default:
			log.Warn("Dropping %s event for a slow subscriber", event.Type())
		}
	}
}

// Subscribe returns a stream of encoded messages and a function that ends
// the subscription.
func (h *EventHub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, messages.MessageBufferSize)
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.lock.Lock()
			defer h.lock.Unlock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Close ends every subscription.
func (h *EventHub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
