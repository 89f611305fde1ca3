package events

import (
	"sync"

	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
)

type EventType string

const (
	EventTypeGameStarted      EventType = "gameStarted"
	EventTypeGameEnded        EventType = "gameEnded"
	EventTypeScoreUpdated     EventType = "scoreUpdated"
	EventTypeHighScoreUpdated EventType = "highScoreUpdated"
	EventTypeStreakUpdated    EventType = "streakUpdated"
	EventTypeMatchChecked     EventType = "matchChecked"
	EventTypeCardSelected     EventType = "cardSelected"
	EventTypeCardShown        EventType = "cardShown"
	EventTypeCardHidden       EventType = "cardHidden"
	EventTypeCardDeactivated  EventType = "cardDeactivated"
)

// Event is a notification emitted by the core.
type Event interface {
	Type() EventType
}

type GameStartedEvent struct {
	SessionID string `json:"sessionID"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
	Restored  bool   `json:"restored"`
}

type GameEndedEvent struct {
	SessionID string `json:"sessionID"`
	Score     int    `json:"score"`
}

type ScoreUpdatedEvent struct {
	Score int `json:"score"`
}

type HighScoreUpdatedEvent struct {
	HighScore int `json:"highScore"`
}

type StreakUpdatedEvent struct {
	Streak int `json:"streak"`
}

// MatchCheckedEvent reports the outcome of a resolved pair, in submission order.
type MatchCheckedEvent struct {
	Outcome types.Outcome `json:"outcome"`
	First   *types.Card   `json:"first"`
	Second  *types.Card   `json:"second"`
}

// CardSelectedEvent is emitted before the selection is evaluated.
type CardSelectedEvent struct {
	Card *types.Card `json:"card"`
}

type CardShownEvent struct {
	CardID int `json:"cardID"`
}

type CardHiddenEvent struct {
	CardID int `json:"cardID"`
}

type CardDeactivatedEvent struct {
	CardID int `json:"cardID"`
}

func (GameStartedEvent) Type() EventType      { return EventTypeGameStarted }
func (GameEndedEvent) Type() EventType        { return EventTypeGameEnded }
func (ScoreUpdatedEvent) Type() EventType     { return EventTypeScoreUpdated }
func (HighScoreUpdatedEvent) Type() EventType { return EventTypeHighScoreUpdated }
func (StreakUpdatedEvent) Type() EventType    { return EventTypeStreakUpdated }
func (MatchCheckedEvent) Type() EventType     { return EventTypeMatchChecked }
func (CardSelectedEvent) Type() EventType     { return EventTypeCardSelected }
func (CardShownEvent) Type() EventType        { return EventTypeCardShown }
func (CardHiddenEvent) Type() EventType       { return EventTypeCardHidden }
func (CardDeactivatedEvent) Type() EventType  { return EventTypeCardDeactivated }

// Notifier receives events from the core.
type Notifier interface {
	Notify(event Event)
}

type EventHandler func(event Event)

// EventManager fans events out to registered handlers.
type EventManager struct {
	lock     sync.RWMutex
	nextID   int
	handlers map[int]EventHandler
	order    []int
}

func NewEventManager() *EventManager {
	return &EventManager{
		handlers: make(map[int]EventHandler),
	}
}

// RegisterHandler registers a handler for events and returns a function
// that removes it.
// Handlers are called synchronously on the notifying goroutine, in
// registration order, and must not block.
func (em *EventManager) RegisterHandler(handler EventHandler) func() {
	em.lock.Lock()
	defer em.lock.Unlock()
	id := em.nextID
	em.nextID++
	em.handlers[id] = handler
	em.order = append(em.order, id)
	return func() {
		em.lock.Lock()
		defer em.lock.Unlock()
		delete(em.handlers, id)
		for i, v := range em.order {
			if v == id {
				em.order = append(em.order[:i], em.order[i+1:]...)
				break
			}
		}
	}
}

// Notify delivers event to every registered handler.
func (em *EventManager) Notify(event Event) {
	em.lock.RLock()
	handlers := make([]EventHandler, 0, len(em.order))
	for _, id := range em.order {
		handlers = append(handlers, em.handlers[id])
	}
	em.lock.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// LogHandler returns a handler that writes every event to logger at
// debug level.
func LogHandler(logger *log.Logger) EventHandler {
	return func(event Event) {
		logger.Debug("Emitted %s event: %+v", event.Type(), event)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

// Nop returns a Notifier that drops every event.
func Nop() Notifier {
	return nopNotifier{}
}
