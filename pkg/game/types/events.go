package types

import (
	"context"

	"github.com/google/uuid"
)

// Commands are enqueued by transports and executed on the event loop.

type StartGameCommand struct {
	Rows    int
	Columns int
	Reply   chan<- error
}

type SelectCardCommand struct {
	CardID int
	Reply  chan<- error
}

type SaveGameCommand struct {
	Reply chan<- error
}

type LoadGameCommand struct {
	Reply chan<- LoadGameResult
}

type LoadGameResult struct {
	Loaded bool
	Err    error
}

type EndGameCommand struct {
	Reply chan<- error
}

// PauseCommand carries the application-pause signal.
// Paused is false when the application returns to the foreground.
type PauseCommand struct {
	Paused bool
	Reply  chan<- error
}

type QuitCommand struct {
	Reply chan<- error
}

// TimerCommand re-enters the event loop when a scheduled delay elapses.
type TimerCommand struct {
	SessionID uuid.UUID
	Fn        func(ctx context.Context)
}
