package game

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/queue"
)

// Scheduler runs fn once after d has elapsed. Implementations must run fn
// on the goroutine that owns the session.
type Scheduler interface {
	AfterFunc(sessionID uuid.UUID, d time.Duration, fn func(ctx context.Context))
}

// QueueScheduler re-enters the game loop by enqueueing a TimerCommand when
// the delay elapses, so the callback runs on the loop goroutine.
type QueueScheduler struct {
	Queue queue.Queue
}

func (qs QueueScheduler) AfterFunc(sessionID uuid.UUID, d time.Duration, fn func(ctx context.Context)) {
	time.AfterFunc(d, func() {
		if err := qs.Queue.Enqueue(&types.TimerCommand{SessionID: sessionID, Fn: fn}); err != nil {
			log.Error("Failed to enqueue timer for session %s: %v", sessionID, err)
		}
	})
}
