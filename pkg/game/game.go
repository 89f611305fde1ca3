package game

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/queue"
)

// DefaultLoopInterval is the loop tick used when none is configured.
const DefaultLoopInterval = 16 * time.Millisecond

// GameManager owns the event loop. Every command and timer callback runs on
// the loop goroutine, so the Session never sees concurrent access.
type GameManager struct {
	commandQueue queue.Queue
	session      *Session
	loopInterval time.Duration
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	CommandQueue queue.Queue
	Session      *Session
	LoopInterval time.Duration
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	loopInterval := opts.LoopInterval
	if loopInterval <= 0 {
		loopInterval = DefaultLoopInterval
	}
	return &GameManager{
		commandQueue: opts.CommandQueue,
		session:      opts.Session,
		loopInterval: loopInterval,
	}
}

// Start starts the game loop. It returns when ctx is cancelled.
func (gm *GameManager) Start(ctx context.Context) error {
	if gm.session == nil {
		return fmt.Errorf("failed to start game loop: session is nil")
	}

	ticker := time.NewTicker(gm.loopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			gm.processCommands(ctx)
		}
	}
}

// processCommands executes all pending commands in the queue in order.
func (gm *GameManager) processCommands(ctx context.Context) {
	pendingCommands, err := gm.commandQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read commands: %v", err)
		return
	}
	for _, item := range pendingCommands {
		switch cmd := item.(type) {
		case *types.StartGameCommand:
			reply(cmd.Reply, gm.session.StartGame(ctx, cmd.Rows, cmd.Columns))
		case *types.SelectCardCommand:
			err := gm.session.SelectCard(ctx, cmd.CardID)
			if err != nil {
				log.Debug("Rejected selection of card %d: %v", cmd.CardID, err)
			}
			reply(cmd.Reply, err)
		case *types.SaveGameCommand:
			reply(cmd.Reply, gm.session.SaveGame(ctx))
		case *types.LoadGameCommand:
			loaded, err := gm.session.LoadGame(ctx)
			reply(cmd.Reply, types.LoadGameResult{Loaded: loaded, Err: err})
		case *types.EndGameCommand:
			gm.session.EndGame(ctx)
			reply(cmd.Reply, nil)
		case *types.PauseCommand:
			gm.session.Pause(ctx, cmd.Paused)
			reply(cmd.Reply, nil)
		case *types.QuitCommand:
			gm.session.Quit(ctx)
			reply(cmd.Reply, nil)
		case *types.TimerCommand:
			log.Trace("Running timer for session %s", cmd.SessionID)
			cmd.Fn(ctx)
		default:
			log.Error("Unhandled command type: %T", item)
		}
	}
}

// reply sends v when the sender asked for a result. Reply channels must be
// buffered so the loop never blocks on a caller that has gone away.
func reply[T any](ch chan<- T, v T) {
	if ch == nil {
		return
	}
	select {
	case ch <- v:
	default:
		log.Warn("Dropping reply to a caller that is not listening")
	}
}
