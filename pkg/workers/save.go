package workers

import (
	"context"
	"fmt"

	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
)

// SaveRequestBufferSize is the default capacity of the save request channel.
const SaveRequestBufferSize = 16

type SaveOperation uint8

const (
	// SaveOperationWrite stores the snapshot and raises the resumable flag.
	SaveOperationWrite SaveOperation = iota
	// SaveOperationClear deletes the snapshot and lowers the resumable flag.
	SaveOperationClear
	// SaveOperationSync writes nothing. Its reply confirms that every
	// earlier request has been applied.
	SaveOperationSync
)

func (o SaveOperation) String() string {
	switch o {
	case SaveOperationWrite:
		return "write"
	case SaveOperationClear:
		return "clear"
	case SaveOperationSync:
		return "sync"
	default:
		return "unknown"
	}
}

type SaveGameStateRequest struct {
	Operation SaveOperation
	GameState *types.GameState
	// Reply, when set, receives the result of the request. It must be buffered.
	Reply chan<- error
}

// ApplySaveRequest executes a request against the repository.
func ApplySaveRequest(ctx context.Context, repository repositories.Repository, req SaveGameStateRequest) error {
	switch req.Operation {
	case SaveOperationWrite:
		if req.GameState == nil {
			return fmt.Errorf("failed to save game state: game state is nil")
		}
		return repositories.SaveGameState(ctx, repository, req.GameState)
	case SaveOperationClear:
		return repositories.ClearGameState(ctx, repository)
	case SaveOperationSync:
		return nil
	default:
		return fmt.Errorf("unknown save operation: %d", req.Operation)
	}
}

// SaveGameStateWorker applies save requests from the game loop in order.
type SaveGameStateWorker struct {
	repository      repositories.Repository
	saveRequestChan <-chan SaveGameStateRequest
}

type NewSaveGameStateWorkerOptions struct {
	Repository      repositories.Repository
	SaveRequestChan <-chan SaveGameStateRequest
}

// NewSaveGameStateWorker creates a new SaveGameStateWorker.
// The worker processes save requests from the game loop so that the
// loop never waits on storage unless it asks for a reply.
func NewSaveGameStateWorker(opts NewSaveGameStateWorkerOptions) *SaveGameStateWorker {
	return &SaveGameStateWorker{
		repository:      opts.Repository,
		saveRequestChan: opts.SaveRequestChan,
	}
}

func (w *SaveGameStateWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.saveRequestChan:
			w.saveGameState(ctx, req)
		}
	}
}

// Flush applies every request still buffered in the channel.
// It must not run concurrently with Start.
func (w *SaveGameStateWorker) Flush(ctx context.Context) {
	for {
		select {
		case req := <-w.saveRequestChan:
			w.saveGameState(ctx, req)
		default:
			return
		}
	}
}

func (w *SaveGameStateWorker) saveGameState(ctx context.Context, req SaveGameStateRequest) {
	err := ApplySaveRequest(ctx, w.repository, req)
	if err != nil {
		log.Error("Failed to apply %s save request: %v", req.Operation, err)
	} else {
		log.Trace("Applied %s save request", req.Operation)
	}
	if req.Reply != nil {
		req.Reply <- err
	}
}
