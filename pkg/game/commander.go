package game

import (
	"context"
	"fmt"

	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/queue"
)

// Commander submits commands to a GameManager's queue and waits for the
// loop to reply. It is safe for concurrent use.
type Commander struct {
	queue queue.Queue
}

func NewCommander(q queue.Queue) *Commander {
	return &Commander{queue: q}
}

func (c *Commander) StartGame(ctx context.Context, rows, columns int) error {
	reply := make(chan error, 1)
	return submit(ctx, c.queue, &types.StartGameCommand{Rows: rows, Columns: columns, Reply: reply}, reply)
}

func (c *Commander) SelectCard(ctx context.Context, cardID int) error {
	reply := make(chan error, 1)
	return submit(ctx, c.queue, &types.SelectCardCommand{CardID: cardID, Reply: reply}, reply)
}

func (c *Commander) SaveGame(ctx context.Context) error {
	reply := make(chan error, 1)
	return submit(ctx, c.queue, &types.SaveGameCommand{Reply: reply}, reply)
}

func (c *Commander) LoadGame(ctx context.Context) (bool, error) {
	reply := make(chan types.LoadGameResult, 1)
	result, err := wait[types.LoadGameResult](ctx, c.queue, &types.LoadGameCommand{Reply: reply}, reply)
	if err != nil {
		return false, err
	}
	return result.Loaded, result.Err
}

func (c *Commander) EndGame(ctx context.Context) error {
	reply := make(chan error, 1)
	return submit(ctx, c.queue, &types.EndGameCommand{Reply: reply}, reply)
}

func (c *Commander) Pause(ctx context.Context, paused bool) error {
	reply := make(chan error, 1)
	return submit(ctx, c.queue, &types.PauseCommand{Paused: paused, Reply: reply}, reply)
}

func (c *Commander) Quit(ctx context.Context) error {
	reply := make(chan error, 1)
	return submit(ctx, c.queue, &types.QuitCommand{Reply: reply}, reply)
}

func submit(ctx context.Context, q queue.Queue, cmd interface{}, reply <-chan error) error {
	err, waitErr := wait(ctx, q, cmd, reply)
	if waitErr != nil {
		return waitErr
	}
	return err
}

func wait[T any](ctx context.Context, q queue.Queue, cmd interface{}, reply <-chan T) (T, error) {
	var zero T
	if err := q.Enqueue(cmd); err != nil {
		return zero, fmt.Errorf("failed to enqueue %T: %w", cmd, err)
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("failed to wait for %T: %w", cmd, ctx.Err())
	}
}
