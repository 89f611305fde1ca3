package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/flipmatch/pkg/game/constants"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/messages"
)

// Save stores value under key as JSON.
func Save[T any](ctx context.Context, r Repository, key string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", key, err)
	}
	if err := r.SaveValue(ctx, key, b); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Load reads the JSON value stored under key.
// A missing or undecodable value is reported as absent, not as an error.
func Load[T any](ctx context.Context, r Repository, key string) (T, bool, error) {
	var value T
	b, err := r.LoadValue(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			return value, false, nil
		}
		return value, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(b, &value); err != nil {
		log.Warn("Discarding corrupt value for %s: %v", key, err)
		var zero T
		return zero, false, nil
	}
	return value, true, nil
}

// SaveGameState stores the session snapshot and raises the resumable flag.
func SaveGameState(ctx context.Context, r Repository, state *types.GameState) error {
	b, err := messages.SerializeGameState(state)
	if err != nil {
		return err
	}
	if err := r.SaveValue(ctx, constants.SaveGameKey, b); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return SetPreviousGameExists(ctx, r, true)
}

// LoadGameState reads the session snapshot.
// A missing, undecodable or malformed snapshot is reported as absent.
func LoadGameState(ctx context.Context, r Repository) (*types.GameState, bool, error) {
	b, err := r.LoadValue(ctx, constants.SaveGameKey)
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load game state: %w", err)
	}
	state, err := messages.DeserializeGameState(b)
	if err != nil {
		log.Warn("Discarding corrupt game state: %v", err)
		return nil, false, nil
	}
	if err := state.Validate(); err != nil {
		log.Warn("Discarding invalid game state: %v", err)
		return nil, false, nil
	}
	return state, true, nil
}

// ClearGameState deletes the session snapshot and lowers the resumable flag.
func ClearGameState(ctx context.Context, r Repository) error {
	if err := r.DeleteValue(ctx, constants.SaveGameKey); err != nil {
		return fmt.Errorf("failed to clear game state: %w", err)
	}
	return SetPreviousGameExists(ctx, r, false)
}

func SetPreviousGameExists(ctx context.Context, r Repository, exists bool) error {
	return Save(ctx, r, constants.PreviousGameKey, exists)
}

func PreviousGameExists(ctx context.Context, r Repository) (bool, error) {
	exists, _, err := Load[bool](ctx, r, constants.PreviousGameKey)
	return exists, err
}

func SaveHighScore(ctx context.Context, r Repository, highScore int) error {
	return Save(ctx, r, constants.HighScoreKey, highScore)
}

func LoadHighScore(ctx context.Context, r Repository) (int, error) {
	highScore, _, err := Load[int](ctx, r, constants.HighScoreKey)
	return highScore, err
}
