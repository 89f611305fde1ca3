package types

import "fmt"

// GameState is the persisted snapshot of a session.
// Face-up and interactable flags are derived from Matched on restore.
type GameState struct {
	Rows       int         `json:"rows"`
	Columns    int         `json:"columns"`
	Score      int         `json:"score"`
	Streak     int         `json:"streak"`
	CardStates []CardState `json:"cardStates"`
}

type CardState struct {
	Token   Token `json:"token"`
	Matched bool  `json:"matched"`
}

// Validate checks the snapshot shape before it is restored.
func (g *GameState) Validate() error {
	if g.Rows <= 0 || g.Columns <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfiguration, g.Rows, g.Columns)
	}
	total := g.Rows * g.Columns
	if total%2 != 0 {
		return fmt.Errorf("%w: odd card count %d", ErrInvalidConfiguration, total)
	}
	if len(g.CardStates) != total {
		return fmt.Errorf("%w: %d card states for a %dx%d grid", ErrInvalidConfiguration, len(g.CardStates), g.Rows, g.Columns)
	}
	if g.Score < 0 || g.Streak < 0 {
		return fmt.Errorf("%w: negative score or streak", ErrInvalidConfiguration)
	}
	return nil
}

// MatchedCount returns the number of card states marked as matched.
func (g *GameState) MatchedCount() int {
	n := 0
	for _, cs := range g.CardStates {
		if cs.Matched {
			n++
		}
	}
	return n
}

func (g *GameState) Copy() *GameState {
	newGameState := &GameState{
		Rows:       g.Rows,
		Columns:    g.Columns,
		Score:      g.Score,
		Streak:     g.Streak,
		CardStates: make([]CardState, len(g.CardStates)),
	}
	copy(newGameState.CardStates, g.CardStates)
	return newGameState
}
