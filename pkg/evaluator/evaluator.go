package evaluator

import (
	"context"

	"github.com/cbodonnell/flipmatch/pkg/events"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
)

// MatchEvaluator pairs consecutive selections and keeps score, streak and
// high score. It references cards but never creates or destroys them.
// It is not safe for concurrent use.
type MatchEvaluator struct {
	repository repositories.Repository
	notifier   events.Notifier

	score     int
	streak    int
	highScore int
	pending   []*types.Card
	matched   map[int]struct{}
}

// NewMatchEvaluatorOptions contains options for creating a new MatchEvaluator.
// A nil Repository keeps the high score in memory only.
type NewMatchEvaluatorOptions struct {
	Repository repositories.Repository
	Notifier   events.Notifier
}

// NewMatchEvaluator creates an evaluator and loads the persisted high score.
func NewMatchEvaluator(ctx context.Context, opts NewMatchEvaluatorOptions) *MatchEvaluator {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = events.Nop()
	}
	e := &MatchEvaluator{
		repository: opts.Repository,
		notifier:   notifier,
		pending:    make([]*types.Card, 0, 2),
		matched:    make(map[int]struct{}),
	}
	if e.repository != nil {
		highScore, err := repositories.LoadHighScore(ctx, e.repository)
		if err != nil {
			log.Error("Failed to load high score: %v", err)
		}
		e.highScore = highScore
	}
	return e
}

func (e *MatchEvaluator) Score() int {
	return e.score
}

func (e *MatchEvaluator) Streak() int {
	return e.streak
}

func (e *MatchEvaluator) HighScore() int {
	return e.highScore
}

// Pending returns the number of selections waiting for a partner.
func (e *MatchEvaluator) Pending() int {
	return len(e.pending)
}

func (e *MatchEvaluator) MatchedCount() int {
	return len(e.matched)
}

// EvaluateSelection records a selection. When it completes a pair the pair is
// resolved immediately and the outcome is returned with resolved set to true.
// Callers must not submit matched or non-interactable cards.
func (e *MatchEvaluator) EvaluateSelection(ctx context.Context, card *types.Card) (outcome types.Outcome, resolved bool) {
	e.pending = append(e.pending, card)
	if len(e.pending) < 2 {
		return types.OutcomeMismatched, false
	}

	first, second := e.pending[0], e.pending[1]
	e.pending = e.pending[:0]
	return e.checkMatch(ctx, first, second), true
}

func (e *MatchEvaluator) checkMatch(ctx context.Context, first, second *types.Card) types.Outcome {
	var outcome types.Outcome
	if first.Token.ID == second.Token.ID {
		e.streak++
		e.score += e.streak
		e.notifier.Notify(events.ScoreUpdatedEvent{Score: e.score})
		if e.streak > 1 {
			e.notifier.Notify(events.StreakUpdatedEvent{Streak: e.streak})
		}
		if e.score > e.highScore {
			e.highScore = e.score
			e.persistHighScore(ctx)
			e.notifier.Notify(events.HighScoreUpdatedEvent{HighScore: e.highScore})
		}
		e.matched[first.ID] = struct{}{}
		e.matched[second.ID] = struct{}{}
		outcome = types.OutcomeMatched
	} else {
		e.streak = 0
		e.notifier.Notify(events.StreakUpdatedEvent{Streak: e.streak})
		outcome = types.OutcomeMismatched
	}
	e.notifier.Notify(events.MatchCheckedEvent{Outcome: outcome, First: first, Second: second})
	return outcome
}

func (e *MatchEvaluator) persistHighScore(ctx context.Context) {
	if e.repository == nil {
		return
	}
	if err := repositories.SaveHighScore(ctx, e.repository, e.highScore); err != nil {
		log.Error("Failed to save high score %d: %v", e.highScore, err)
	}
}

func (e *MatchEvaluator) IsMatched(card *types.Card) bool {
	if card == nil {
		return false
	}
	_, ok := e.matched[card.ID]
	return ok
}

// AddMatched marks a restored card as matched without scoring it.
func (e *MatchEvaluator) AddMatched(card *types.Card) {
	e.matched[card.ID] = struct{}{}
}

// Reset clears the session state. The high score is kept.
func (e *MatchEvaluator) Reset() {
	e.score = 0
	e.streak = 0
	e.pending = e.pending[:0]
	clear(e.matched)
	e.notifier.Notify(events.ScoreUpdatedEvent{Score: e.score})
}

// RestoreGame reinitializes score and streak from a saved session. Matched
// membership is rebuilt by the caller through AddMatched.
func (e *MatchEvaluator) RestoreGame(score, streak int) {
	e.pending = e.pending[:0]
	clear(e.matched)
	e.score = score
	e.streak = streak
	e.notifier.Notify(events.ScoreUpdatedEvent{Score: e.score})
}
