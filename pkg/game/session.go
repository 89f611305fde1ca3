package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cbodonnell/flipmatch/pkg/deck"
	"github.com/cbodonnell/flipmatch/pkg/evaluator"
	"github.com/cbodonnell/flipmatch/pkg/events"
	"github.com/cbodonnell/flipmatch/pkg/game/constants"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
	"github.com/cbodonnell/flipmatch/pkg/shuffle"
	"github.com/cbodonnell/flipmatch/pkg/state"
	"github.com/cbodonnell/flipmatch/pkg/workers"
)

// Session orchestrates one game at a time: it owns the grid, the live cards
// and the match evaluator, and implements save and restore.
// A Session is not safe for concurrent use; GameManager serializes access.
type Session struct {
	pool          []types.Token
	repository    repositories.Repository
	notifier      events.Notifier
	scheduler     Scheduler
	rng           shuffle.Source
	mismatchDelay time.Duration
	stateManager  state.StateManager
	saveRequests  chan<- workers.SaveGameStateRequest

	evaluator *evaluator.MatchEvaluator

	sessionID uuid.UUID
	active    bool
	paused    bool
	rows      int
	columns   int
	cards     []*types.Card
	selection *types.Card
}

// NewSessionOptions contains options for creating a new Session.
type NewSessionOptions struct {
	// Pool is the token catalogue decks are drawn from.
	Pool []types.Token
	// Repository is optional. Without it save and load report
	// ErrPersistenceUnavailable.
	Repository repositories.Repository
	Notifier   events.Notifier
	// Scheduler runs the delayed mismatch hide. Use QueueScheduler when the
	// session is driven by a GameManager.
	Scheduler     Scheduler
	Rng           shuffle.Source
	MismatchDelay time.Duration
	// StateManager, when set, receives a view after every state change.
	StateManager state.StateManager
	// SaveRequestChan, when set, routes every write through a
	// SaveGameStateWorker. Otherwise writes go straight to Repository.
	SaveRequestChan chan<- workers.SaveGameStateRequest
}

// NewSession creates an idle session. A Scheduler is required: delayed
// callbacks must run on the goroutine that owns the session.
func NewSession(ctx context.Context, opts NewSessionOptions) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("%w: session requires a scheduler", types.ErrInvalidConfiguration)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = events.Nop()
	}
	rng := opts.Rng
	if rng == nil {
		rng = shuffle.Default()
	}
	mismatchDelay := opts.MismatchDelay
	if mismatchDelay <= 0 {
		mismatchDelay = constants.MismatchDelay
	}
	s := &Session{
		pool:          append([]types.Token(nil), opts.Pool...),
		repository:    opts.Repository,
		notifier:      notifier,
		scheduler:     opts.Scheduler,
		rng:           rng,
		mismatchDelay: mismatchDelay,
		stateManager:  opts.StateManager,
		saveRequests:  opts.SaveRequestChan,
		evaluator: evaluator.NewMatchEvaluator(ctx, evaluator.NewMatchEvaluatorOptions{
			Repository: opts.Repository,
			Notifier:   notifier,
		}),
	}
	s.publish(ctx)
	return s, nil
}

func (s *Session) Active() bool {
	return s.active
}

func (s *Session) SessionID() uuid.UUID {
	return s.sessionID
}

// StartGame deals a fresh rows x columns grid. Invalid dimensions leave the
// current session untouched.
func (s *Session) StartGame(ctx context.Context, rows, columns int) error {
	if rows <= 0 || columns <= 0 || (rows*columns)%2 != 0 {
		err := fmt.Errorf("%w: %dx%d grid needs an even, positive card count", types.ErrInvalidConfiguration, rows, columns)
		log.Error("Failed to start game: %v", err)
		return err
	}
	tokens, err := deck.Build(s.pool, rows*columns, s.rng)
	if err != nil {
		log.Error("Failed to start game: %v", err)
		return err
	}

	s.teardown()
	s.evaluator.Reset()
	s.sessionID = uuid.New()
	s.rows = rows
	s.columns = columns
	s.cards = make([]*types.Card, len(tokens))
	for i, token := range tokens {
		s.cards[i] = types.NewCard(i, s.sessionID, token)
	}
	s.active = true

	log.Info("Started game %s with a %dx%d grid", s.sessionID, rows, columns)
	s.notifier.Notify(events.GameStartedEvent{SessionID: s.sessionID.String(), Rows: rows, Columns: columns})
	s.publish(ctx)
	return nil
}

// SelectCard flips the card face up and forwards it to the evaluator.
func (s *Session) SelectCard(ctx context.Context, cardID int) error {
	if !s.active {
		return types.ErrNoActiveGame
	}
	if cardID < 0 || cardID >= len(s.cards) {
		return fmt.Errorf("%w: %d", types.ErrUnknownCard, cardID)
	}
	card := s.cards[cardID]
	if !card.Selectable() {
		return fmt.Errorf("%w: %d", types.ErrCardNotSelectable, cardID)
	}

	card.Show()
	s.notifier.Notify(events.CardShownEvent{CardID: card.ID})
	s.notifier.Notify(events.CardSelectedEvent{Card: card})

	outcome, resolved := s.evaluator.EvaluateSelection(ctx, card)
	if !resolved {
		s.selection = card
		s.publish(ctx)
		return nil
	}
	first, second := s.selection, card
	s.selection = nil

	switch outcome {
	case types.OutcomeMatched:
		for _, c := range []*types.Card{first, second} {
			c.MarkMatched()
			s.notifier.Notify(events.CardDeactivatedEvent{CardID: c.ID})
		}
		if s.evaluator.MatchedCount() >= len(s.cards) {
			log.Info("All %d cards matched in game %s", len(s.cards), s.sessionID)
			s.EndGame(ctx)
			return nil
		}
	case types.OutcomeMismatched:
		sessionID := s.sessionID
		s.scheduler.AfterFunc(sessionID, s.mismatchDelay, func(ctx context.Context) {
			s.hideMismatched(ctx, sessionID, first, second)
		})
	}
	s.publish(ctx)
	return nil
}

// hideMismatched turns a mismatched pair face down again. Callbacks that
// outlive their session are ignored.
func (s *Session) hideMismatched(ctx context.Context, sessionID uuid.UUID, cards ...*types.Card) {
	if !s.active || s.sessionID != sessionID {
		log.Debug("Ignoring mismatch hide for stale session %s", sessionID)
		return
	}
	for _, card := range cards {
		if card.SessionID != sessionID || card.Matched {
			continue
		}
		card.Hide()
		s.notifier.Notify(events.CardHiddenEvent{CardID: card.ID})
	}
	s.publish(ctx)
}

// EndGame discards the saved snapshot, lowers the resumable flag and
// returns the session to idle.
func (s *Session) EndGame(ctx context.Context) {
	if s.repository != nil {
		if err := s.persist(ctx, workers.SaveGameStateRequest{Operation: workers.SaveOperationClear}, false); err != nil {
			log.Error("Failed to clear resumable game flag: %v", err)
		}
	}
	if !s.active {
		s.publish(ctx)
		return
	}

	sessionID := s.sessionID
	s.teardown()
	log.Info("Ended game %s with score %d", sessionID, s.evaluator.Score())
	s.notifier.Notify(events.GameEndedEvent{SessionID: sessionID.String(), Score: s.evaluator.Score()})
	s.publish(ctx)
}

// SaveGame stores a snapshot of the active session and raises the
// resumable flag.
func (s *Session) SaveGame(ctx context.Context) error {
	if s.repository == nil {
		log.Warn("Save requested without a repository")
		return types.ErrPersistenceUnavailable
	}
	snapshot := s.Snapshot()
	if snapshot == nil {
		return types.ErrNoActiveGame
	}
	if err := s.persist(ctx, workers.SaveGameStateRequest{Operation: workers.SaveOperationWrite, GameState: snapshot}, true); err != nil {
		return err
	}
	log.Debug("Saved game %s", s.sessionID)
	return nil
}

// LoadGame restores the saved session. It reports false with a nil error
// when nothing is saved.
func (s *Session) LoadGame(ctx context.Context) (bool, error) {
	if s.repository == nil {
		log.Warn("Load requested without a repository")
		return false, types.ErrPersistenceUnavailable
	}
	if err := s.persist(ctx, workers.SaveGameStateRequest{Operation: workers.SaveOperationSync}, true); err != nil {
		return false, err
	}
	gameState, ok, err := repositories.LoadGameState(ctx, s.repository)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Info("No saved game to load")
		return false, nil
	}

	s.teardown()
	s.evaluator.RestoreGame(gameState.Score, gameState.Streak)
	s.sessionID = uuid.New()
	s.rows = gameState.Rows
	s.columns = gameState.Columns
	s.cards = make([]*types.Card, len(gameState.CardStates))
	for i, cardState := range gameState.CardStates {
		card := types.NewCard(i, s.sessionID, cardState.Token)
		if cardState.Matched {
			card.MarkMatched()
			s.evaluator.AddMatched(card)
		}
		s.cards[i] = card
	}
	s.active = true

	log.Info("Restored game %s with a %dx%d grid and score %d", s.sessionID, s.rows, s.columns, gameState.Score)
	s.notifier.Notify(events.GameStartedEvent{SessionID: s.sessionID.String(), Rows: s.rows, Columns: s.columns, Restored: true})
	for _, card := range s.cards {
		if card.Matched {
			s.notifier.Notify(events.CardDeactivatedEvent{CardID: card.ID})
		}
	}
	if s.evaluator.MatchedCount() >= len(s.cards) {
		s.EndGame(ctx)
		return true, nil
	}
	s.publish(ctx)
	return true, nil
}

// Pause handles the application moving to or from the background.
// Going to the background saves an active session.
func (s *Session) Pause(ctx context.Context, paused bool) {
	s.paused = paused
	if paused {
		s.autoSave(ctx)
	}
	s.publish(ctx)
}

// Quit saves an active session before the application exits.
func (s *Session) Quit(ctx context.Context) {
	s.autoSave(ctx)
}

func (s *Session) Paused() bool {
	return s.paused
}

// Snapshot returns the persistable state of the active session, or nil
// when idle.
func (s *Session) Snapshot() *types.GameState {
	if !s.active {
		return nil
	}
	cardStates := make([]types.CardState, len(s.cards))
	for i, card := range s.cards {
		cardStates[i] = types.CardState{
			Token:   card.Token,
			Matched: s.evaluator.IsMatched(card),
		}
	}
	return &types.GameState{
		Rows:       s.rows,
		Columns:    s.columns,
		Score:      s.evaluator.Score(),
		Streak:     s.evaluator.Streak(),
		CardStates: cardStates,
	}
}

// Cards returns copies of the live cards in grid order.
func (s *Session) Cards() []types.Card {
	cards := make([]types.Card, len(s.cards))
	for i, card := range s.cards {
		cards[i] = *card
	}
	return cards
}

func (s *Session) Status() types.Status {
	status := types.Status{
		Active:       s.active,
		Paused:       s.Paused(),
		Rows:         s.rows,
		Columns:      s.columns,
		Score:        s.evaluator.Score(),
		Streak:       s.evaluator.Streak(),
		HighScore:    s.evaluator.HighScore(),
		MatchedCount: s.evaluator.MatchedCount(),
		TotalCards:   len(s.cards),
	}
	if s.active {
		status.SessionID = s.sessionID.String()
	}
	return status
}

// teardown destroys the current cards. Pending callbacks for them are
// invalidated by the session ID change that follows.
func (s *Session) teardown() {
	for _, card := range s.cards {
		card.Interactable = false
	}
	s.cards = nil
	s.selection = nil
	s.active = false
	s.sessionID = uuid.Nil
	s.rows = 0
	s.columns = 0
}

func (s *Session) autoSave(ctx context.Context) {
	if s.repository == nil || !s.active {
		return
	}
	req := workers.SaveGameStateRequest{Operation: workers.SaveOperationWrite, GameState: s.Snapshot()}
	if s.saveRequests == nil {
		if err := workers.ApplySaveRequest(ctx, s.repository, req); err != nil {
			log.Error("Failed to auto-save game %s: %v", s.sessionID, err)
		}
		return
	}
	select {
	case s.saveRequests <- req:
		log.Debug("Queued auto-save for game %s", s.sessionID)
	default:
		log.Warn("Save request queue is full, dropping auto-save for game %s", s.sessionID)
	}
}

// persist applies req directly or through the save worker. When wait is
// true it returns the worker's result.
func (s *Session) persist(ctx context.Context, req workers.SaveGameStateRequest, wait bool) error {
	if s.saveRequests == nil {
		return workers.ApplySaveRequest(ctx, s.repository, req)
	}
	var reply chan error
	if wait {
		reply = make(chan error, 1)
		req.Reply = reply
	}
	select {
	case s.saveRequests <- req:
	case <-ctx.Done():
		return fmt.Errorf("failed to queue %s save request: %v", req.Operation, ctx.Err())
	}
	if !wait {
		return nil
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return fmt.Errorf("failed to wait for %s save request: %v", req.Operation, ctx.Err())
	}
}

// publish hands the current view to the state manager.
func (s *Session) publish(ctx context.Context) {
	if s.stateManager == nil {
		return
	}
	view := &state.View{
		Status: s.Status(),
		Cards:  s.Cards(),
	}
	if err := s.stateManager.Set(ctx, view); err != nil {
		log.Error("Failed to publish game view: %v", err)
	}
}
