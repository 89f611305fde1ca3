package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbodonnell/flipmatch/pkg/events"
	"github.com/cbodonnell/flipmatch/pkg/events/eventstest"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
	"github.com/cbodonnell/flipmatch/pkg/shuffle"
	"github.com/cbodonnell/flipmatch/pkg/state"
	"github.com/cbodonnell/flipmatch/pkg/workers"
)

type scheduledCall struct {
	sessionID uuid.UUID
	delay     time.Duration
	fn        func(ctx context.Context)
}

// manualScheduler holds callbacks until the test fires them.
type manualScheduler struct {
	calls []scheduledCall
}

func (m *manualScheduler) AfterFunc(sessionID uuid.UUID, d time.Duration, fn func(ctx context.Context)) {
	m.calls = append(m.calls, scheduledCall{sessionID: sessionID, delay: d, fn: fn})
}

func (m *manualScheduler) RunAll(ctx context.Context) {
	calls := m.calls
	m.calls = nil
	for _, c := range calls {
		c.fn(ctx)
	}
}

func testPool(n int) []types.Token {
	pool := make([]types.Token, n)
	for i := range pool {
		pool[i] = types.Token{ID: i + 1, VisualKey: fmt.Sprintf("token-%02d", i+1)}
	}
	return pool
}

func mustNewSession(t *testing.T, opts NewSessionOptions) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), opts)
	require.NoError(t, err)
	return s
}

type sessionFixture struct {
	session   *Session
	scheduler *manualScheduler
	recorder  *eventstest.Recorder
	repo      repositories.Repository
}

func newSessionFixture(t *testing.T, repo repositories.Repository) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		scheduler: &manualScheduler{},
		recorder:  &eventstest.Recorder{},
		repo:      repo,
	}
	f.session = mustNewSession(t, NewSessionOptions{
		Pool:          testPool(8),
		Repository:    repo,
		Notifier:      f.recorder,
		Scheduler:     f.scheduler,
		Rng:           shuffle.NewSource(42),
		MismatchDelay: time.Second,
	})
	return f
}

// partnerOf returns the ID of the other card sharing id's token.
func partnerOf(t *testing.T, s *Session, id int) int {
	t.Helper()
	cards := s.Cards()
	for _, c := range cards {
		if c.ID != id && c.Token.ID == cards[id].Token.ID {
			return c.ID
		}
	}
	t.Fatalf("card %d has no partner", id)
	return -1
}

// strangerOf returns the ID of a selectable card whose token differs from id's.
func strangerOf(t *testing.T, s *Session, id int) int {
	t.Helper()
	cards := s.Cards()
	for _, c := range cards {
		if c.Token.ID != cards[id].Token.ID && !c.FaceUp && !c.Matched {
			return c.ID
		}
	}
	t.Fatalf("card %d has no stranger", id)
	return -1
}

func TestSession_StartGame(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)

	require.NoError(t, f.session.StartGame(ctx, 4, 4))

	status := f.session.Status()
	assert.True(t, status.Active)
	assert.Equal(t, 4, status.Rows)
	assert.Equal(t, 4, status.Columns)
	assert.Equal(t, 16, status.TotalCards)
	assert.Equal(t, 0, status.Score)
	assert.NotEmpty(t, status.SessionID)

	counts := map[int]int{}
	for i, card := range f.session.Cards() {
		assert.Equal(t, i, card.ID)
		assert.Equal(t, f.session.SessionID(), card.SessionID)
		assert.False(t, card.FaceUp)
		assert.False(t, card.Matched)
		assert.True(t, card.Interactable)
		counts[card.Token.ID]++
	}
	for tokenID, n := range counts {
		assert.Equal(t, 2, n, "token %d", tokenID)
	}

	started := f.recorder.OfType(events.EventTypeGameStarted)
	require.Len(t, started, 1)
	assert.Equal(t, events.GameStartedEvent{SessionID: status.SessionID, Rows: 4, Columns: 4}, started[0])
}

func TestSession_StartGame_invalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		columns int
	}{
		{name: "odd card count", rows: 3, columns: 3},
		{name: "zero rows", rows: 0, columns: 4},
		{name: "negative columns", rows: 2, columns: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newSessionFixture(t, nil)
			require.NoError(t, f.session.StartGame(ctx, 2, 2))
			before := f.session.Status()
			cardsBefore := f.session.Cards()
			f.recorder.Reset()

			err := f.session.StartGame(ctx, tt.rows, tt.columns)

			assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
			assert.Equal(t, before, f.session.Status())
			assert.Equal(t, cardsBefore, f.session.Cards())
			assert.Empty(t, f.recorder.Events())
		})
	}
}

func TestSession_StartGame_emptyPool(t *testing.T) {
	s := mustNewSession(t, NewSessionOptions{Scheduler: &manualScheduler{}})
	err := s.StartGame(context.Background(), 2, 2)
	assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
	assert.False(t, s.Active())
}

func TestSession_SelectCard_match(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)
	require.NoError(t, f.session.StartGame(ctx, 2, 4))
	partner := partnerOf(t, f.session, 0)
	f.recorder.Reset()

	require.NoError(t, f.session.SelectCard(ctx, 0))
	require.NoError(t, f.session.SelectCard(ctx, partner))

	cards := f.session.Cards()
	for _, id := range []int{0, partner} {
		assert.True(t, cards[id].Matched)
		assert.True(t, cards[id].FaceUp)
		assert.False(t, cards[id].Interactable)
	}
	assert.Equal(t, 1, f.session.Status().Score)
	assert.Equal(t, 2, f.session.Status().MatchedCount)
	assert.Empty(t, f.scheduler.calls)

	got := f.recorder.Events()
	require.Len(t, got, 9)
	assert.Equal(t, events.CardShownEvent{CardID: 0}, got[0])
	assert.IsType(t, events.CardSelectedEvent{}, got[1])
	assert.Equal(t, events.CardShownEvent{CardID: partner}, got[2])
	assert.IsType(t, events.CardSelectedEvent{}, got[3])
	assert.Equal(t, events.ScoreUpdatedEvent{Score: 1}, got[4])
	assert.Equal(t, events.HighScoreUpdatedEvent{HighScore: 1}, got[5])
	assert.IsType(t, events.MatchCheckedEvent{}, got[6])
	assert.Equal(t, events.CardDeactivatedEvent{CardID: 0}, got[7])
	assert.Equal(t, events.CardDeactivatedEvent{CardID: partner}, got[8])
}

func TestSession_SelectCard_mismatch(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)
	require.NoError(t, f.session.StartGame(ctx, 2, 4))
	other := strangerOf(t, f.session, 0)

	require.NoError(t, f.session.SelectCard(ctx, 0))
	require.NoError(t, f.session.SelectCard(ctx, other))

	cards := f.session.Cards()
	assert.True(t, cards[0].FaceUp)
	assert.True(t, cards[other].FaceUp)
	require.Len(t, f.scheduler.calls, 1)
	assert.Equal(t, time.Second, f.scheduler.calls[0].delay)
	assert.Equal(t, f.session.SessionID(), f.scheduler.calls[0].sessionID)
	assert.ErrorIs(t, f.session.SelectCard(ctx, 0), types.ErrCardNotSelectable, "face-up card waits for the hide")

	f.recorder.Reset()
	f.scheduler.RunAll(ctx)

	cards = f.session.Cards()
	assert.False(t, cards[0].FaceUp)
	assert.False(t, cards[other].FaceUp)
	assert.True(t, cards[0].Interactable)
	assert.Equal(t, []events.Event{
		events.CardHiddenEvent{CardID: 0},
		events.CardHiddenEvent{CardID: other},
	}, f.recorder.Events())
	assert.NoError(t, f.session.SelectCard(ctx, 0))
}

func TestSession_SelectCard_overlappingMismatches(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)
	require.NoError(t, f.session.StartGame(ctx, 2, 4))

	a := 0
	b := strangerOf(t, f.session, a)
	require.NoError(t, f.session.SelectCard(ctx, a))
	require.NoError(t, f.session.SelectCard(ctx, b))

	// A second pair is played before the first hide fires.
	c, d := -1, -1
	cards := f.session.Cards()
	for _, card := range cards {
		if card.FaceUp {
			continue
		}
		if p := partnerOf(t, f.session, card.ID); !cards[p].FaceUp {
			c, d = card.ID, p
			break
		}
	}
	require.NotEqual(t, -1, c)
	require.NoError(t, f.session.SelectCard(ctx, c))
	require.NoError(t, f.session.SelectCard(ctx, d))
	assert.Equal(t, 2, f.session.Status().MatchedCount)

	f.scheduler.RunAll(ctx)

	cards = f.session.Cards()
	assert.False(t, cards[a].FaceUp)
	assert.False(t, cards[b].FaceUp)
	assert.True(t, cards[c].FaceUp, "matched cards stay face up")
	assert.True(t, cards[d].Matched)
}

func TestSession_SelectCard_staleTimer(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)
	require.NoError(t, f.session.StartGame(ctx, 2, 4))
	other := strangerOf(t, f.session, 0)
	require.NoError(t, f.session.SelectCard(ctx, 0))
	require.NoError(t, f.session.SelectCard(ctx, other))
	require.Len(t, f.scheduler.calls, 1)

	require.NoError(t, f.session.StartGame(ctx, 2, 2))
	require.NoError(t, f.session.SelectCard(ctx, 0))
	f.recorder.Reset()

	assert.NotPanics(t, func() { f.scheduler.RunAll(ctx) })

	assert.Empty(t, f.recorder.OfType(events.EventTypeCardHidden))
	assert.True(t, f.session.Cards()[0].FaceUp, "new session's card is untouched")
}

func TestSession_SelectCard_rejected(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)

	assert.ErrorIs(t, f.session.SelectCard(ctx, 0), types.ErrNoActiveGame)

	require.NoError(t, f.session.StartGame(ctx, 2, 4))
	assert.ErrorIs(t, f.session.SelectCard(ctx, -1), types.ErrUnknownCard)
	assert.ErrorIs(t, f.session.SelectCard(ctx, 8), types.ErrUnknownCard)

	partner := partnerOf(t, f.session, 0)
	require.NoError(t, f.session.SelectCard(ctx, 0))
	assert.ErrorIs(t, f.session.SelectCard(ctx, 0), types.ErrCardNotSelectable)
	require.NoError(t, f.session.SelectCard(ctx, partner))
	assert.ErrorIs(t, f.session.SelectCard(ctx, partner), types.ErrCardNotSelectable)
	assert.Equal(t, 1, f.session.Status().Score)
}

func TestSession_completion(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInMemoryRepository()
	require.NoError(t, repositories.SetPreviousGameExists(ctx, repo, true))
	f := newSessionFixture(t, repo)
	require.NoError(t, f.session.StartGame(ctx, 1, 2))
	sessionID := f.session.Status().SessionID

	require.NoError(t, f.session.SelectCard(ctx, 0))
	require.NoError(t, f.session.SelectCard(ctx, 1))

	assert.False(t, f.session.Active())
	assert.Equal(t, []events.Event{events.GameEndedEvent{SessionID: sessionID, Score: 1}}, f.recorder.OfType(events.EventTypeGameEnded))
	exists, err := repositories.PreviousGameExists(ctx, repo)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 1, f.session.Status().HighScore)
}

func TestSession_SaveGame_LoadGame(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInMemoryRepository()
	f := newSessionFixture(t, repo)
	require.NoError(t, f.session.StartGame(ctx, 2, 4))
	partner := partnerOf(t, f.session, 0)
	require.NoError(t, f.session.SelectCard(ctx, 0))
	require.NoError(t, f.session.SelectCard(ctx, partner))
	require.NoError(t, f.session.SaveGame(ctx))
	saved := f.session.Snapshot()

	exists, err := repositories.PreviousGameExists(ctx, repo)
	require.NoError(t, err)
	assert.True(t, exists)

	restored := newSessionFixture(t, repo)
	loaded, err := restored.session.LoadGame(ctx)
	require.NoError(t, err)
	require.True(t, loaded)

	assert.Equal(t, saved, restored.session.Snapshot())
	status := restored.session.Status()
	assert.True(t, status.Active)
	assert.Equal(t, 2, status.Rows)
	assert.Equal(t, 4, status.Columns)
	assert.Equal(t, 1, status.Score)
	assert.Equal(t, 1, status.Streak)
	assert.Equal(t, 2, status.MatchedCount)
	assert.Equal(t, 1, status.HighScore)

	for _, card := range restored.session.Cards() {
		if card.ID == 0 || card.ID == partner {
			assert.True(t, card.Matched)
			assert.True(t, card.FaceUp)
			assert.False(t, card.Interactable)
		} else {
			assert.False(t, card.Matched)
			assert.False(t, card.FaceUp)
			assert.True(t, card.Interactable)
		}
	}

	started := restored.recorder.OfType(events.EventTypeGameStarted)
	require.Len(t, started, 1)
	assert.True(t, started[0].(events.GameStartedEvent).Restored)
	assert.Len(t, restored.recorder.OfType(events.EventTypeCardDeactivated), 2)
}

func TestSession_LoadGame_nothingSaved(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, repositories.NewInMemoryRepository())

	loaded, err := f.session.LoadGame(ctx)

	assert.NoError(t, err)
	assert.False(t, loaded)
	assert.False(t, f.session.Active())
	assert.Empty(t, f.recorder.OfType(events.EventTypeGameStarted))
}

func TestSession_persistenceUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)
	require.NoError(t, f.session.StartGame(ctx, 2, 2))

	assert.ErrorIs(t, f.session.SaveGame(ctx), types.ErrPersistenceUnavailable)
	loaded, err := f.session.LoadGame(ctx)
	assert.ErrorIs(t, err, types.ErrPersistenceUnavailable)
	assert.False(t, loaded)
	assert.True(t, f.session.Active())

	assert.NotPanics(t, func() {
		f.session.Pause(ctx, true)
		f.session.Quit(ctx)
		f.session.EndGame(ctx)
	})
}

func TestSession_SaveGame_idle(t *testing.T) {
	f := newSessionFixture(t, repositories.NewInMemoryRepository())
	assert.ErrorIs(t, f.session.SaveGame(context.Background()), types.ErrNoActiveGame)
}

func TestSession_EndGame(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInMemoryRepository()
	f := newSessionFixture(t, repo)
	require.NoError(t, f.session.StartGame(ctx, 2, 2))
	require.NoError(t, f.session.SaveGame(ctx))

	f.session.EndGame(ctx)

	exists, err := repositories.PreviousGameExists(ctx, repo)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.False(t, f.session.Active())
	assert.Empty(t, f.session.Cards())
	assert.Len(t, f.recorder.OfType(events.EventTypeGameEnded), 1)

	// Ending while idle only lowers the flag.
	require.NoError(t, repositories.SetPreviousGameExists(ctx, repo, true))
	f.session.EndGame(ctx)
	exists, err = repositories.PreviousGameExists(ctx, repo)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Len(t, f.recorder.OfType(events.EventTypeGameEnded), 1)
}

func TestSession_LoadGame_afterEnd(t *testing.T) {
	tests := []struct {
		name string
		end  func(t *testing.T, s *Session)
	}{
		{
			name: "ended explicitly",
			end: func(t *testing.T, s *Session) {
				s.EndGame(context.Background())
			},
		},
		{
			name: "won after a save",
			end: func(t *testing.T, s *Session) {
				ctx := context.Background()
				for s.Active() {
					id := -1
					for _, card := range s.Cards() {
						if !card.Matched {
							id = card.ID
							break
						}
					}
					require.NotEqual(t, -1, id)
					partner := partnerOf(t, s, id)
					require.NoError(t, s.SelectCard(ctx, id))
					require.NoError(t, s.SelectCard(ctx, partner))
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := repositories.NewInMemoryRepository()
			f := newSessionFixture(t, repo)
			require.NoError(t, f.session.StartGame(ctx, 2, 2))
			require.NoError(t, f.session.SaveGame(ctx))

			tt.end(t, f.session)

			loaded, err := f.session.LoadGame(ctx)
			require.NoError(t, err)
			assert.False(t, loaded)
			assert.False(t, f.session.Active())
			exists, err := repositories.PreviousGameExists(ctx, repo)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestNewSession_requiresScheduler(t *testing.T) {
	s, err := NewSession(context.Background(), NewSessionOptions{Pool: testPool(4)})
	assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
	assert.Nil(t, s)
}

func TestSession_autoSave(t *testing.T) {
	tests := []struct {
		name     string
		start    bool
		trigger  func(ctx context.Context, s *Session)
		wantSave bool
	}{
		{
			name:     "pause while active",
			start:    true,
			trigger:  func(ctx context.Context, s *Session) { s.Pause(ctx, true) },
			wantSave: true,
		},
		{
			name:     "quit while active",
			start:    true,
			trigger:  func(ctx context.Context, s *Session) { s.Quit(ctx) },
			wantSave: true,
		},
		{
			name:    "resume while active",
			start:   true,
			trigger: func(ctx context.Context, s *Session) { s.Pause(ctx, false) },
		},
		{
			name:    "pause while idle",
			trigger: func(ctx context.Context, s *Session) { s.Pause(ctx, true) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := repositories.NewInMemoryRepository()
			f := newSessionFixture(t, repo)
			if tt.start {
				require.NoError(t, f.session.StartGame(ctx, 2, 2))
			}

			tt.trigger(ctx, f.session)

			exists, err := repositories.PreviousGameExists(ctx, repo)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSave, exists)
			if tt.wantSave {
				saved, ok, err := repositories.LoadGameState(ctx, repo)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, f.session.Snapshot(), saved)
			}
		})
	}
}

func TestSession_saveWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repositories.NewInMemoryRepository()
	requests := make(chan workers.SaveGameStateRequest, workers.SaveRequestBufferSize)
	worker := workers.NewSaveGameStateWorker(workers.NewSaveGameStateWorkerOptions{
		Repository:      repo,
		SaveRequestChan: requests,
	})
	go worker.Start(ctx)

	s := mustNewSession(t, NewSessionOptions{
		Pool:            testPool(4),
		Repository:      repo,
		Scheduler:       &manualScheduler{},
		Rng:             shuffle.NewSource(7),
		SaveRequestChan: requests,
	})
	require.NoError(t, s.StartGame(ctx, 2, 2))
	s.Pause(ctx, true)
	saved := s.Snapshot()

	loaded, err := s.LoadGame(ctx)
	require.NoError(t, err)
	require.True(t, loaded, "load waits for the queued auto-save")
	assert.Equal(t, saved, s.Snapshot())

	s.EndGame(ctx)
	require.NoError(t, s.persist(ctx, workers.SaveGameStateRequest{Operation: workers.SaveOperationSync}, true))
	exists, err := repositories.PreviousGameExists(ctx, repo)
	require.NoError(t, err)
	assert.False(t, exists)
	loaded, err = s.LoadGame(ctx)
	require.NoError(t, err)
	assert.False(t, loaded, "ending discards the queued snapshot")
}

func TestSession_publishesView(t *testing.T) {
	ctx := context.Background()
	stateManager := state.NewInMemoryStateManager()
	s := mustNewSession(t, NewSessionOptions{
		Pool:         testPool(4),
		Scheduler:    &manualScheduler{},
		Rng:          shuffle.NewSource(1),
		StateManager: stateManager,
	})
	require.NoError(t, s.StartGame(ctx, 2, 2))
	require.NoError(t, s.SelectCard(ctx, 0))

	view, err := stateManager.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Status(), view.Status)
	assert.Equal(t, s.Cards(), view.Cards)
	assert.True(t, view.Cards[0].FaceUp)
}
