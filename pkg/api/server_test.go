package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/cbodonnell/flipmatch/pkg/api/handlers"
	"github.com/cbodonnell/flipmatch/pkg/events"
	"github.com/cbodonnell/flipmatch/pkg/game"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/messages"
	"github.com/cbodonnell/flipmatch/pkg/queue"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
	"github.com/cbodonnell/flipmatch/pkg/shuffle"
	"github.com/cbodonnell/flipmatch/pkg/state"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pool := make([]types.Token, 8)
	for i := range pool {
		pool[i] = types.Token{ID: i + 1, VisualKey: fmt.Sprintf("token-%02d", i+1)}
	}
	repository := repositories.NewInMemoryRepository()
	commandQueue := queue.NewInMemoryQueue(queue.QueueBufferSize)
	stateManager := state.NewInMemoryStateManager()
	hub := NewEventHub()
	session, err := game.NewSession(ctx, game.NewSessionOptions{
		Pool:         pool,
		Repository:   repository,
		Notifier:     hub,
		Scheduler:    game.QueueScheduler{Queue: commandQueue},
		Rng:          shuffle.NewSource(11),
		StateManager: stateManager,
	})
	require.NoError(t, err)
	gm := game.NewGameManager(game.NewGameManagerOptions{
		CommandQueue: commandQueue,
		Session:      session,
		LoopInterval: time.Millisecond,
	})
	go gm.Start(ctx)

	server := httptest.NewServer(NewRouter(NewAPIServerOptions{
		Controller:   game.NewCommander(commandQueue),
		StateManager: stateManager,
		Repository:   repository,
		Events:       hub,
	}))
	t.Cleanup(server.Close)
	t.Cleanup(hub.Close)
	return server
}

func post(t *testing.T, server *httptest.Server, path string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAPI_gameFlow(t *testing.T) {
	server := newTestServer(t)

	resp := post(t, server, "/games", `{"rows":2,"columns":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	view := decode[state.View](t, resp)
	assert.True(t, view.Status.Active)
	assert.Len(t, view.Cards, 4)

	resp = post(t, server, "/cards/0/select", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decode[state.View](t, resp)
	assert.True(t, view.Cards[0].FaceUp)

	resp = post(t, server, "/cards/0/select", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = post(t, server, "/cards/99/select", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = post(t, server, "/games/save", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = get(t, server, "/games/resumable")
	assert.Equal(t, handlers.ResumableResponse{Resumable: true}, decode[handlers.ResumableResponse](t, resp))

	resp = post(t, server, "/games/load", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loaded := decode[handlers.LoadGameResponse](t, resp)
	assert.True(t, loaded.Loaded)
	assert.True(t, loaded.View.Status.Active)
	assert.False(t, loaded.View.Cards[0].FaceUp, "face-up flags are not persisted")

	resp = post(t, server, "/games/end", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[state.View](t, resp).Status.Active)

	resp = get(t, server, "/games/resumable")
	assert.False(t, decode[handlers.ResumableResponse](t, resp).Resumable)

	resp = post(t, server, "/games/load", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[handlers.LoadGameResponse](t, resp).Loaded)

	resp = get(t, server, "/games/current")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[state.View](t, resp).Status.Active)
}

func TestAPI_startGame_defaults(t *testing.T) {
	server := newTestServer(t)

	resp := post(t, server, "/games", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	view := decode[state.View](t, resp)
	assert.Equal(t, 4, view.Status.Rows)
	assert.Equal(t, 4, view.Status.Columns)
}

func TestAPI_errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{name: "odd grid", path: "/games", body: `{"rows":3,"columns":3}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", path: "/games", body: `{"rows":`, wantStatus: http.StatusBadRequest},
		{name: "select while idle", path: "/cards/0/select", wantStatus: http.StatusConflict},
		{name: "save while idle", path: "/games/save", wantStatus: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)
			resp := post(t, server, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, decode[handlers.ErrorResponse](t, resp).Error)
		})
	}
}

func TestAPI_lifecycle(t *testing.T) {
	server := newTestServer(t)
	require.Equal(t, http.StatusCreated, post(t, server, "/games", `{"rows":2,"columns":2}`).StatusCode)

	assert.Equal(t, http.StatusNoContent, post(t, server, "/lifecycle/pause", "").StatusCode)
	resp := get(t, server, "/games/resumable")
	assert.True(t, decode[handlers.ResumableResponse](t, resp).Resumable, "pausing saves the game")
	assert.True(t, decode[state.View](t, get(t, server, "/games/current")).Status.Paused)

	assert.Equal(t, http.StatusNoContent, post(t, server, "/lifecycle/resume", "").StatusCode)
	assert.False(t, decode[state.View](t, get(t, server, "/games/current")).Status.Paused)
	assert.Equal(t, http.StatusNoContent, post(t, server, "/lifecycle/quit", "").StatusCode)
}

func TestAPI_preflight(t *testing.T) {
	server := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, server.URL+"/games", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPI_events(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http")+"/events", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.Equal(t, http.StatusCreated, post(t, server, "/games", `{"rows":2,"columns":2}`).StatusCode)

	var got []string
	for len(got) < 2 {
		_, b, err := conn.Read(ctx)
		require.NoError(t, err)
		msg := messages.Message{}
		require.NoError(t, json.Unmarshal(b, &msg))
		got = append(got, msg.Type)
		if msg.Type == string(events.EventTypeGameStarted) {
			started := events.GameStartedEvent{}
			require.NoError(t, json.Unmarshal(msg.Payload, &started))
			assert.Equal(t, 2, started.Rows)
			assert.NotEmpty(t, started.SessionID)
		}
	}
	assert.Equal(t, []string{string(events.EventTypeScoreUpdated), string(events.EventTypeGameStarted)}, got)
}

func TestEventHub(t *testing.T) {
	hub := NewEventHub()
	stream, unsubscribe := hub.Subscribe()

	hub.Notify(events.ScoreUpdatedEvent{Score: 3})
	b := <-stream
	msg := messages.Message{}
	require.NoError(t, json.Unmarshal(b, &msg))
	assert.Equal(t, "scoreUpdated", msg.Type)
	assert.JSONEq(t, `{"score":3}`, string(msg.Payload))

	unsubscribe()
	unsubscribe()
	_, ok := <-stream
	assert.False(t, ok)
	assert.NotPanics(t, func() { hub.Notify(events.ScoreUpdatedEvent{Score: 4}) })

	hub.Close()
	closed, _ := hub.Subscribe()
	_, ok = <-closed
	assert.False(t, ok)
}

func TestEventHub_slowSubscriber(t *testing.T) {
	hub := NewEventHub()
	stream, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	for i := 0; i < messages.MessageBufferSize+10; i++ {
		hub.Notify(events.StreakUpdatedEvent{Streak: i})
	}
	assert.Len(t, stream, messages.MessageBufferSize)
}
