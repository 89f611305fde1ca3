package network

import (
	"context"
	"fmt"

	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/queue"
	"github.com/cbodonnell/flipmatch/pkg/state"
)

const (
	DefaultServerHostname = "localhost"
	DefaultServerPort     = 9090
)

// NetworkManager gives a presentation client one handle on the server:
// commands go over HTTP and events arrive over a websocket.
type NetworkManager struct {
	httpClient  *HTTPClient
	eventClient *EventClient
}

// NewNetworkManager creates a network manager for the server at serverURL.
// An empty serverURL uses DefaultServerHostname and DefaultServerPort.
// Received event messages are enqueued on messageQueue.
func NewNetworkManager(serverURL string, messageQueue queue.Queue) *NetworkManager {
	if serverURL == "" {
		serverURL = fmt.Sprintf("http://%s:%d", DefaultServerHostname, DefaultServerPort)
	}
	return &NetworkManager{
		httpClient:  NewHTTPClient(serverURL),
		eventClient: NewEventClient(serverURL, messageQueue),
	}
}

// Start connects the event stream and returns once it is established.
// Messages are read in the background until ctx is cancelled.
func (m *NetworkManager) Start(ctx context.Context) error {
	if err := m.eventClient.Connect(ctx); err != nil {
		return err
	}
	go func() {
		if err := m.eventClient.Listen(ctx); err != nil {
			log.Error("Event stream stopped: %v", err)
		}
	}()
	return nil
}

func (m *NetworkManager) StartGame(ctx context.Context, rows, columns int) (*state.View, error) {
	return m.httpClient.StartGame(ctx, rows, columns)
}

func (m *NetworkManager) SelectCard(ctx context.Context, cardID int) (*state.View, error) {
	return m.httpClient.SelectCard(ctx, cardID)
}

func (m *NetworkManager) SaveGame(ctx context.Context) error {
	return m.httpClient.SaveGame(ctx)
}

func (m *NetworkManager) LoadGame(ctx context.Context) (bool, *state.View, error) {
	return m.httpClient.LoadGame(ctx)
}

func (m *NetworkManager) EndGame(ctx context.Context) (*state.View, error) {
	return m.httpClient.EndGame(ctx)
}

func (m *NetworkManager) Resumable(ctx context.Context) (bool, error) {
	return m.httpClient.Resumable(ctx)
}
