package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nhooyr.io/websocket"

	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/messages"
	"github.com/cbodonnell/flipmatch/pkg/queue"
)

// EventClient reads the server's event stream into a queue.
type EventClient struct {
	eventsURL    string
	messageQueue queue.Queue
	conn         *websocket.Conn
}

// NewEventClient creates a new event client. serverURL uses the http or
// https scheme; the websocket scheme is derived from it.
func NewEventClient(serverURL string, messageQueue queue.Queue) *EventClient {
	eventsURL := strings.TrimSuffix(serverURL, "/") + "/events"
	eventsURL = strings.Replace(eventsURL, "http", "ws", 1)
	return &EventClient{
		eventsURL:    eventsURL,
		messageQueue: messageQueue,
	}
}

func (c *EventClient) Connect(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, c.eventsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", c.eventsURL, err)
	}
	c.conn = conn
	return nil
}

// Listen enqueues every received message until ctx is cancelled or the
// server closes the stream.
func (c *EventClient) Listen(ctx context.Context) error {
	if c.conn == nil {
		return fmt.Errorf("event client is not connected")
	}
	defer c.conn.CloseNow()

	for {
		msg, err := ReadMessageFromWS(ctx, c.conn)
		if err != nil {
			if errors.Is(err, context.Canceled) || websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				log.Trace("Event stream closed: %v", err)
				return nil
			}
			return err
		}
		log.Debug("Received %s event", msg.Type)
		if err := c.messageQueue.Enqueue(msg); err != nil {
			log.Error("Failed to enqueue message: %v", err)
		}
	}
}

// ReadMessageFromWS reads a Message from a websocket connection.
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	_, b, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	msg := &messages.Message{}
	if err := json.Unmarshal(b, msg); err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}
	return msg, nil
}
