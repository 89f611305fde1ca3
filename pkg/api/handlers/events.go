package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/cbodonnell/flipmatch/pkg/log"
)

const writeTimeout = 5 * time.Second

// EventSource hands out streams of encoded event messages.
type EventSource interface {
	Subscribe() (<-chan []byte, func())
}

// HandleEvents upgrades the request to a websocket and streams every event
// published after the connection opens. Client frames are ignored.
func HandleEvents(source EventSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Subscribe before the handshake completes so a client never misses
		// events published right after it connects.
		stream, unsubscribe := source.Subscribe()
		defer unsubscribe()

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		defer conn.CloseNow()

		ctx := conn.CloseRead(r.Context())
		log.Debug("New event stream from %s", r.RemoteAddr)
		for {
			select {
			case <-ctx.Done():
				log.Trace("Event stream closed for %s", r.RemoteAddr)
				return
			case msg, ok := <-stream:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "server shutting down")
					return
				}
				if err := writeMessage(ctx, conn, msg); err != nil {
					if !errors.Is(err, context.Canceled) {
						log.Error("Failed to write event to %s: %v", r.RemoteAddr, err)
					}
					return
				}
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}
