package broadcast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsSubscriber is a Subscriber backed by a WebSocket connection.
type wsSubscriber struct {
	id           string
	conn         *websocket.Conn
	writeTimeout time.Duration
	logger       *slog.Logger

	// Write serialization
	writeMu sync.Mutex

	done      chan struct{}
	closeOnce sync.Once
}

func newWSSubscriber(id string, conn *websocket.Conn, writeTimeout time.Duration, logger *slog.Logger) *wsSubscriber {
	return &wsSubscriber{
		id:           id,
		conn:         conn,
		writeTimeout: writeTimeout,
		logger:       logger.With("subscriber", id),
		done:         make(chan struct{}),
	}
}

func (c *wsSubscriber) ID() string {
	return c.id
}

// Send writes a text message with a write deadline.
func (c *wsSubscriber) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrSubscriberClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close sends a close frame and closes the connection. It is safe to call
// more than once.
func (c *wsSubscriber) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)

		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = c.conn.Close()
	})
	return err
}

// heartbeatLoop pings the peer until the subscriber is closed.
func (c *wsSubscriber) heartbeatLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(c.writeTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}
