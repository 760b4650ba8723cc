package broadcast

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ServerConfig configures the WebSocket endpoint.
type ServerConfig struct {
	WriteTimeout time.Duration // Write deadline per message
	PingInterval time.Duration // Keepalive ping cadence
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		WriteTimeout: 5 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

// Server upgrades HTTP requests to WebSocket subscribers of a Hub.
type Server struct {
	hub      *Hub
	cfg      ServerConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a Server feeding hub.
func NewServer(hub *Hub, cfg ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		hub:    hub,
		cfg:    cfg,
		logger: logger.With("component", "ws_server"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and blocks until the peer goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := newWSSubscriber(uuid.NewString(), conn, s.cfg.WriteTimeout, s.logger)
	defer sub.Close()

	if err := s.hub.Join(sub); err != nil {
		s.logger.Warn("subscriber join failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer s.hub.Leave(sub.ID())

	go sub.heartbeatLoop(s.cfg.PingInterval)

	// Subscribers are not expected to send anything; drain until the
	// connection errors or closes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.logger.Debug("subscriber read ended", "id", sub.ID(), "error", err)
			return
		}
	}
}
