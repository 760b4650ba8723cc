package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Config configures a probe run.
type Config struct {
	URL              string        // Endpoint to observe
	Timeout          time.Duration // Observation window
	PreviewCount     int           // Messages to preview
	PreviewChars     int           // Preview truncation length
	HandshakeTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:              "ws://127.0.0.1:5001",
		Timeout:          20 * time.Second,
		PreviewCount:     5,
		PreviewChars:     500,
		HandshakeTimeout: 10 * time.Second,
	}
}

// Report summarizes what a probe observed.
type Report struct {
	Messages    int
	Preview     []string
	Closed      bool // Server ended the connection
	CloseCode   int
	CloseReason string
	TimedOut    bool // Observation window elapsed
	Err         error
}

// Run observes cfg.URL until the window elapses, the connection closes or
// ctx is cancelled. It never retries.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) Report {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "probe", "url", cfg.URL)

	windowCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var report Report
	logger.Info("probing websocket", "timeout", cfg.Timeout)

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(windowCtx, cfg.URL, nil)
	if err != nil {
		report.Err = fmt.Errorf("dial %s: %w", cfg.URL, err)
		logger.Error("websocket error", "error", err)

		<-windowCtx.Done()
		report.TimedOut = errors.Is(windowCtx.Err(), context.DeadlineExceeded)
		finish(logger, cfg, &report)
		return report
	}
	logger.Info("websocket open")

	readDone := make(chan error, 1)
	go func() {
		readDone <- readLoop(conn, cfg, logger, &report)
	}()

	select {
	case err := <-readDone:
		recordClose(logger, &report, err)
	case <-windowCtx.Done():
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		conn.Close()
		// Wait for the reader before touching report.
		<-readDone
		report.TimedOut = errors.Is(windowCtx.Err(), context.DeadlineExceeded)
	}
	conn.Close()

	finish(logger, cfg, &report)
	return report
}

// recordClose fills in how the server ended the connection.
func recordClose(logger *slog.Logger, report *Report, err error) {
	report.Closed = true

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		report.CloseCode = closeErr.Code
		report.CloseReason = closeErr.Text
		logger.Info("websocket closed", "code", closeErr.Code, "reason", closeErr.Text)
		return
	}

	report.CloseCode = websocket.CloseAbnormalClosure
	report.Err = err
	logger.Info("websocket closed", "code", websocket.CloseAbnormalClosure, "error", err)
}

func finish(logger *slog.Logger, cfg Config, report *Report) {
	if report.TimedOut {
		logger.Info("timeout reached", "timeout", cfg.Timeout)
	}
	logger.Info("probe finished", "messages", report.Messages)
}

// readLoop counts messages until the connection fails or closes and returns
// the terminating error.
func readLoop(conn *websocket.Conn, cfg Config, logger *slog.Logger, report *Report) error {
	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		report.Messages++
		if report.Messages > cfg.PreviewCount {
			continue
		}
		text := preview(typ, data, cfg.PreviewChars)
		report.Preview = append(report.Preview, text)
		logger.Info("websocket message", "n", report.Messages, "data", text)
	}
}

// preview renders a message for logging. Text is cut to limit characters.
func preview(typ int, data []byte, limit int) string {
	if typ == websocket.BinaryMessage {
		return fmt.Sprintf("(binary %d bytes)", len(data))
	}
	runes := []rune(string(data))
	if limit >= 0 && len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}
