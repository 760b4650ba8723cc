// oracle publishes a synthetic up/down probability for the current hourly
// bitcoin market to every connected WebSocket subscriber.
// Usage: go run ./cmd/oracle [--config configs/oracle.example.yaml]
//
// Environment variables:
//
//	SOFTWARE_WS_PORT - Broadcast port (default 5001)
//	ORACLE_NOISE     - Noise fraction in [0, 0.2] (default 0.02)
//	GAMMA_API_URL    - Gamma API base URL
//	LOG_LEVEL        - debug, info, warn or error
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/software-oracle/internal/api"
	"github.com/rickgao/software-oracle/internal/broadcast"
	"github.com/rickgao/software-oracle/internal/config"
	"github.com/rickgao/software-oracle/internal/oracle"
	"github.com/rickgao/software-oracle/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Validate has already checked the level.
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting oracle",
		"version", version.Version,
		"commit", version.Commit,
		"port", cfg.Server.Port,
		"noise", cfg.Oracle.Noise,
		"interval", cfg.Oracle.Interval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := broadcast.NewHub(cfg.Server.Greeting, logger)
	wsServer := broadcast.NewServer(hub, broadcast.ServerConfig{
		WriteTimeout: cfg.Server.WriteTimeout,
		PingInterval: cfg.Server.PingInterval,
	}, logger)

	gamma := api.NewClient(
		cfg.Gamma.URL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.Gamma.Timeout),
	)

	sampler := oracle.NewSampler(
		oracle.Config{Interval: cfg.Oracle.Interval},
		gamma,
		oracle.NewSynthesizer(cfg.Oracle.Noise, nil),
		hub,
		logger,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           createHandler(wsServer, hub, sampler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("websocket server listening",
			"port", cfg.Server.Port,
			"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port),
		)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sampler.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Hijacked WebSocket connections are not tracked by Shutdown.
		hub.CloseAll()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("oracle stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("oracle stopped")
}

// createHandler serves WebSocket subscribers on / and a JSON status report
// on /health.
func createHandler(ws http.Handler, hub *broadcast.Hub, sampler *oracle.Sampler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := struct {
			Status      string          `json:"status"`
			Version     string          `json:"version"`
			Hub         broadcast.Stats `json:"hub"`
			Sampler     oracle.Stats    `json:"sampler"`
			LastPayload json.RawMessage `json:"last_payload,omitempty"`
		}{
			Status:      "healthy",
			Version:     version.String(),
			Hub:         hub.Stats(),
			Sampler:     sampler.Stats(),
			LastPayload: hub.Last(),
		}

		// Nothing published yet.
		if health.LastPayload == nil {
			health.Status = "starting"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	})

	mux.Handle("/", ws)

	return mux
}
