// wsprobe connects to an oracle broadcast endpoint and reports what it sees.
// Usage: go run ./cmd/wsprobe [ws://host:port]
//
// Environment variables:
//
//	SOFTWARE_WS_URL  - Endpoint to probe when no argument is given
//	WS_PROBE_TIMEOUT - Observation window in milliseconds (default 20000)
//
// The probe always exits with status 0.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickgao/software-oracle/internal/config"
	"github.com/rickgao/software-oracle/internal/probe"
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	probeCfg, err := config.LoadProbe()
	if err != nil {
		logger.Warn("invalid probe config, using defaults", "error", err)
		defaults := config.ProbeDefaults()
		probeCfg = &defaults
	}

	cfg := probe.DefaultConfig()
	cfg.URL = probeCfg.URL
	cfg.Timeout = probeCfg.Timeout()
	if arg := flag.Arg(0); arg != "" {
		cfg.URL = arg
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The outcome is logged; it never changes the exit status.
	probe.Run(ctx, cfg, logger)
}
