package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/config"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "nba-leaders-dashboard"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return errors.Wrap(err, "load .env")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	out, closeOut, err := logOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeOut()

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  out,
	})

	srv, err := server.New(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv.Run(ctx, stop)
	return nil
}

// logOutput opens path for appending, or returns stdout when path is empty.
func logOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}
