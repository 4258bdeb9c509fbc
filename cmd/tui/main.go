package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/config"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/poller"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/server"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/tui"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/tui/prefs"
)

const (
	appVersion     = "dev"
	serviceName    = "nba-leaders-tui"
	defaultLogFile = "nba-leaders-tui.log"
)

func main() {
	if os.Getenv("SKIP_TUI_RUN") == "1" {
		return
	}
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	prefsPath := fs.String("prefs", "", "preferences file (default "+prefs.DefaultPath()+")")
	serverURL := fs.String("server", "", "read stats from a running server instead of upstream")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := start(*prefsPath, *serverURL); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		return 1
	}
	return 0
}

func start(prefsPath, serverURL string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return errors.Wrap(err, "load .env")
	}
	cfg := config.Load()

	userPrefs, prefsErr := prefs.Load(prefsPath)
	applyPrefs(&cfg, userPrefs, serverURL)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if err := leaders.CheckColumns(); err != nil {
		return err
	}

	// The terminal belongs to bubbletea, so logs always go to a file.
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = defaultLogFile
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open log file %s", logPath)
	}
	defer logFile.Close()

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  logFile,
	})
	if prefsErr != nil {
		logging.Warn(logger, "using default preferences", "error", prefsErr)
	}

	controller := dashboard.NewController(logger, nil)
	provider := server.BuildProvider(cfg.Provider, logger)
	plr := poller.New(provider, controller, logger, nil, cfg.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(tui.Options{
		Context:    ctx,
		Source:     controller,
		Poller:     plr,
		Logger:     logger,
		DefaultTab: userPrefs.DefaultTab,
		Accent:     userPrefs.Accent,
	})
}

// applyPrefs lets preferences and the -server flag override the environment.
// A server URL switches the provider to the remote client.
func applyPrefs(cfg *config.Config, p prefs.Prefs, serverURL string) {
	if p.PollSeconds > 0 {
		cfg.PollInterval = p.PollInterval()
	}
	if serverURL == "" {
		serverURL = p.ServerURL
	}
	if serverURL != "" {
		cfg.Provider.Name = config.ProviderRemote
		cfg.Provider.StatsBaseURL = serverURL
	}
}
