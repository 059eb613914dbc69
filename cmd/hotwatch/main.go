package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hotwatch/internal/config"
	"hotwatch/internal/eventlog"
	"hotwatch/internal/logger"
	"hotwatch/internal/lookup"
	"hotwatch/internal/monitor"
	"hotwatch/internal/neighbor"
	"hotwatch/internal/notify"
	"hotwatch/internal/supervisor"
	"hotwatch/internal/version"

	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to credentials file (default auth.json in the search paths)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	// Show version if requested
	if *showVersion {
		fmt.Println(version.GetInfo().String())
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Log)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log = log.Named(version.AppName)
	defer func() { _ = log.Sync() }()

	events, err := eventlog.Open(cfg.EventLog, log)
	if err != nil {
		log.Fatal("Failed to open event log", zap.String("path", cfg.EventLog), zap.Error(err))
	}
	defer func() { _ = events.Close() }()

	// Cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	messenger := notify.NewTelegramMessenger(cfg.TelegramAPI, cfg.BotToken, cfg.ChannelID, log)
	m := monitor.New(monitor.Config{
		Devices:  neighbor.NewScanner(cfg.NeighborCommand, log),
		Identity: lookup.NewClient(cfg.LookupURL, log),
		Notifier: notify.NewNotifier(messenger, events, log),
		Events:   events,
	}, log)

	policy := supervisor.DefaultPolicy()
	sup := supervisor.New(policy, log,
		supervisor.WithCrashHandler(func(ctx context.Context, c supervisor.Crash) {
			m.HandleCrash(ctx, c.Err, c.Stack, c.Session)
		}))

	log.Info("Starting",
		zap.String("version", version.Version),
		zap.Stringer("restart_policy", policy))
	if err := sup.Run(ctx, m.Run); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Supervisor stopped", zap.Error(err))
		return
	}
	log.Info("Shutdown complete")
}
