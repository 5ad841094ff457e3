package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"partsalert/internal/config"
	"partsalert/internal/fetcher"
	"partsalert/internal/notify"
	"partsalert/internal/runlog"
	"partsalert/internal/scanner"
	"partsalert/internal/scheduler"
	"partsalert/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("load config", "error", err)
		return 2
	}
	if cfg == nil {
		return 0
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.SeenFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			return 1
		}
	}

	store, err := storage.Open(cfg.SeenFile)
	if err != nil {
		log.Error("open seen set", "path", cfg.SeenFile, "error", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	journal, closer, err := runlog.Open(cfg.LogFile, cfg.Location)
	if err != nil {
		log.Warn("run log disabled", "path", cfg.LogFile, "error", err)
		journal = runlog.Discard()
	} else {
		defer func() { _ = closer.Close() }()
	}

	dispatcher, err := notify.New(cfg.NotifyURLs, http.DefaultClient)
	if err != nil {
		log.Error("configure notifications", "error", err)
		return 1
	}
	if dispatcher.Len() == 0 && !cfg.DryRun {
		log.Warn("no notification destinations configured")
	}

	f := fetcher.New(http.DefaultClient).
		WithUserAgent(cfg.UserAgent).
		WithTimeout(cfg.FetchTimeout)

	runner := scanner.New(cfg, store, f, dispatcher, log, journal)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case cfg.Test:
		if err := runner.SendTest(ctx); err != nil {
			log.Error("test notification", "error", err)
			return 1
		}
	case cfg.Cron != "":
		sched, err := scheduler.New(cfg.Cron, cfg.Location, runner, log)
		if err != nil {
			log.Error("create scheduler", "error", err)
			return 1
		}
		sched.Run(ctx)
	default:
		if err := runner.Run(ctx); err != nil {
			log.Error("run", "error", err)
			return 1
		}
	}
	return 0
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
