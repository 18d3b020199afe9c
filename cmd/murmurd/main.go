// Command murmurd runs the audio transcription monitor as a long-lived
// process. It watches a directory for new audio files, transcribes each one
// through Deepgram, and writes transcripts until interrupted.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"murmur/internal/config"
	"murmur/internal/history"
	"murmur/internal/logging"
	"murmur/internal/monitor"
	"murmur/internal/notifications"
	"murmur/internal/pipeline"
	"murmur/internal/preflight"
	"murmur/internal/services/deepgram"
	"murmur/internal/watcher"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	client, err := deepgram.New(cfg)
	if err != nil {
		log.Fatalf("init transcription client: %v", err)
	}

	store, err := history.Open(cfg)
	if err != nil {
		log.Fatalf("open history store: %v", err)
	}
	defer store.Close()

	for _, result := range preflight.RunAll(cfg) {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
			continue
		}
		logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail))
	}

	source, err := watcher.New(cfg.Paths.WatchDir, cfg.Monitor.Recursive, logger)
	if err != nil {
		log.Fatalf("start watcher: %v", err)
	}

	pipe := pipeline.New(client, cfg.Paths.TranscriptDir, logger)
	m, err := monitor.New(cfg, pipe, store, notifications.NewService(cfg), logger)
	if err != nil {
		log.Fatalf("create monitor: %v", err)
	}

	if err := m.Run(ctx, source); err != nil {
		log.Fatalf("monitor: %v", err)
	}
	logger.Info("murmurd shutting down")
}
