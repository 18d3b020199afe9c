package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"murmur/internal/history"
	"murmur/internal/logging"
	"murmur/internal/monitor"
	"murmur/internal/notifications"
	"murmur/internal/pipeline"
	"murmur/internal/preflight"
	"murmur/internal/services/deepgram"
	"murmur/internal/watcher"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the audio monitor in the foreground until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			client, err := deepgram.New(cfg)
			if err != nil {
				return fmt.Errorf("init transcription client: %w", err)
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			for _, result := range preflight.RunAll(cfg) {
				if !result.Passed {
					logger.Warn("preflight check failed",
						logging.String("check", result.Name),
						logging.String("detail", result.Detail))
				}
			}

			source, err := watcher.New(cfg.Paths.WatchDir, cfg.Monitor.Recursive, logger)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			pipe := pipeline.New(client, cfg.Paths.TranscriptDir, logger)
			m, err := monitor.New(cfg, pipe, store, notifications.NewService(cfg), logger)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return m.Run(ctx, source)
		},
	}
}
