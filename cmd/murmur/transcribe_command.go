package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"murmur/internal/history"
	"murmur/internal/logging"
	"murmur/internal/pipeline"
	"murmur/internal/services/deepgram"
)

func newTranscribeCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe FILE [FILE...]",
		Short: "Transcribe audio files once, without watching a directory",
		Args:  cobra.MinimumNArgs(1),
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

			pipe := pipeline.New(client, cfg.Paths.TranscriptDir, logger)

			failures := 0
			for _, path := range args {
				outcome := pipe.Process(cmd.Context(), path)
				if err := store.RecordOutcome(cmd.Context(), outcome); err != nil {
					logger.Warn("record outcome", logging.Error(err))
				}
				switch outcome.Status {
				case pipeline.StatusSuccess:
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, outcome.TranscriptPath)
				default:
					failures++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, outcome.Detail)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failures, len(args))
			}
			return nil
		},
	}
}
