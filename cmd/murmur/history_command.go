package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"murmur/internal/history"
	"murmur/internal/pipeline"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transcription outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			stats, err := store.Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("load summary: %w", err)
			}

			if asJSON {
				return printHistoryJSON(cmd, entries, stats)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No outcomes recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					entry.Filename,
					string(entry.Status),
					historyDetail(entry),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"When", "File", "Status", "Detail"}, rows))
			fmt.Fprintf(out, "%d total: %d succeeded, %d ignored, %d failed\n",
				stats.Total, stats.Succeeded, stats.Ignored, stats.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of outcomes to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit outcomes as JSON")

	return cmd
}

func historyDetail(entry history.Entry) string {
	switch entry.Status {
	case pipeline.StatusSuccess:
		return fmt.Sprintf("%s (%d bytes, %s)",
			entry.TranscriptPath, entry.Bytes, entry.Duration.Round(time.Millisecond))
	default:
		return entry.Detail
	}
}

type historyReport struct {
	Stats   history.Stats   `json:"stats"`
	Entries []historyRecord `json:"entries"`
}

type historyRecord struct {
	ID             string `json:"id"`
	Path           string `json:"path"`
	Status         string `json:"status"`
	Detail         string `json:"detail,omitempty"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	Bytes          int64  `json:"bytes,omitempty"`
	DurationMS     int64  `json:"duration_ms"`
	CreatedAt      string `json:"created_at"`
}

func printHistoryJSON(cmd *cobra.Command, entries []history.Entry, stats history.Stats) error {
	report := historyReport{Stats: stats, Entries: make([]historyRecord, 0, len(entries))}
	for _, entry := range entries {
		report.Entries = append(report.Entries, historyRecord{
			ID:             entry.ID,
			Path:           entry.Path,
			Status:         string(entry.Status),
			Detail:         entry.Detail,
			TranscriptPath: entry.TranscriptPath,
			Bytes:          entry.Bytes,
			DurationMS:     entry.Duration.Milliseconds(),
			CreatedAt:      entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
