// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"murmur/internal/config"
)

// NewConfig returns a validated config rooted in a per-test temp directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WatchDir = filepath.Join(dir, "watch")
	cfg.Paths.TranscriptDir = filepath.Join(dir, "transcripts")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Deepgram.APIKey = "test-key"
	cfg.Monitor.SettleDelaySeconds = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("create test directories: %v", err)
	}
	return &cfg
}
