package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"murmur/internal/config"
)

func TestLoadDefaultsUseEnvAPIKeyAndExpandPaths(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Deepgram.APIKey != "test-key" {
		t.Fatalf("expected API key from env, got %q", cfg.Deepgram.APIKey)
	}
	if cfg.Paths.WatchDir != "/tmp/audio_to_process" {
		t.Fatalf("unexpected watch dir: %q", cfg.Paths.WatchDir)
	}
	if cfg.Paths.TranscriptDir != "/tmp/transcripts" {
		t.Fatalf("unexpected transcript dir: %q", cfg.Paths.TranscriptDir)
	}
	wantLogs := filepath.Join(tempHome, ".local", "share", "murmur", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.Deepgram.Model != "nova-3" {
		t.Fatalf("unexpected model: %q", cfg.Deepgram.Model)
	}
	if !cfg.Deepgram.SmartFormat || !cfg.Deepgram.Diarize {
		t.Fatal("expected smart_format and diarize enabled by default")
	}
	if cfg.Monitor.SettleDelaySeconds != 1 {
		t.Fatalf("unexpected settle delay: %d", cfg.Monitor.SettleDelaySeconds)
	}
	if cfg.Monitor.Recursive {
		t.Fatal("expected non-recursive watch by default")
	}
	if got := len(cfg.Monitor.AllowedExtensions); got != 5 {
		t.Fatalf("expected 5 default extensions, got %d", got)
	}
	if cfg.Notifications.NtfyTopic != "" {
		t.Fatal("expected notifications disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "")
	os.Unsetenv("DEEPGRAM_API_KEY")

	dir := t.TempDir()
	path := filepath.Join(dir, "murmur.toml")
	content := `
[paths]
watch_dir = "` + filepath.Join(dir, "in") + `"
transcript_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[deepgram]
api_key = "file-key"
model = "nova-2"

[monitor]
settle_delay_seconds = 3
allowed_extensions = ["OGG", ".Mp3"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Deepgram.APIKey != "file-key" {
		t.Fatalf("expected file key fallback, got %q", cfg.Deepgram.APIKey)
	}
	if cfg.Deepgram.Model != "nova-2" {
		t.Fatalf("unexpected model: %q", cfg.Deepgram.Model)
	}
	if cfg.Monitor.SettleDelaySeconds != 3 {
		t.Fatalf("unexpected settle delay: %d", cfg.Monitor.SettleDelaySeconds)
	}
	want := []string{".ogg", ".mp3"}
	if len(cfg.Monitor.AllowedExtensions) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Monitor.AllowedExtensions)
	}
	for i, ext := range want {
		if cfg.Monitor.AllowedExtensions[i] != ext {
			t.Fatalf("extension %d: got %q want %q", i, cfg.Monitor.AllowedExtensions[i], ext)
		}
	}
}

func TestEnvKeyOverridesFileKey(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "env-key")

	dir := t.TempDir()
	path := filepath.Join(dir, "murmur.toml")
	if err := os.WriteFile(path, []byte("[deepgram]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Deepgram.APIKey != "env-key" {
		t.Fatalf("expected env key to win, got %q", cfg.Deepgram.APIKey)
	}
}

func TestLoadFailsWithoutCredential(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "")
	os.Unsetenv("DEEPGRAM_API_KEY")
	t.Setenv("HOME", t.TempDir())

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error when no credential is available")
	}
	if !strings.Contains(err.Error(), "deepgram.api_key") {
		t.Fatalf("expected credential error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "negative settle delay",
			mutate: func(c *config.Config) { c.Monitor.SettleDelaySeconds = -1 },
			want:   "settle_delay_seconds",
		},
		{
			name:   "empty extension list",
			mutate: func(c *config.Config) { c.Monitor.AllowedExtensions = nil },
			want:   "allowed_extensions",
		},
		{
			name:   "zero request timeout",
			mutate: func(c *config.Config) { c.Deepgram.RequestTimeout = 0 },
			want:   "request_timeout",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.Logging.Level = "verbose" },
			want:   "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Deepgram.APIKey = "key"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEnsureDirectoriesCreatesTree(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WatchDir = filepath.Join(dir, "in")
	cfg.Paths.TranscriptDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, p := range []string{cfg.Paths.WatchDir, cfg.Paths.TranscriptDir, cfg.Paths.LogDir} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", p, err)
		}
	}
}
