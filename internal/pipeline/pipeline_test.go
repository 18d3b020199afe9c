package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"murmur/internal/logging"
	"murmur/internal/pipeline"
	"murmur/internal/services"
)

type stubTranscriber struct {
	transcript string
	err        error
	calls      [][]byte
}

func (s *stubTranscriber) Transcribe(_ context.Context, audio []byte) (string, error) {
	s.calls = append(s.calls, append([]byte(nil), audio...))
	if s.err != nil {
		return "", s.err
	}
	return s.transcript, nil
}

func writeAudio(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestProcessWritesTranscriptArtifact(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	source := writeAudio(t, inDir, "sample.wav", "pcm-data")

	stub := &stubTranscriber{transcript: "hello world"}
	p := pipeline.New(stub, outDir, logging.NewNop())

	outcome := p.Process(context.Background(), source)
	if outcome.Status != pipeline.StatusSuccess {
		t.Fatalf("expected success, got %s (%s)", outcome.Status, outcome.Detail)
	}
	if outcome.ID == "" {
		t.Fatal("expected outcome ID")
	}
	if outcome.Bytes != int64(len("pcm-data")) {
		t.Fatalf("unexpected byte count: %d", outcome.Bytes)
	}

	want := filepath.Join(outDir, "sample_transcript.txt")
	if outcome.TranscriptPath != want {
		t.Fatalf("unexpected artifact path: %q", outcome.TranscriptPath)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("artifact content = %q, want %q", data, "hello world")
	}
	if len(stub.calls) != 1 || string(stub.calls[0]) != "pcm-data" {
		t.Fatalf("unexpected client calls: %v", stub.calls)
	}
}

func TestProcessPersistsTranscriptBytesExactly(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	source := writeAudio(t, inDir, "accents.wav", "pcm-data")

	// Combining acute accent kept decomposed; the artifact must not fold it.
	transcript := "café  au lait\n"
	stub := &stubTranscriber{transcript: transcript}
	p := pipeline.New(stub, outDir, logging.NewNop())

	outcome := p.Process(context.Background(), source)
	if outcome.Status != pipeline.StatusSuccess {
		t.Fatalf("expected success, got %s (%s)", outcome.Status, outcome.Detail)
	}
	data, err := os.ReadFile(outcome.TranscriptPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Equal(data, []byte(transcript)) {
		t.Fatalf("artifact bytes = % x, want % x", data, []byte(transcript))
	}
}

func TestProcessMissingFileReportsIOError(t *testing.T) {
	outDir := t.TempDir()
	stub := &stubTranscriber{transcript: "ignored"}
	p := pipeline.New(stub, outDir, logging.NewNop())

	outcome := p.Process(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	if outcome.Status != pipeline.StatusError {
		t.Fatalf("expected error outcome, got %s", outcome.Status)
	}
	if outcome.Detail == "" {
		t.Fatal("expected detail on error outcome")
	}
	if len(stub.calls) != 0 {
		t.Fatal("client must not be called when the read fails")
	}
}

func TestProcessTranscriptionFailureWritesNothing(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	source := writeAudio(t, inDir, "loud.mp3", "pcm-data")

	netErr := services.Wrap(services.ErrTranscription, "deepgram", "transcribe", "request failed", errors.New("connection refused"))
	stub := &stubTranscriber{err: netErr}
	p := pipeline.New(stub, outDir, logging.NewNop())

	outcome := p.Process(context.Background(), source)
	if outcome.Status != pipeline.StatusError {
		t.Fatalf("expected error outcome, got %s", outcome.Status)
	}
	if outcome.TranscriptPath != "" {
		t.Fatalf("no artifact path expected, got %q", outcome.TranscriptPath)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("output dir must stay empty on failure, found %v", entries)
	}
}

func TestProcessZeroByteFileIsSubmitted(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	source := writeAudio(t, inDir, "empty.flac", "")

	stub := &stubTranscriber{transcript: ""}
	p := pipeline.New(stub, outDir, logging.NewNop())

	outcome := p.Process(context.Background(), source)
	if outcome.Status != pipeline.StatusSuccess {
		t.Fatalf("expected success for empty input, got %s (%s)", outcome.Status, outcome.Detail)
	}
	if len(stub.calls) != 1 || len(stub.calls[0]) != 0 {
		t.Fatalf("expected one call with empty payload, got %v", stub.calls)
	}
	if _, err := os.Stat(filepath.Join(outDir, "empty_transcript.txt")); err != nil {
		t.Fatalf("expected artifact for empty transcript: %v", err)
	}
}

func TestProcessReprocessingOverwritesArtifact(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	source := writeAudio(t, inDir, "repeat.wav", "pcm-data")

	first := &stubTranscriber{transcript: "first pass"}
	pipeline.New(first, outDir, logging.NewNop()).Process(context.Background(), source)

	second := &stubTranscriber{transcript: "second pass"}
	outcome := pipeline.New(second, outDir, logging.NewNop()).Process(context.Background(), source)
	if outcome.Status != pipeline.StatusSuccess {
		t.Fatalf("expected success, got %s", outcome.Status)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single artifact after reprocessing, got %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(outDir, "repeat_transcript.txt"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "second pass" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestProcessPersistFailureReportsIOError(t *testing.T) {
	inDir := t.TempDir()
	source := writeAudio(t, inDir, "sample.wav", "pcm-data")

	stub := &stubTranscriber{transcript: "hello"}
	p := pipeline.New(stub, filepath.Join(t.TempDir(), "missing"), logging.NewNop())

	outcome := p.Process(context.Background(), source)
	if outcome.Status != pipeline.StatusError {
		t.Fatalf("expected error outcome for write failure, got %s", outcome.Status)
	}
}

func TestTranscriptPathDerivation(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"/watch/sample.wav", "sample_transcript.txt"},
		{"/watch/two.dots.mp3", "two.dots_transcript.txt"},
		{"relative.m4a", "relative_transcript.txt"},
	}
	for _, tt := range tests {
		got := pipeline.TranscriptPath("/out", tt.source)
		if got != filepath.Join("/out", tt.want) {
			t.Fatalf("TranscriptPath(%q) = %q, want %q", tt.source, got, filepath.Join("/out", tt.want))
		}
		// Deterministic: deriving twice yields the same path.
		if again := pipeline.TranscriptPath("/out", tt.source); again != got {
			t.Fatalf("derivation not idempotent: %q vs %q", got, again)
		}
	}
}
