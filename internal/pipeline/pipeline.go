package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"murmur/internal/fileutil"
	"murmur/internal/logging"
	"murmur/internal/services"
	"murmur/internal/textutil"
)

// transcriptSuffix is appended to the source filename's stem to derive the
// artifact name.
const transcriptSuffix = "_transcript.txt"

// Transcriber converts raw audio bytes into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Pipeline runs one file at a time through read, submit, persist, report.
type Pipeline struct {
	transcriber Transcriber
	outputDir   string
	logger      *slog.Logger
}

// New constructs a pipeline writing artifacts into outputDir.
func New(transcriber Transcriber, outputDir string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		outputDir:   outputDir,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// TranscriptPath derives the artifact path for a source file: the stem with
// the original extension stripped, plus "_transcript.txt", inside outputDir.
// The derivation is deterministic, so reprocessing the same source filename
// overwrites the earlier artifact.
func TranscriptPath(outputDir, sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+transcriptSuffix)
}

// Process handles one accepted file and returns its outcome. Each failure
// mode resolves to StatusError with detail; the caller decides what to do
// with the record, and nothing here stops subsequent files.
func (p *Pipeline) Process(ctx context.Context, path string) Outcome {
	started := time.Now()
	outcome := Outcome{
		ID:   uuid.NewString(),
		Path: path,
	}
	filename := filepath.Base(path)
	p.logger.Info("processing file", logging.String("file", filename))

	audio, err := os.ReadFile(path)
	if err != nil {
		return p.fail(outcome, started, services.Wrap(services.ErrIO, "pipeline", "read", path, err))
	}
	outcome.Bytes = int64(len(audio))
	p.logger.Debug("read audio",
		logging.String("file", filename),
		logging.Int64("bytes", outcome.Bytes))

	transcript, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return p.fail(outcome, started, err)
	}

	// The artifact carries the service's transcript byte for byte; any
	// display-oriented cleanup happens in the log preview only.
	target := TranscriptPath(p.outputDir, path)
	if err := fileutil.WriteFileAtomic(target, []byte(transcript), 0o644); err != nil {
		return p.fail(outcome, started, services.Wrap(services.ErrIO, "pipeline", "persist", target, err))
	}

	outcome.Status = StatusSuccess
	outcome.TranscriptPath = target
	outcome.Duration = time.Since(started)
	outcome.CompletedAt = time.Now().UTC()
	p.logger.Info("transcript saved",
		logging.String("file", filename),
		logging.String("transcript", target),
		logging.Duration("elapsed", outcome.Duration),
		logging.String("preview", textutil.Preview(transcript, textutil.PreviewLength)))
	return outcome
}

func (p *Pipeline) fail(outcome Outcome, started time.Time, err error) Outcome {
	outcome.Status = StatusError
	outcome.Detail = err.Error()
	outcome.Duration = time.Since(started)
	outcome.CompletedAt = time.Now().UTC()
	p.logger.Error("processing failed",
		logging.String("file", filepath.Base(outcome.Path)),
		logging.Error(err))
	return outcome
}
