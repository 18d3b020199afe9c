package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"murmur/internal/config"
	"murmur/internal/history"
	"murmur/internal/logging"
	"murmur/internal/notifications"
	"murmur/internal/pipeline"
	"murmur/internal/watcher"
)

// Source is the stream of creation events the monitor consumes. It matches
// *watcher.Watcher; tests substitute a scripted implementation.
type Source interface {
	Events() <-chan watcher.Event
	Errors() <-chan error
	Close() error
}

// Monitor owns the watch loop and enforces single-instance execution.
type Monitor struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	filter   pipeline.Filter
	store    *history.Store
	notifier notifications.Service
	logger   *slog.Logger
	settle   time.Duration
	lock     *flock.Flock
}

// New constructs a monitor. All dependencies are required except the
// notifier, which defaults to a noop when nil.
func New(cfg *config.Config, pipe *pipeline.Pipeline, store *history.Store, notifier notifications.Service, logger *slog.Logger) (*Monitor, error) {
	if cfg == nil || pipe == nil || store == nil {
		return nil, errors.New("monitor requires config, pipeline, and history store")
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Monitor{
		cfg:      cfg,
		pipeline: pipe,
		filter:   pipeline.NewFilter(cfg.Monitor.AllowedExtensions),
		store:    store,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "monitor"),
		settle:   cfg.SettleDelay(),
		lock:     flock.New(filepath.Join(cfg.Paths.LogDir, "murmurd.lock")),
	}, nil
}

// Run consumes creation events until ctx is cancelled or the source closes.
// Per-file failures never stop the loop; only startup problems (the instance
// lock) return an error.
func (m *Monitor) Run(ctx context.Context, source Source) error {
	ok, err := m.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another murmur monitor is already running")
	}
	defer func() { _ = m.lock.Unlock() }()
	defer func() { _ = source.Close() }()

	m.logger.Info("monitoring for new audio files",
		logging.String("watch_dir", m.cfg.Paths.WatchDir),
		logging.String("transcript_dir", m.cfg.Paths.TranscriptDir),
		logging.Bool("recursive", m.cfg.Monitor.Recursive),
		logging.Int("allowed_extensions", len(m.cfg.Monitor.AllowedExtensions)))
	m.publish(ctx, notifications.EventMonitorStarted, notifications.Payload{
		"watch_dir": m.cfg.Paths.WatchDir,
	})

	defer func() {
		m.logger.Info("monitor stopped")
		m.publish(context.WithoutCancel(ctx), notifications.EventMonitorStopped, nil)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-source.Errors():
			if !ok {
				return nil
			}
			m.logger.Warn("watch error", logging.Error(err))
		case event, ok := <-source.Events():
			if !ok {
				return nil
			}
			m.handle(ctx, event.Path)
		}
	}
}

// handle runs one event to its terminal outcome before returning, keeping
// the loop serialized.
func (m *Monitor) handle(ctx context.Context, path string) {
	filename := filepath.Base(path)

	if !m.filter.Allows(path) {
		m.logger.Info("ignored file with unsupported extension",
			logging.String("file", filename))
		m.record(ctx, pipeline.Outcome{
			ID:          uuid.NewString(),
			Path:        path,
			Status:      pipeline.StatusIgnored,
			Detail:      "unsupported extension",
			CompletedAt: time.Now().UTC(),
		})
		return
	}

	m.logger.Info("new file detected", logging.String("file", filename))
	if !m.settleDown(ctx) {
		// Shutdown arrived during the settle pause; the file is left for a
		// future run.
		return
	}

	outcome := m.pipeline.Process(ctx, path)
	m.record(ctx, outcome)

	switch outcome.Status {
	case pipeline.StatusSuccess:
		if m.cfg.Notifications.Successes {
			m.publish(ctx, notifications.EventTranscriptReady, notifications.Payload{
				"path":       outcome.Path,
				"transcript": outcome.TranscriptPath,
			})
		}
	case pipeline.StatusError:
		if m.cfg.Notifications.Errors {
			m.publish(ctx, notifications.EventTranscriptFailed, notifications.Payload{
				"path":   outcome.Path,
				"detail": outcome.Detail,
			})
		}
	}
}

// settleDown pauses before the first read so a writer that triggered the
// creation event has a chance to finish flushing. Best-effort only; a slow
// writer can still lose the race. Returns false when ctx was cancelled.
func (m *Monitor) settleDown(ctx context.Context) bool {
	if m.settle <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(m.settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (m *Monitor) record(ctx context.Context, outcome pipeline.Outcome) {
	if err := m.store.RecordOutcome(context.WithoutCancel(ctx), outcome); err != nil {
		m.logger.Warn("record outcome", logging.Error(err))
	}
}

func (m *Monitor) publish(ctx context.Context, event notifications.Event, payload notifications.Payload) {
	if err := m.notifier.Publish(ctx, event, payload); err != nil {
		m.logger.Warn("publish notification",
			logging.String("event", string(event)),
			logging.Error(err))
	}
}
