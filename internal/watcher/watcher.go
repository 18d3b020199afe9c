package watcher

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"murmur/internal/logging"
)

// Event reports a file created under the watched directory.
type Event struct {
	Path string
}

// Watcher wraps an fsnotify watcher and emits creation events for files.
type Watcher struct {
	fs        *fsnotify.Watcher
	events    chan Event
	errs      chan error
	done      chan struct{}
	logger    *slog.Logger
	recursive bool
	closeOnce sync.Once
}

// New starts watching dir for file creation events. With recursive set,
// existing subdirectories are watched too and directories created later are
// added to the watch set.
func New(dir string, recursive bool, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:        fsw,
		events:    make(chan Event),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
		logger:    logging.NewComponentLogger(logger, "watcher"),
		recursive: recursive,
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if recursive {
		if err := w.addSubdirectories(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

// Events returns the stream of file creation events. The channel is closed
// when the watcher shuts down.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns watch-level errors that do not stop the stream.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close releases the OS watch. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.events)
	defer close(w.errs)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			w.handleCreate(event.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
				w.logger.Warn("dropping watch error", logging.Error(err))
			}
		}
	}
}

func (w *Watcher) handleCreate(path string) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		if w.recursive {
			if addErr := w.fs.Add(path); addErr != nil {
				w.logger.Warn("watch new subdirectory", logging.String("path", path), logging.Error(addErr))
			}
		}
		return
	}
	// A stat failure usually means the file vanished already; forward the
	// event and let the pipeline report the read error as the outcome. The
	// done guard keeps Close from stranding this goroutine when the
	// consumer has already stopped receiving.
	select {
	case w.events <- Event{Path: path}:
	case <-w.done:
	}
}

func (w *Watcher) addSubdirectories(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !entry.IsDir() || path == root {
			return nil
		}
		return w.fs.Add(path)
	})
}
