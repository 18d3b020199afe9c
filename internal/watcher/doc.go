// Package watcher adapts fsnotify into the creation-event stream the monitor
// consumes.
//
// A Watcher delivers one Event per file created under the watched directory.
// Directory creations are filtered out (and, in recursive mode, added to the
// watch set instead). The stream is lazy, infinite, and non-restartable:
// Close releases the OS watch and closes the channels, after which the
// watcher cannot be reused. Files that already exist when the watch starts
// are never reported.
package watcher
