package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kinview/kinview/pkg/logging"
)

// ChangeEvent is a batch of file system changes affecting the family data
// file.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// FileWatcher watches the family data file for edits. It watches the
// containing directory rather than the file itself so editor save
// strategies that rename or replace the file are still observed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	dataFile string
	events   chan ChangeEvent
}

// NewFileWatcher creates a watcher for one data file
func NewFileWatcher(dataFile string) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(dataFile)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolving data file path: %w", err)
	}

	return &FileWatcher{
		watcher:  fsw,
		dataFile: abs,
		events:   make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching. Events are delivered on Events until ctx is done.
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.dataFile)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logging.Info("watching family data file", "path", fw.dataFile)

	go fw.processEvents(ctx)
	return nil
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer fw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			logging.Debug("data file changed", "op", event.Op.String(), "path", event.Name)
			select {
			case fw.events <- ChangeEvent{Path: fw.dataFile, Timestamp: time.Now()}:
			default:
				// Consumer is behind; the debouncer will batch anyway.
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == fw.dataFile
}
