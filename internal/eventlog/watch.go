package eventlog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDefault is the default debounce interval for log change events.
const debounceDefault = 100 * time.Millisecond

// Watcher reports records appended to a log after it starts.
// It watches the log's directory because every append renames a new file
// over the log.
type Watcher struct {
	path     string
	handler  func(EventRecord)
	onError  func(error)
	debounce time.Duration
	seen     int
}

// NewWatcher creates a watcher for the log at path. onError may be nil.
func NewWatcher(path string, handler func(EventRecord), onError func(error)) *Watcher {
	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{
		path:     filepath.Clean(path),
		handler:  handler,
		onError:  onError,
		debounce: debounceDefault,
	}
}

// FromStart makes the first scan report records already in the log.
func (w *Watcher) FromStart() *Watcher {
	w.seen = -1
	return w
}

// Run watches the log until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	if w.seen < 0 {
		w.seen = 0
		w.scan()
	} else {
		records, err := Load(w.path)
		if err != nil {
			return err
		}
		w.seen = len(records)
	}

	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()
	defer debounceTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-debounceTimer.C:
			w.scan()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !debounceTimer.Stop() {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.onError(err)
		}
	}
}

// scan reloads the log and hands every unseen record to the handler.
func (w *Watcher) scan() {
	records, err := Load(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	if len(records) < w.seen {
		// Log was replaced by a shorter one (quarantine or manual edit).
		w.seen = 0
	}
	for _, rec := range records[w.seen:] {
		w.handler(rec)
	}
	w.seen = len(records)
}
