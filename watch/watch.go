// Package watch reports level files that change inside watched directories.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/katalvlaran/floormesh"
)

// DefaultDebounce drops repeated events for the same file inside this window.
const DefaultDebounce = 100 * time.Millisecond

// Watcher emits the path of every matching file that is written, created
// or renamed into a watched directory.
type Watcher struct {
	watcher  *fsnotify.Watcher
	match    func(path string) bool
	debounce time.Duration

	Events chan string
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New watches dirs. match filters paths; nil accepts everything. A
// non-positive debounce uses DefaultDebounce.
func New(match func(path string) bool, debounce time.Duration, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	if match == nil {
		match = func(string) bool { return true }
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		match:    match,
		debounce: debounce,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	floormesh.Logger().Info("watching", "dirs", dirs)
	return w, nil
}

// Close stops the watcher and closes Events and Errors. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Run calls handle for every event until ctx is done, then closes the
// watcher. Errors from the underlying watcher are passed to onErr when it
// is non-nil.
func (w *Watcher) Run(ctx context.Context, handle func(path string), onErr func(error)) error {
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return ctx.Err()
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			handle(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	recent := newDebouncer(w.debounce)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.match(event.Name) {
				continue
			}
			if !recent.allow(event.Name, time.Now()) {
				continue
			}
			floormesh.Logger().Debug("level changed", "file", event.Name, "op", event.Op.String())
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// debouncer remembers when each path was last emitted. Entries older than
// the window are dropped on every accepted event.
type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, last: make(map[string]time.Time)}
}

// allow reports whether name may be emitted at now and records it if so.
func (d *debouncer) allow(name string, now time.Time) bool {
	if t, ok := d.last[name]; ok && now.Sub(t) < d.window {
		return false
	}
	for n, t := range d.last {
		if now.Sub(t) >= d.window {
			delete(d.last, n)
		}
	}
	d.last[name] = now
	return true
}
