// Package watch reloads the dashboard when vault notes change. Bursts of
// file events collapse into a single refresh: each event cancels any
// pending refresh and reschedules it.
package watch

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a set of vault directories and debounces change events
// into refresh callbacks.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func()

	mu    sync.Mutex
	timer *time.Timer

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a Watcher over dirs (each walked recursively; missing
// directories are skipped). onChange fires after the debounce interval has
// passed with no further events.
func New(dirs []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		fs:       fs,
		debounce: debounce,
		onChange: onChange,
		stop:     make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			log.Printf("watch: skipping %s: %v", dir, err)
		}
	}

	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
}

// Start begins the event loop.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop shuts the loop down and waits for it to exit. A pending debounced
// refresh is dropped.
func (w *Watcher) Stop() {
	close(w.stop)
	w.fs.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		case <-w.stop:
			return
		}
	}
}

// schedule resets the debounce timer; only the last event in a burst
// actually triggers the callback.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return strings.HasSuffix(event.Name, ".md")
}
