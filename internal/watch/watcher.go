package watch

import (
	"os"
	"sync"
	"time"

	"storebrowse/internal/errors"
	"storebrowse/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that an entry directly under the watched directory was
// created, removed or renamed.
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// listingOps are the operations that can change a directory listing.
const listingOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher follows a single directory with fsnotify. The directory can be
// swapped while running, which is how the browser follows a new root.
type Watcher struct {
	// Directory currently watched, empty when none
	dir string

	// Channel delivering changes to the front-end
	changes chan Change

	// Closed to stop the event loop
	stopChan chan struct{}

	// Closed by the event loop when it exits
	done chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
}

// New creates a watcher that is not yet following any directory.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	return &Watcher{
		changes:   make(chan Change, 16),
		fsWatcher: fsWatcher,
	}, nil
}

// Watch makes dir the watched directory, dropping the previous one. If dir
// cannot be watched the previous directory stays watched.
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.FromFS("cannot watch directory", dir, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.dir == dir {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir), log.F("error", err)).Debug("Failed to drop previous watch")
		}
	}
	w.dir = dir
	log.Infof("Watching directory %s", dir)
	return nil
}

// Dir returns the directory currently watched.
func (w *Watcher) Dir() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.dir
}

// Changes returns the channel that delivers listing changes. It is closed
// after Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins delivering changes.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}
	if w.done != nil {
		return errors.New("watcher cannot be restarted after stop")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop()
	log.Debugf("Watcher started")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&listingOps == 0 {
				continue
			}
			change := Change{Path: event.Name, Op: event.Op, Timestamp: time.Now()}
			// Never block the event loop on a slow consumer
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("file", event.Name)).Debug("Change channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	w.mutex.Unlock()

	<-w.done
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	log.Debugf("Watcher stopped")
}
