package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce groups the burst of events a single write produces
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a file, such as a catalog database written by
// another process. The parent directory is watched so that companion files
// sharing the name as prefix (write-ahead logs, journals) count as changes
// too, and so that atomic replace-by-rename is seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	name     string
	debounce time.Duration
	changes  chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	log      zerolog.Logger
}

// NewWatcher starts watching path. A non-positive debounce uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, log zerolog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	path = expandHome(path)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		watcher:  fw,
		name:     filepath.Base(path),
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		log:      log.With().Str("component", "watcher").Str("file", path).Logger(),
	}
	go w.watchLoop()
	return w, nil
}

// Changes receives one value per burst of changes. It is closed when the
// watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching and waits for the loop to exit
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		<-w.done
	})
	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// relevant reports whether an event touches the watched file or one of its
// companions. Shared-memory index files change on reads and are ignored.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if !strings.HasPrefix(base, w.name) || strings.HasSuffix(base, "-shm") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.log.Debug().Msg("change detected")
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
