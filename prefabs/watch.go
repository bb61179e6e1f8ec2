package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is a prefab or script file that was written on disk.
type Change struct {
	Path string
	// Name is the prefab or script name as passed to Load or LoadScript.
	Name string
	Kind ChangeKind
}

// Watcher reports edits to prefab specs and contact scripts. It is the only
// goroutine the sandbox runs; the game loop drains Events between ticks.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Events   chan Change
	Errors   chan error
	closeCh  chan struct{}
	once     sync.Once
	debounce time.Duration
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Events:   make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		debounce: defaultDebounce,
	}
	go watcher.run()
	return watcher, nil
}

// WatchDir watches the prefab directory and its scripts directory.
func WatchDir(dir string) (*Watcher, error) {
	return NewWatcher(dir, filepath.Join(dir, "scripts"))
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := classify(event)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(event fsnotify.Event) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return Change{}, false
	}
	base := filepath.Base(event.Name)
	switch {
	case isSpecFile(base):
		return Change{Path: event.Name, Name: strings.TrimSuffix(base, filepath.Ext(base)), Kind: ChangeSpec}, true
	case isScriptFile(base):
		return Change{Path: event.Name, Name: base, Kind: ChangeScript}, true
	}
	return Change{}, false
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
