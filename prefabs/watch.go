package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type ChangeKind uint8

const (
	ChangeManifest ChangeKind = iota + 1
	ChangeScript
)

// Change names a prefab file that was written, relative to the watched root
// and slash separated ("frog_views.yaml", "scripts/wander.tengo").
type Change struct {
	Name string
	Kind ChangeKind
}

// Watcher reports prefab and script edits under a root directory. Events
// for the same file within the debounce window are coalesced.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

const watchDebounce = 100 * time.Millisecond

// NewWatcher watches root and its scripts directory when present.
func NewWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{root}
	if info, err := os.Stat(filepath.Join(root, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(root, "scripts"))
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		root:    root,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
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
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			change, ok := w.classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[change.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[change.Name] = now
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

func (w *Watcher) classify(path string) (Change, bool) {
	name := filepath.ToSlash(path)
	if rel, err := filepath.Rel(w.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		name = filepath.ToSlash(rel)
	}
	switch {
	case isSpecFile(name):
		return Change{Name: name, Kind: ChangeManifest}, true
	case isScriptFile(name):
		return Change{Name: name, Kind: ChangeScript}, true
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
