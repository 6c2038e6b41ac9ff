package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type ChangeKind int

const (
	ChangePrefab ChangeKind = iota
	ChangeScript
	ChangeLevel
)

// Change is one debounced file modification.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports prefab, script and level edits on Events. Both channels are
// closed by Close.
type Watcher struct {
	watcher  *fsnotify.Watcher
	levelDir string
	Events   chan Change
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

const debounce = 100 * time.Millisecond

// NewWatcher watches the prefab directory, its scripts folder and levelDir.
// Directories that do not exist are skipped.
func NewWatcher(levelDir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{Dir, filepath.Join(Dir, "scripts"), levelDir} {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		levelDir: filepath.Clean(levelDir),
		Events:   make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

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

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := w.classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
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

func (w *Watcher) classify(path string) (ChangeKind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".tengo":
		return ChangeScript, true
	case ext != ".yaml" && ext != ".yml":
		return 0, false
	case w.levelDir != "." && filepath.Dir(filepath.Clean(path)) == w.levelDir:
		return ChangeLevel, true
	default:
		return ChangePrefab, true
	}
}
