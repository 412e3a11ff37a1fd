package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned by Watch for backends without a file.
var ErrNotWatchable = errors.New("store backend has no file to watch")

const watchDebounce = 150 * time.Millisecond

type pather interface{ Path() string }

// Watch signals on the returned channel whenever another process changes
// the backing file. Our own writes are filtered out. The channel closes
// when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	p, ok := s.kv.(pather)
	if !ok {
		return nil, ErrNotWatchable
	}
	path := p.Path()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: atomic renames and sqlite -wal/-shm files never
	// show up as writes to the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	base := filepath.Base(path)
	relevant := func(name string) bool {
		return strings.HasPrefix(filepath.Base(name), base)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(ev.Name) || ev.Op == fsnotify.Chmod {
					continue
				}
				debounce = time.After(watchDebounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("store watch error", "err", err)
			case <-debounce:
				debounce = nil
				changed, err := s.Changed()
				if err != nil {
					s.log.Warn("store watch: read failed", "err", err)
					continue
				}
				if !changed {
					continue
				}
				s.log.Info("store changed externally", "path", path)
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
