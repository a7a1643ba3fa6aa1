package settings

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// File reads settings from a flat YAML file of string keys to string values.
// When watching is enabled the file is re-read on every write event, so
// toggles flipped by the external settings owner become visible without a
// restart.
type File struct {
	path    string
	watcher *fsnotify.Watcher

	mu     sync.RWMutex
	values map[string]string

	closeOnce sync.Once
	done      chan struct{}
}

// NewFile creates a file-backed store and optionally starts watching the
// file for changes.
func NewFile(path string, watch bool) (*File, error) {
	f := &File{
		path: path,
		done: make(chan struct{}),
	}

	if err := f.reload(); err != nil {
		return nil, err
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create settings watcher: %w", err)
		}
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch settings file: %w", err)
		}
		f.watcher = watcher
		go f.watch()
	}

	return f, nil
}

// Get implements Store.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	value, ok := f.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Close stops the watcher.
func (f *File) Close() error {
	var err error
	f.closeOnce.Do(func() {
		close(f.done)
		if f.watcher != nil {
			err = f.watcher.Close()
		}
	})
	return err
}

func (f *File) reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	f.mu.Lock()
	f.values = values
	f.mu.Unlock()
	return nil
}

func (f *File) watch() {
	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// A malformed rewrite keeps the previous snapshot.
				_ = f.reload()
			}
		case _, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
