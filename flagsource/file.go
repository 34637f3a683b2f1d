package flagsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/finops-claw-gang/darklaunch"
)

// File serves the trimmed contents of a flag file, reloading on filesystem
// events. The parent directory is watched rather than the file itself so
// atomic replace-by-rename updates are observed.
type File struct {
	path    string
	watcher *fsnotify.Watcher

	mu      sync.RWMutex
	current string

	done chan struct{}
}

// NewFile reads the file once and starts watching it for changes. Close must
// be called to release the watcher.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("flagsource: resolve %s: %w", path, err)
	}

	initial, err := readFlag(abs)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("flagsource: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("flagsource: watch %s: %w", filepath.Dir(abs), err)
	}

	f := &File{
		path:    abs,
		watcher: watcher,
		current: initial,
		done:    make(chan struct{}),
	}
	go f.loop()
	return f, nil
}

// Provider returns the flag provider backed by this file. It never fails: if
// the file is momentarily unreadable the last good value is served.
func (f *File) Provider() darklaunch.FlagProvider {
	return func(context.Context) (string, error) {
		f.mu.RLock()
		defer f.mu.RUnlock()
		return f.current, nil
	}
}

// Close stops the watcher.
func (f *File) Close() error {
	err := f.watcher.Close()
	<-f.done
	return err
}

func (f *File) loop() {
	defer close(f.done)
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Name != f.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if v, err := readFlag(f.path); err == nil {
				f.mu.Lock()
				f.current = v
				f.mu.Unlock()
			}
		case _, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func readFlag(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("flagsource: read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
