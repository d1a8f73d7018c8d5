package codebase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps the index of a codebase in step with the .java files on
// disk. Files the editor has open are left to the editor.
type Watcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
}

func NewWatcher(c *Codebase) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{codebase: c, watcher: w}, nil
}

// AddRecursive watches root and every directory below it that may hold
// sources.
func (w *Watcher) AddRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("watch: skipping %s: %s", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func skipDir(name string) bool {
	switch name {
	case "target", "build", "out", "node_modules":
		return true
	}
	return strings.HasPrefix(name, ".")
}

// Watch applies file system events to the codebase until ctx is done or
// the watcher fails.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.apply(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher: %w", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) apply(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.AddRecursive(ev.Name); err != nil {
				log.Warningf("%s", err)
			}
			return
		}
	}
	if filepath.Ext(ev.Name) != ".java" {
		return
	}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		log.Debugf("watch: removed %s", ev.Name)
		w.codebase.RemoveFile(ev.Name)
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		log.Debugf("watch: changed %s", ev.Name)
		if err := w.codebase.ScanFile(ev.Name); err != nil {
			log.Debugf("watch: %s", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
