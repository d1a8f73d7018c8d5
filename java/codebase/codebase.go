// Package codebase is the workspace an editor talks to: the class index
// of the sources below a root directory and the documents the editor has
// open, which shadow the files on disk.
package codebase

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javacomplete/java/completion"
	"github.com/dhamidi/javacomplete/java/index"
)

var log = commonlog.GetLogger("javacomplete.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	index   *index.Index
	engine  *completion.Engine
	docs    map[string][]byte
}

// New returns a workspace rooted at rootDir whose index starts with the
// bundled platform classes.
func New(rootDir string) *Codebase {
	ix := index.NewWithJDK()
	return &Codebase{
		rootDir: rootDir,
		index:   ix,
		engine:  completion.NewEngine(ix),
		docs:    make(map[string][]byte),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Index() *index.Index {
	return c.index
}

// ScanAll indexes the sources below the root. Open documents are indexed
// from their editor contents afterwards.
func (c *Codebase) ScanAll(ctx context.Context) error {
	err := c.index.ScanDir(ctx, c.rootDir)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for path, text := range c.docs {
		c.index.AddSource(path, text)
	}
	return err
}

// ScanFile reindexes path from disk unless it is open.
func (c *Codebase) ScanFile(path string) error {
	if c.IsOpen(path) {
		return nil
	}
	return c.index.ScanFile(path)
}

// RemoveFile drops what path contributed to the index unless it is open.
func (c *Codebase) RemoveFile(path string) {
	if c.IsOpen(path) {
		return
	}
	c.index.Remove(path)
}

// UpdateFile records the editor contents of path and reindexes it. Syntax
// errors are logged, the classes that could be read are indexed anyway.
func (c *Codebase) UpdateFile(path string, content []byte) {
	c.mu.Lock()
	c.docs[path] = content
	c.mu.Unlock()
	if err := c.index.AddSource(path, content); err != nil {
		log.Debugf("update: %s", err)
	}
}

// CloseFile forgets the editor contents of path; the file on disk, if
// any, takes over.
func (c *Codebase) CloseFile(path string) {
	c.mu.Lock()
	delete(c.docs, path)
	c.mu.Unlock()
	if err := c.index.ScanFile(path); err != nil {
		if os.IsNotExist(err) {
			c.index.Remove(path)
			return
		}
		log.Debugf("close: %s", err)
	}
}

func (c *Codebase) IsOpen(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.docs[path]
	return ok
}

// Document returns the contents of path, from the editor when it is open
// and from disk otherwise.
func (c *Codebase) Document(path string) ([]byte, error) {
	c.mu.RLock()
	text, ok := c.docs[path]
	c.mu.RUnlock()
	if ok {
		return text, nil
	}
	return os.ReadFile(path)
}

// Complete computes the candidates at byte offset caret of path.
func (c *Codebase) Complete(path string, caret int, opts completion.Options, cancel func() bool) (*completion.Result, error) {
	text, err := c.Document(path)
	if err != nil {
		return nil, fmt.Errorf("completing %s: %w", path, err)
	}
	if caret < 0 || caret > len(text) {
		return nil, fmt.Errorf("completing %s: offset %d outside of %d bytes", path, caret, len(text))
	}
	return c.engine.Complete(completion.Request{Text: text, File: path, Caret: caret, Options: opts, Cancel: cancel})
}
