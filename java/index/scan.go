package index

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// skipDirs are directories that never hold sources worth indexing.
var skipDirs = map[string]bool{
	"target":       true,
	"build":        true,
	"out":          true,
	"node_modules": true,
}

// ScanDir indexes every .java file below root, parsing files in parallel.
// Files that cannot be read or contain syntax errors do not stop the scan;
// their errors are combined into the returned error.
func (ix *Index) ScanDir(ctx context.Context, root string) error {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".java" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		errs error
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := ix.ScanFile(path); err != nil {
				log.Debugf("scan: %s", err)
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("scanned %d files below %s", len(paths), root)
	return errs
}

// ScanFile reads and indexes a single file.
func (ix *Index) ScanFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ix.AddSource(path, src)
}
