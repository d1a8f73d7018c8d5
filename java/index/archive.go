package index

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/multierr"
)

// ScanArchive indexes the .java entries of a source archive such as the
// src.zip of a JDK. Entries are registered under archive!entry. Broken
// entries do not stop the scan.
func (ix *Index) ScanArchive(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	var errs error
	n := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".java" {
			continue
		}
		src, err := readEntry(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s!%s: %w", path, f.Name, err))
			continue
		}
		if err := ix.AddSource(path+"!"+f.Name, src); err != nil {
			log.Debugf("archive: %s", err)
		}
		n++
	}
	log.Infof("indexed %d sources from %s", n, path)
	return errs
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
