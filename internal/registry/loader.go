// Package registry discovers read containers on disk.
package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"basecaller/internal/common/fsutil"
)

// Fast5Ext is the extension of a read container.
const Fast5Ext = ".fast5"

// Scanner finds read containers under a directory.
type Scanner struct {
	recursive bool
}

// NewFast5Scanner returns a scanner for *.fast5 files. A recursive scanner
// descends into subdirectories.
func NewFast5Scanner(recursive bool) *Scanner { return &Scanner{recursive: recursive} }

// Scan returns the absolute paths of the read containers under dir in
// lexical order.
func (s *Scanner) Scan(dir string) ([]string, error) {
	abs, err := fsutil.AbsDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	if !s.recursive {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, fmt.Errorf("read dir: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && fsutil.HasExt(e.Name(), Fast5Ext) {
				paths = append(paths, filepath.Join(abs, e.Name()))
			}
		}
		return paths, nil
	}
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && fsutil.HasExt(d.Name(), Fast5Ext) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir scans dir with a Fast5 scanner.
func LoadDir(dir string, recursive bool) ([]string, error) {
	return NewFast5Scanner(recursive).Scan(dir)
}
