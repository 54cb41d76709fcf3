package converter

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is the cause attached when the source path is a file.
var ErrNotDirectory = errors.New("not a directory")

const candidateExt = ".bmp"

// Scan lists the conversion candidates in dir: regular files (or links to
// them) whose extension is .bmp in any case. Subdirectories are not
// descended into. The order is the listing order and becomes the
// processing order.
func (e *Engine) Scan(dir string) ([]string, error) {
	info, err := e.fs.Stat(dir)
	if err != nil {
		return nil, jobError("scan", dir, ErrDirectoryUnavailable, err)
	}
	if !info.IsDir() {
		return nil, jobError("scan", dir, ErrDirectoryUnavailable, ErrNotDirectory)
	}

	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		return nil, jobError("scan", dir, ErrDirectoryUnavailable, err)
	}

	candidates := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), candidateExt) {
			continue
		}
		if !e.isRegular(dir, entry) {
			continue
		}
		candidates = append(candidates, name)
	}

	return candidates, nil
}

func (e *Engine) isRegular(dir string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := e.fs.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && target.Mode().IsRegular()
}
