// Package browser holds the directory browser state: the root being browsed,
// the filter text, the snapshot materialized by the last reload, and the
// listing those are derived from.
package browser

import (
	"io/fs"
	"os"
	"path/filepath"

	"storebrowse/internal/errors"
	"storebrowse/internal/log"
)

// Predicate reports whether an entry, given by its full path, is kept.
type Predicate func(path string) bool

// ListFiltered returns the direct children of root whose joined path satisfies
// keep, in the order the operating system enumerates them. A nil keep keeps
// every entry.
//
// An unreadable root yields a *errors.FileError (FileNotFound, InvalidPath or
// FileAccessDenied) and no entries. If enumeration fails after the directory
// was opened, the entries read so far are returned and the failure is logged.
func ListFiltered(root string, keep Predicate) ([]string, error) {
	dir, err := os.Open(root)
	if err != nil {
		return nil, errors.FromFS("cannot read directory", root, err)
	}
	defer dir.Close()

	info, err := dir.Stat()
	if err != nil {
		return nil, errors.FromFS("cannot read directory", root, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("not a directory", root, errors.InvalidPath, nil)
	}

	return listFiltered(dir, root, keep), nil
}

// dirReader is the part of *os.File used to enumerate a directory.
type dirReader interface {
	ReadDir(n int) ([]fs.DirEntry, error)
}

// listFiltered enumerates dir in directory order. os.ReadDir would sort by
// name, so the open file is read directly.
func listFiltered(dir dirReader, root string, keep Predicate) []string {
	entries, err := dir.ReadDir(-1)
	if err != nil {
		log.LogWithFields(log.F("root", root), log.F("read", len(entries))).
			WithError(err).Warn("Directory enumeration stopped early, keeping partial listing")
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if keep != nil && !keep(path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}
