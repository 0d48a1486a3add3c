// Package fstree enumerates, compares and copies plain directory trees. It
// is the scanning and diff layer shared by the working tree, the staging
// area and stored snapshots, which all share the same on-disk shape.
package fstree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ListFiles returns the regular files under root as slash-separated paths
// relative to root, sorted. Any subtree whose relative path equals one of
// exclude is skipped entirely. A root that does not exist has no files.
func ListFiles(root string, exclude ...string) ([]string, error) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[filepath.ToSlash(filepath.Clean(e))] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root && errors.Is(walkErr, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if skip[rel] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
