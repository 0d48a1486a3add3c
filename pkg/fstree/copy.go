package fstree

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CopyFile copies the regular file src to dst, creating parent directories
// and preserving the permission bits. An existing dst is overwritten.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("copy %s: mkdir: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copy %s: close: %w", src, err)
	}
	// OpenFile only applies the mode on create.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("copy %s: chmod: %w", src, err)
	}
	return nil
}

// CopyTree copies every regular file under src into dst at the same
// relative location, merging into whatever dst already holds. Colliding
// files are overwritten. Entries (files or directories) whose base name is
// in skipNames are not copied, at any depth.
func CopyTree(src, dst string, skipNames ...string) error {
	skip := make(map[string]bool, len(skipNames))
	for _, n := range skipNames {
		skip[n] = true
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("copy tree: mkdir %s: %w", dst, err)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("copy tree: %w", walkErr)
		}
		if path != src && skip[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("copy tree: mkdir %s: %w", target, err)
			}
			return nil
		case d.Type().IsRegular():
			return CopyFile(path, target)
		default:
			// Symlinks and special files are not part of a snapshot.
			return nil
		}
	})
}

// ReplaceTree removes dst and recreates it as a copy of src.
func ReplaceTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("replace tree: remove %s: %w", dst, err)
	}
	return CopyTree(src, dst)
}

// RemoveFiles deletes the listed files (relative to root) and then removes
// every directory under root that became empty, deepest first. Directories
// whose relative path equals one of keep are never descended into or
// removed, and root itself is never removed.
func RemoveFiles(root string, files []string, keep ...string) error {
	for _, rel := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", rel, err)
		}
	}
	return RemoveEmptyDirs(root, keep...)
}

// RemoveEmptyDirs removes empty directories under root bottom-up, skipping
// the subtrees named in keep.
func RemoveEmptyDirs(root string, keep ...string) error {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[filepath.ToSlash(filepath.Clean(k))] = true
	}

	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() || path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if kept[filepath.ToSlash(rel)] {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove empty dirs: %w", err)
	}

	// Deepest paths first so parents empty out before they are checked.
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], string(filepath.Separator)), strings.Count(dirs[j], string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return dirs[i] > dirs[j]
	})
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("remove empty dirs: %w", err)
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("remove empty dirs: %w", err)
		}
	}
	return nil
}
