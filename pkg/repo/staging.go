package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/wit/pkg/fstree"
)

// Add copies each path into the staging area at its repository-relative
// location, merging over what is already staged. Paths are absolute or
// relative to the process working directory. Directories are copied
// recursively, skipping any entry named .wit.
func (r *Repo) Add(paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("add: no paths given: %w", ErrInvalidTarget)
	}
	for _, p := range paths {
		if err := r.addPath(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) addPath(path string) error {
	abs, rel, err := r.repoRelative(path)
	if err != nil {
		return fmt.Errorf("add %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("add %s: no such file or directory: %w", path, ErrInvalidTarget)
		}
		return fmt.Errorf("add %s: %w", path, err)
	}

	dst := filepath.Join(r.StagingDir(), rel)
	if info.IsDir() {
		if err := fstree.CopyTree(abs, dst, ControlDirName); err != nil {
			return fmt.Errorf("add %s: %w", path, err)
		}
	} else {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("add %s: not a regular file: %w", path, ErrInvalidTarget)
		}
		if err := fstree.CopyFile(abs, dst); err != nil {
			return fmt.Errorf("add %s: %w", path, err)
		}
	}

	r.log.Debug().Str("path", filepath.ToSlash(rel)).Bool("dir", info.IsDir()).Msg("staged")
	return nil
}

// repoRelative returns the absolute form of path and its location relative
// to the repository root. Paths outside the root or inside .wit are
// rejected with ErrInvalidTarget.
func (r *Repo) repoRelative(path string) (string, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return "", "", fmt.Errorf("outside repository: %w", ErrInvalidTarget)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("outside repository: %w", ErrInvalidTarget)
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	if first == ControlDirName || filepath.Base(abs) == ControlDirName {
		return "", "", fmt.Errorf("control directory: %w", ErrInvalidTarget)
	}
	return abs, rel, nil
}
