package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Init creates a new repository at path: the .wit/ directory with an empty
// staging area, an empty snapshot store, the active-branch marker set to
// master and a default config. Returns ErrRepositoryExists if .wit/ is
// already there.
func Init(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	r := newRepo(abs, opts...)

	if _, err := os.Stat(r.WitDir); err == nil {
		return nil, fmt.Errorf("init: %s: %w", r.WitDir, ErrRepositoryExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("init: stat %s: %w", r.WitDir, err)
	}

	dirs := []string{
		r.WitDir,
		r.StagingDir(),
		r.Store.Root(),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	if err := r.SetActiveBranch(DefaultBranch); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r.log.Info().Str("root", abs).Msg("initialized repository")
	return r, nil
}

// Open searches upward from path for a .wit/ directory and opens the
// repository rooted there. Returns ErrRepositoryNotFound when the
// filesystem root is reached without finding one.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		info, err := os.Stat(filepath.Join(cur, ControlDirName))
		if err == nil && info.IsDir() {
			r := newRepo(cur, opts...)
			r.log.Debug().Str("root", cur).Msg("opened repository")
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open %s: %w", abs, ErrRepositoryNotFound)
		}
		cur = parent
	}
}
