package repo

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/odvcencio/wit/pkg/object"
)

const (
	// ControlDirName is the control-metadata directory at the repository root.
	ControlDirName = ".wit"
	// DefaultBranch is the branch every repository starts on.
	DefaultBranch = "master"

	stagingDirName   = "staging_area"
	imagesDirName    = "images"
	referencesFile   = "references.txt"
	activeBranchFile = "activated.txt"
	configFile       = "config.toml"
)

// Repo is an opened wit repository. It is resolved once per command and
// passed to every operation; nothing is looked up from the process cwd
// after Open returns.
type Repo struct {
	RootDir string        // working tree root
	WitDir  string        // .wit/ directory
	Store   *object.Store // commit snapshots

	log zerolog.Logger
}

// Option configures a Repo returned by Init or Open.
type Option func(*Repo)

// WithLogger routes repository events to logger. Repositories log nothing
// by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repo) {
		r.log = logger
	}
}

func newRepo(root string, opts ...Option) *Repo {
	witDir := filepath.Join(root, ControlDirName)
	r := &Repo{
		RootDir: root,
		WitDir:  witDir,
		Store:   object.NewStore(filepath.Join(witDir, imagesDirName)),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StagingDir returns the root of the staging area.
func (r *Repo) StagingDir() string {
	return filepath.Join(r.WitDir, stagingDirName)
}

func (r *Repo) referencesPath() string {
	return filepath.Join(r.WitDir, referencesFile)
}

func (r *Repo) activeBranchPath() string {
	return filepath.Join(r.WitDir, activeBranchFile)
}

// snapshotRoot returns the tree for id, or "" (an empty tree) when id is
// unset.
func (r *Repo) snapshotRoot(id object.ID) string {
	if id.IsNone() {
		return ""
	}
	return r.Store.SnapshotPath(id)
}
