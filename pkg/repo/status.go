package repo

import (
	"fmt"

	"github.com/odvcencio/wit/pkg/fstree"
	"github.com/odvcencio/wit/pkg/object"
)

// StatusReport is the status of the working tree together with the commit
// it was computed against.
type StatusReport struct {
	CurrentCommit object.ID // "" before the first commit
	fstree.Status
}

// Status classifies the working tree against the staging area and the
// HEAD snapshot.
func (r *Repo) Status() (*StatusReport, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	st, err := fstree.Compare(r.RootDir, r.StagingDir(), r.snapshotRoot(head), ControlDirName)
	if err != nil {
		return nil, err
	}
	return &StatusReport{CurrentCommit: head, Status: *st}, nil
}

// ensureClean fails with ErrDirtyWorkingTree when anything is staged or
// modified. Untracked files are allowed.
func (r *Repo) ensureClean(op string) error {
	st, err := r.Status()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !st.Clean() {
		r.log.Debug().
			Strs("staged", st.Staged).
			Strs("unstaged", st.Unstaged).
			Msg("working tree is dirty")
		return fmt.Errorf("%s: %d staged, %d unstaged: %w", op, len(st.Staged), len(st.Unstaged), ErrDirtyWorkingTree)
	}
	return nil
}
