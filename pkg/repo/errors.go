package repo

import (
	"errors"
	"fmt"

	"github.com/odvcencio/wit/pkg/object"
)

// Error kinds surfaced by repository operations. Callers match them with
// errors.Is; every operation wraps them with its own context.
var (
	ErrRepositoryNotFound = errors.New("not a wit repository (or any of the parent directories)")
	ErrRepositoryExists   = errors.New("repository already exists")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrNoCommitsYet       = errors.New("no commits yet")
	ErrNothingToCommit    = errors.New("nothing to commit")
	ErrDirtyWorkingTree   = errors.New("working tree has changes that are not committed")
	ErrMergeConflict      = errors.New("merge conflict")
	ErrNoSharedAncestor   = errors.New("no shared ancestor")
	ErrBranchNameTaken    = errors.New("branch name already taken")

	ErrCommitNotFound  = object.ErrCommitNotFound
	ErrDuplicateCommit = object.ErrDuplicateCommit
)

// MergeConflictError names the file a merge could not reconcile. By the
// time it is returned the staging area has been restored to the pre-merge
// commit.
type MergeConflictError struct {
	Path string
	Line int // 1-based line of a text conflict, 0 for a whole-file conflict
	Err  error
}

func (e *MergeConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", ErrMergeConflict, e.Path, e.Line)
	}
	return fmt.Sprintf("%s: %s", ErrMergeConflict, e.Path)
}

func (e *MergeConflictError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}
