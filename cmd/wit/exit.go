package main

import (
	"errors"

	"github.com/odvcencio/wit/pkg/repo"
)

// Process exit codes. Anything not listed exits with exitGeneric.
const (
	exitOK = iota
	exitGeneric
	exitRepositoryNotFound
	exitInvalidTarget
	exitNoCommitsYet
	exitNothingToCommit
	exitCommitNotFound
	exitDirtyWorkingTree
	exitMergeConflict
	exitNoSharedAncestor
	exitBranchNameTaken
	exitDuplicateCommit
)

var exitCodes = []struct {
	err  error
	code int
}{
	{repo.ErrRepositoryNotFound, exitRepositoryNotFound},
	{repo.ErrInvalidTarget, exitInvalidTarget},
	{repo.ErrNoCommitsYet, exitNoCommitsYet},
	{repo.ErrNothingToCommit, exitNothingToCommit},
	{repo.ErrCommitNotFound, exitCommitNotFound},
	{repo.ErrDirtyWorkingTree, exitDirtyWorkingTree},
	{repo.ErrMergeConflict, exitMergeConflict},
	{repo.ErrNoSharedAncestor, exitNoSharedAncestor},
	{repo.ErrBranchNameTaken, exitBranchNameTaken},
	{repo.ErrDuplicateCommit, exitDuplicateCommit},
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	for _, ec := range exitCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return exitGeneric
}
