package repo

import (
	"fmt"

	"github.com/odvcencio/wit/pkg/fstree"
	"github.com/odvcencio/wit/pkg/object"
)

// Checkout switches the working tree to target, a branch name or a commit
// id. Checking out a branch makes it active; checking out an id detaches.
//
// Unless force is set the working tree must be clean. Untracked files
// survive a checkout; every other file is replaced by the snapshot.
func (r *Repo) Checkout(target string, force bool) (object.ID, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	if head.IsNone() {
		return "", fmt.Errorf("checkout: %w", ErrNoCommitsYet)
	}

	id, branch, err := r.Resolve(target)
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	if !force {
		if err := r.ensureClean("checkout"); err != nil {
			return "", err
		}
	}
	if err := r.checkoutCommit(id, branch); err != nil {
		return "", err
	}
	return id, nil
}

// checkoutCommit replaces the tracked part of the working tree and the
// staging area with the snapshot of id, then points HEAD at it.
func (r *Repo) checkoutCommit(id object.ID, branch string) error {
	st, err := r.Status()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	untracked := make(map[string]bool, len(st.Untracked))
	for _, f := range st.Untracked {
		untracked[f] = true
	}

	working, err := fstree.ListFiles(r.RootDir, ControlDirName)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	var tracked []string
	for _, f := range working {
		if !untracked[f] {
			tracked = append(tracked, f)
		}
	}
	if err := fstree.RemoveFiles(r.RootDir, tracked, ControlDirName); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	snapshot := r.Store.SnapshotPath(id)
	if err := fstree.CopyTree(snapshot, r.RootDir); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	refs, err := r.ReadRefs()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	refs.Head = id
	if err := r.WriteRefs(refs); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.SetActiveBranch(branch); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := fstree.ReplaceTree(snapshot, r.StagingDir()); err != nil {
		return fmt.Errorf("checkout: staging: %w", err)
	}

	r.log.Info().
		Str("commit", string(id)).
		Str("branch", branch).
		Int("removed", len(tracked)).
		Msg("checked out")
	return nil
}
