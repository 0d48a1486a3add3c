package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/wit/pkg/fstree"
	"github.com/odvcencio/wit/pkg/merge"
	"github.com/odvcencio/wit/pkg/object"
)

// File merge actions reported in FileMergeReport.Action.
const (
	MergeActionAdded = "added" // copied from the incoming commit
	MergeActionLines = "lines" // merged line by line
	MergeActionWhole = "whole" // merged as opaque bytes
)

// FileMergeReport records how a single file was merged.
type FileMergeReport struct {
	Path   string
	Action string
}

// MergeResult is the outcome of Merge. When UpToDate is set nothing was
// changed and Commit is nil.
type MergeResult struct {
	Target   object.ID
	Ancestor object.ID
	Commit   *object.Commit
	UpToDate bool
	Files    []FileMergeReport
}

// Merge merges target (a branch name or commit id) into HEAD.
//
// The files that changed between the shared ancestor and target are merged
// into the staging area: files not staged yet are copied from target, text
// files are merged line by line and anything else as whole files. A clean
// merge is recorded as a commit with parents (HEAD, target) and checked
// out. On conflict the staging area is restored to HEAD and a
// *MergeConflictError is returned.
func (r *Repo) Merge(target string) (*MergeResult, error) {
	return r.MergeWithSigner(target, nil)
}

// MergeWithSigner is Merge with the merge commit signed by signer.
func (r *Repo) MergeWithSigner(target string, signer CommitSigner) (*MergeResult, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if head.IsNone() {
		return nil, fmt.Errorf("merge: %w", ErrNoCommitsYet)
	}
	if err := r.ensureClean("merge"); err != nil {
		return nil, err
	}

	targetID, _, err := r.Resolve(target)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	res := &MergeResult{Target: targetID}
	if targetID == head {
		res.UpToDate = true
		return res, nil
	}

	ancestor, err := r.FindSharedAncestor(head, targetID)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	res.Ancestor = ancestor
	if ancestor == targetID {
		res.UpToDate = true
		return res, nil
	}

	targetSnap := r.Store.SnapshotPath(targetID)
	ancestorSnap := r.Store.SnapshotPath(ancestor)
	changes, err := fstree.Compare(targetSnap, ancestorSnap, "")
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	candidates := append(append([]string{}, changes.Unstaged...), changes.Untracked...)

	for _, rel := range candidates {
		action, err := r.mergeFile(rel, targetSnap, ancestorSnap)
		if err != nil {
			var conflict *merge.ConflictError
			if !errors.As(err, &conflict) {
				return nil, fmt.Errorf("merge: %s: %w", rel, err)
			}
			if rerr := fstree.ReplaceTree(r.Store.SnapshotPath(head), r.StagingDir()); rerr != nil {
				return nil, fmt.Errorf("merge: restore staging after conflict in %s: %w", rel, rerr)
			}
			r.log.Warn().Str("path", rel).Int("line", conflict.Line).Msg("merge conflict")
			return nil, &MergeConflictError{Path: rel, Line: conflict.Line, Err: err}
		}
		res.Files = append(res.Files, FileMergeReport{Path: rel, Action: action})
	}

	message := fmt.Sprintf("Merge %s with %s", targetID, head)
	c, err := r.commit(message, targetID, signer, true)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	res.Commit = c

	active, err := r.ActiveBranch()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if err := r.checkoutCommit(c.ID, active); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	r.log.Info().
		Str("target", string(targetID)).
		Str("ancestor", string(ancestor)).
		Str("commit", string(c.ID)).
		Int("files", len(res.Files)).
		Msg("merged")
	return res, nil
}

// mergeFile merges rel from the incoming snapshot into the staging area.
func (r *Repo) mergeFile(rel, incomingRoot, baseRoot string) (string, error) {
	native := filepath.FromSlash(rel)
	stagedPath := filepath.Join(r.StagingDir(), native)
	incomingPath := filepath.Join(incomingRoot, native)

	current, err := os.ReadFile(stagedPath)
	if errors.Is(err, fs.ErrNotExist) {
		if err := fstree.CopyFile(incomingPath, stagedPath); err != nil {
			return "", err
		}
		return MergeActionAdded, nil
	}
	if err != nil {
		return "", err
	}

	incoming, err := os.ReadFile(incomingPath)
	if err != nil {
		return "", err
	}
	base, err := os.ReadFile(filepath.Join(baseRoot, native))
	baseExists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	var (
		merged []byte
		action string
	)
	if merge.IsText(current, incoming, base) {
		merged, err = merge.Lines(current, incoming, base)
		action = MergeActionLines
	} else {
		merged, err = merge.Whole(current, incoming, base, baseExists)
		action = MergeActionWhole
	}
	if err != nil {
		return "", err
	}
	// The staged file already exists, so its mode is kept.
	if err := os.WriteFile(stagedPath, merged, 0o644); err != nil {
		return "", err
	}
	return action, nil
}
