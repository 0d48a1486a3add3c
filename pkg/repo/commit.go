package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/wit/pkg/fstree"
	"github.com/odvcencio/wit/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string to be persisted in Commit.Signature.
type CommitSigner func(payload []byte) (string, error)

// nowFunc stamps new commits. Tests pin it.
var nowFunc = time.Now

// Commit snapshots the staging area as a new commit on top of HEAD.
func (r *Repo) Commit(message string) (*object.Commit, error) {
	return r.CommitWithSigner(message, nil)
}

// CommitWithSigner creates a new commit and signs it when signer is
// provided. It fails with ErrNothingToCommit when no file is staged.
func (r *Repo) CommitWithSigner(message string, signer CommitSigner) (*object.Commit, error) {
	return r.commit(message, "", signer, false)
}

// commit records the staging area with HEAD as first parent and second,
// when set, as second parent. allowEmpty skips the staged-changes check,
// which merge commits need when the merged tree equals HEAD's.
func (r *Repo) commit(message string, second object.ID, signer CommitSigner, allowEmpty bool) (*object.Commit, error) {
	refs, err := r.ReadRefs()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	oldHead := refs.Head

	if !allowEmpty {
		st, err := fstree.Compare(r.RootDir, r.StagingDir(), r.snapshotRoot(oldHead), ControlDirName)
		if err != nil {
			return nil, fmt.Errorf("commit: %w", err)
		}
		if len(st.Staged) == 0 {
			return nil, fmt.Errorf("commit: %w", ErrNothingToCommit)
		}
	}

	id, err := r.Store.AllocateID()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	parents := []object.ID{object.NoParent}
	if !oldHead.IsNone() {
		parents[0] = oldHead
	}
	if !second.IsNone() {
		parents = append(parents, second)
	}

	c := &object.Commit{
		ID:      id,
		Parents: parents,
		Date:    nowFunc().Truncate(time.Second),
		Message: strings.TrimRight(message, "\r\n"),
	}
	if signer != nil {
		signature, err := signer(object.CommitSigningPayload(c))
		if err != nil {
			return nil, fmt.Errorf("commit: sign commit: %w", err)
		}
		c.Signature = signature
	}

	if err := r.Store.WriteCommit(c, r.StagingDir()); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	active, err := r.ActiveBranch()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	refs.Head = id
	if branchID, ok := refs.Branches[active]; ok && active != "" && branchID == oldHead {
		refs.Branches[active] = id
	}
	if err := r.WriteRefs(refs); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.log.Info().
		Str("commit", string(id)).
		Str("branch", active).
		Int("parents", len(parents)).
		Msg("committed")
	return c, nil
}

// Log walks first-parent history starting at start, newest first. An
// empty start means HEAD; limit <= 0 means no limit.
func (r *Repo) Log(start object.ID, limit int) ([]*object.Commit, error) {
	if start.IsNone() {
		head, err := r.Head()
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		if head.IsNone() {
			return nil, fmt.Errorf("log: %w", ErrNoCommitsYet)
		}
		start = head
	}

	var commits []*object.Commit
	for current := start; !current.IsNone(); {
		if limit > 0 && len(commits) >= limit {
			break
		}
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		commits = append(commits, c)
		current = c.FirstParent()
	}
	return commits, nil
}
