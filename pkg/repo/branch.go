package repo

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/odvcencio/wit/pkg/object"
)

// CreateBranch adds a branch named name (lower-cased) pointing at HEAD.
// Before the first commit the branch is created unset, like master.
func (r *Repo) CreateBranch(name string) (object.ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := validateBranchName(name); err != nil {
		return "", fmt.Errorf("create branch %q: %w", name, err)
	}

	refs, err := r.ReadRefs()
	if err != nil {
		return "", fmt.Errorf("create branch %q: %w", name, err)
	}
	if _, exists := refs.Branches[name]; exists {
		return "", fmt.Errorf("create branch %q: %w", name, ErrBranchNameTaken)
	}
	if r.Store.Has(object.ID(name)) {
		return "", fmt.Errorf("create branch %q: names a commit: %w", name, ErrBranchNameTaken)
	}

	refs.Branches[name] = refs.Head
	if err := r.WriteRefs(refs); err != nil {
		return "", fmt.Errorf("create branch %q: %w", name, err)
	}
	r.log.Info().Str("branch", name).Str("commit", string(refs.Head)).Msg("created branch")
	return refs.Head, nil
}

func validateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidTarget)
	}
	if name == strings.ToLower(headRef) {
		return fmt.Errorf("reserved name: %w", ErrInvalidTarget)
	}
	if strings.ContainsAny(name, "=,/\\") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("illegal character: %w", ErrInvalidTarget)
	}
	return nil
}

// ListBranches returns the branch names, master first and the rest sorted.
func (r *Repo) ListBranches() ([]string, error) {
	refs, err := r.ReadRefs()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return refs.BranchNames(), nil
}

// CurrentBranch returns the active branch, or "" when HEAD is detached.
func (r *Repo) CurrentBranch() (string, error) {
	return r.ActiveBranch()
}
