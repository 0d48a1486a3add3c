package fstree

import (
	"fmt"
	"path/filepath"
)

// Status classifies the files of a working tree against a staging tree and
// a committed tree. All paths are slash-separated and relative.
type Status struct {
	Staged    []string // new in staging, or staged content differs from the commit
	Unstaged  []string // staged, but the working copy differs from staging
	Untracked []string // in the working tree, not in staging
}

// Clean reports whether nothing is staged and nothing is modified. Untracked
// files do not make a tree dirty.
func (s *Status) Clean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0
}

// Compare computes the status of working against staging and commit.
//
//  1. Every staged file missing from commit, or whose bytes differ from the
//     commit copy, is staged.
//  2. Every staged file also present in working whose bytes differ from the
//     staged copy is unstaged. Staged files are then dropped from the working
//     set.
//  3. Whatever remains of the working set is untracked.
//
// The exclude subtrees are skipped while listing working; commit may name a
// directory that does not exist, which is treated as an empty tree.
func Compare(working, staging, commit string, exclude ...string) (*Status, error) {
	stagedFiles, err := ListFiles(staging)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	commitFiles, err := ListFiles(commit)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	workFiles, err := ListFiles(working, exclude...)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	inCommit := toSet(commitFiles)
	inWork := toSet(workFiles)

	st := &Status{}
	for _, f := range stagedFiles {
		stagePath := filepath.Join(staging, filepath.FromSlash(f))

		if !inCommit[f] {
			st.Staged = append(st.Staged, f)
		} else {
			same, err := SameContent(stagePath, filepath.Join(commit, filepath.FromSlash(f)))
			if err != nil {
				return nil, fmt.Errorf("status: %w", err)
			}
			if !same {
				st.Staged = append(st.Staged, f)
			}
		}

		if inWork[f] {
			same, err := SameContent(filepath.Join(working, filepath.FromSlash(f)), stagePath)
			if err != nil {
				return nil, fmt.Errorf("status: %w", err)
			}
			if !same {
				st.Unstaged = append(st.Unstaged, f)
			}
			delete(inWork, f)
		}
	}

	for _, f := range workFiles {
		if inWork[f] {
			st.Untracked = append(st.Untracked, f)
		}
	}
	return st, nil
}

func toSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}
