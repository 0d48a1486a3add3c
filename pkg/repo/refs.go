package repo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/odvcencio/wit/pkg/fstree"
	"github.com/odvcencio/wit/pkg/object"
)

// headRef is the reserved key of the reference table. Targets are
// lower-cased before lookup, so "HEAD" and "head" both reach it.
const headRef = "HEAD"

// RefTable is the persisted reference table. An empty id means unset.
type RefTable struct {
	Head     object.ID
	Branches map[string]object.ID
}

// BranchNames returns the branch names, master first and the rest sorted.
func (t *RefTable) BranchNames() []string {
	names := make([]string, 0, len(t.Branches))
	for name := range t.Branches {
		if name != DefaultBranch {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultBranch}, names...)
}

// ReadRefs loads .wit/references.txt. A missing file is the table of a
// fresh repository: HEAD and master both unset.
func (r *Repo) ReadRefs() (*RefTable, error) {
	t := &RefTable{Branches: map[string]object.ID{DefaultBranch: ""}}

	data, err := os.ReadFile(r.referencesPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return t, nil
		}
		return nil, fmt.Errorf("read refs: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("read refs: line %d: missing '='", lineNo)
		}
		key = strings.TrimSpace(key)
		id := parseRefValue(value)
		if key == headRef {
			t.Head = id
			continue
		}
		t.Branches[key] = id
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read refs: %w", err)
	}
	return t, nil
}

func parseRefValue(value string) object.ID {
	id := object.ID(strings.TrimSpace(value))
	if id.IsNone() {
		return ""
	}
	return id
}

func formatRefValue(id object.ID) string {
	if id.IsNone() {
		return string(object.NoParent)
	}
	return string(id)
}

// WriteRefs replaces .wit/references.txt with t.
func (r *Repo) WriteRefs(t *RefTable) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s=%s\n", headRef, formatRefValue(t.Head))
	for _, name := range t.BranchNames() {
		fmt.Fprintf(&buf, "%s=%s\n", name, formatRefValue(t.Branches[name]))
	}
	if err := fstree.WriteFileAtomic(r.referencesPath(), buf.Bytes()); err != nil {
		return fmt.Errorf("write refs: %w", err)
	}
	return nil
}

// Head returns the id HEAD points at, or "" before the first commit.
func (r *Repo) Head() (object.ID, error) {
	t, err := r.ReadRefs()
	if err != nil {
		return "", err
	}
	return t.Head, nil
}

// ActiveBranch returns the active branch name, or "" when HEAD is
// detached.
func (r *Repo) ActiveBranch() (string, error) {
	data, err := os.ReadFile(r.activeBranchPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read active branch: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetActiveBranch records name as the active branch; "" detaches.
func (r *Repo) SetActiveBranch(name string) error {
	if err := fstree.WriteFileAtomic(r.activeBranchPath(), []byte(name)); err != nil {
		return fmt.Errorf("set active branch: %w", err)
	}
	return nil
}

// Resolve maps a user-supplied target to a commit id. A branch name
// resolves through the reference table and is returned as the branch;
// "head" resolves to HEAD; anything else must be the id of a stored
// commit.
func (r *Repo) Resolve(target string) (object.ID, string, error) {
	name := strings.ToLower(strings.TrimSpace(target))
	if name == "" {
		return "", "", fmt.Errorf("resolve: empty target: %w", ErrInvalidTarget)
	}

	t, err := r.ReadRefs()
	if err != nil {
		return "", "", err
	}

	if name == strings.ToLower(headRef) {
		if t.Head.IsNone() {
			return "", "", fmt.Errorf("resolve %s: %w", headRef, ErrNoCommitsYet)
		}
		return t.Head, "", nil
	}

	if id, ok := t.Branches[name]; ok {
		if id.IsNone() {
			return "", "", fmt.Errorf("resolve branch %s: %w", name, ErrNoCommitsYet)
		}
		return id, name, nil
	}

	id := object.ID(name)
	if !r.Store.Has(id) {
		return "", "", fmt.Errorf("resolve %s: %w", target, ErrCommitNotFound)
	}
	return id, "", nil
}
