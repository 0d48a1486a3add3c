package object

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/wit/pkg/fstree"
)

var (
	ErrCommitNotFound  = errors.New("commit not found")
	ErrDuplicateCommit = errors.New("commit already exists")
)

const metadataExt = ".txt"

// maxAllocateAttempts bounds id allocation; exhausting it means the random
// source is broken rather than unlucky.
const maxAllocateAttempts = 64

// idSource supplies the randomness for AllocateID. Tests swap it to force
// collisions.
var idSource io.Reader = rand.Reader

// Store keeps commit snapshots as plain directory copies:
// <root>/<id>/ holds the file tree and <root>/<id>.txt the metadata record.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The directory is
// created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory holding all snapshots.
func (s *Store) Root() string {
	return s.root
}

// SnapshotPath returns the root of the stored file tree for id.
func (s *Store) SnapshotPath(id ID) string {
	return filepath.Join(s.root, string(id))
}

func (s *Store) metadataPath(id ID) string {
	return filepath.Join(s.root, string(id)+metadataExt)
}

// Has reports whether a metadata record exists for id.
func (s *Store) Has(id ID) bool {
	if !id.Valid() {
		return false
	}
	info, err := os.Stat(s.metadataPath(id))
	return err == nil && info.Mode().IsRegular()
}

// AllocateID returns a fresh random id that names neither an existing
// snapshot directory nor a metadata record.
func (s *Store) AllocateID() (ID, error) {
	raw := make([]byte, IDLength/2)
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		if _, err := io.ReadFull(idSource, raw); err != nil {
			return "", fmt.Errorf("allocate id: %w", err)
		}
		id := ID(hex.EncodeToString(raw))
		if !s.taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("allocate id: no unused id after %d attempts", maxAllocateAttempts)
}

func (s *Store) taken(id ID) bool {
	if _, err := os.Lstat(s.SnapshotPath(id)); err == nil {
		return true
	}
	if _, err := os.Lstat(s.metadataPath(id)); err == nil {
		return true
	}
	return false
}

// WriteCommit persists c and a full copy of contentRoot under c.ID. The
// tree is copied to a temporary directory and renamed into place before
// the metadata record is written, so a record never points at a partial
// tree. Returns ErrDuplicateCommit if the id is already in use.
func (s *Store) WriteCommit(c *Commit, contentRoot string) error {
	if !c.ID.Valid() {
		return fmt.Errorf("write commit: invalid id %q", c.ID)
	}
	if s.taken(c.ID) {
		return fmt.Errorf("write commit %s: %w", c.ID, ErrDuplicateCommit)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("write commit %s: mkdir: %w", c.ID, err)
	}

	tmpTree, err := os.MkdirTemp(s.root, ".tmp-tree-*")
	if err != nil {
		return fmt.Errorf("write commit %s: tmpdir: %w", c.ID, err)
	}
	if err := fstree.CopyTree(contentRoot, tmpTree); err != nil {
		os.RemoveAll(tmpTree)
		return fmt.Errorf("write commit %s: %w", c.ID, err)
	}
	if err := os.Rename(tmpTree, s.SnapshotPath(c.ID)); err != nil {
		os.RemoveAll(tmpTree)
		return fmt.Errorf("write commit %s: rename tree: %w", c.ID, err)
	}

	if err := fstree.WriteFileAtomic(s.metadataPath(c.ID), MarshalCommit(c)); err != nil {
		return fmt.Errorf("write commit %s: %w", c.ID, err)
	}
	return nil
}

// ReadCommit reads the metadata record of id.
func (s *Store) ReadCommit(id ID) (*Commit, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("read commit %q: %w", id, ErrCommitNotFound)
	}
	data, err := os.ReadFile(s.metadataPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read commit %s: %w", id, ErrCommitNotFound)
		}
		return nil, fmt.Errorf("read commit %s: %w", id, err)
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", id, err)
	}
	c.ID = id
	return c, nil
}

// ReadParents returns [first] or [first, second] for id. A root commit
// yields [NoParent].
func (s *Store) ReadParents(id ID) ([]ID, error) {
	c, err := s.ReadCommit(id)
	if err != nil {
		return nil, err
	}
	return c.Parents, nil
}

// List returns the ids of every stored commit, sorted.
func (s *Store) List() ([]ID, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list commits: %w", err)
	}

	var ids []ID
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, metadataExt) {
			continue
		}
		id := ID(strings.TrimSuffix(name, metadataExt))
		if id.Valid() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
