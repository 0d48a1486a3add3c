package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wit/pkg/object"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	r, err := Init(dir)
	require.NoError(t, err)
	return r
}

func writeWork(t *testing.T, r *Repo, rel, content string) string {
	t.Helper()
	path := filepath.Join(r.RootDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readWork(t *testing.T, r *Repo, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func readStaged(t *testing.T, r *Repo, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.StagingDir(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// commitFile writes rel, stages it and commits.
func commitFile(t *testing.T, r *Repo, rel, content, message string) *object.Commit {
	t.Helper()
	path := writeWork(t, r, rel, content)
	require.NoError(t, r.Add(path))
	c, err := r.Commit(message)
	require.NoError(t, err)
	return c
}

// storeCommit writes a commit with an empty tree straight into the store,
// bypassing staging and refs. Used to shape histories for ancestry tests.
func storeCommit(t *testing.T, r *Repo, parents ...object.ID) object.ID {
	t.Helper()
	id, err := r.Store.AllocateID()
	require.NoError(t, err)
	if len(parents) == 0 {
		parents = []object.ID{object.NoParent}
	}
	c := &object.Commit{
		ID:      id,
		Parents: parents,
		Date:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Message: "synthetic",
	}
	require.NoError(t, r.Store.WriteCommit(c, t.TempDir()))
	return id
}

func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
