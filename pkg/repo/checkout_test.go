package repo

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wit/pkg/fstree"
)

func TestCheckout_NoCommitsYet(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.Checkout("master", false)
	assert.ErrorIs(t, err, ErrNoCommitsYet)
}

func TestCheckout_UnknownTarget(t *testing.T) {
	r := newTestRepo(t)
	commitFile(t, r, "a.txt", "1", "first")
	_, err := r.Checkout("nowhere", false)
	assert.ErrorIs(t, err, ErrCommitNotFound)
}

func TestCheckout_RoundTrip(t *testing.T) {
	r := newTestRepo(t)
	files := map[string]string{
		"a.txt":         "alpha\n",
		"dir/b.txt":     "beta",
		"dir/sub/c.bin": "\x00\x01\x02",
		"empty.txt":     "",
	}
	for rel, content := range files {
		writeWork(t, r, rel, content)
	}
	require.NoError(t, r.Add(r.RootDir))
	c1, err := r.Commit("snapshot")
	require.NoError(t, err)

	// Move away: change, delete and add files.
	writeWork(t, r, "a.txt", "changed")
	require.NoError(t, os.Remove(filepath.Join(r.RootDir, "dir", "b.txt")))
	require.NoError(t, r.Add(writeWork(t, r, "dir/new.txt", "new")))
	require.NoError(t, r.Add(filepath.Join(r.RootDir, "a.txt")))
	_, err = r.Commit("second")
	require.NoError(t, err)

	_, err = r.Checkout(string(c1.ID), false)
	require.NoError(t, err)

	got, err := fstree.ListFiles(r.RootDir, ControlDirName)
	require.NoError(t, err)
	want := make([]string, 0, len(files))
	for rel := range files {
		want = append(want, rel)
	}
	sort.Strings(want)
	assert.Equal(t, want, got)
	for rel, content := range files {
		assert.Equal(t, content, readWork(t, r, rel), rel)
	}

	_, err = os.Stat(filepath.Join(r.RootDir, "dir", "new.txt"))
	assert.True(t, os.IsNotExist(err))

	// Staging invariant: a fresh checkout is clean.
	st, err := r.Status()
	require.NoError(t, err)
	assert.Empty(t, st.Staged)
	assert.Empty(t, st.Unstaged)
	assert.Equal(t, c1.ID, st.CurrentCommit)

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Empty(t, branch, "checking out an id detaches")
}

func TestCheckout_BranchBecomesActive(t *testing.T) {
	r := newTestRepo(t)
	commitFile(t, r, "a.txt", "1", "first")
	_, err := r.CreateBranch("feat")
	require.NoError(t, err)
	commitFile(t, r, "a.txt", "2", "second")

	_, err = r.Checkout("FEAT", false)
	require.NoError(t, err)
	assert.Equal(t, "1", readWork(t, r, "a.txt"))
	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feat", branch)
}

func TestCheckout_UntrackedFilesSurvive(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitFile(t, r, "a.txt", "1", "first")
	commitFile(t, r, "b.txt", "2", "second")
	writeWork(t, r, "notes/todo.txt", "keep me")

	_, err := r.Checkout(string(c1.ID), false)
	require.NoError(t, err)

	assert.Equal(t, "keep me", readWork(t, r, "notes/todo.txt"))
	_, err = os.Stat(filepath.Join(r.RootDir, "b.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestCheckout_RemovesEmptiedDirectories(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitFile(t, r, "a.txt", "1", "first")
	commitFile(t, r, "deep/er/b.txt", "2", "second")

	_, err := r.Checkout(string(c1.ID), false)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(r.RootDir, "deep"))
	assert.True(t, os.IsNotExist(err))
}

func TestCheckout_DirtyTreeRefused(t *testing.T) {
	r := newTestRepo(t)
	commitFile(t, r, "a.txt", "1", "first")
	_, err := r.CreateBranch("feat")
	require.NoError(t, err)
	writeWork(t, r, "a.txt", "dirty")

	_, err = r.Checkout("feat", false)
	assert.ErrorIs(t, err, ErrDirtyWorkingTree)

	// Nothing moved, including the active branch.
	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, DefaultBranch, branch)
	assert.Equal(t, "dirty", readWork(t, r, "a.txt"))
}

func TestCheckout_ForceDiscardsChanges(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitFile(t, r, "a.txt", "1", "first")
	writeWork(t, r, "a.txt", "dirty")
	require.NoError(t, r.Add(writeWork(t, r, "staged.txt", "s")))

	_, err := r.Checkout("master", true)
	require.NoError(t, err)

	assert.Equal(t, "1", readWork(t, r, "a.txt"))
	_, err = os.Stat(filepath.Join(r.RootDir, "staged.txt"))
	assert.True(t, os.IsNotExist(err))

	st, err := r.Status()
	require.NoError(t, err)
	assert.True(t, st.Clean())
	assert.Equal(t, c1.ID, st.CurrentCommit)
}
