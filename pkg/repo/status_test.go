package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_FreshRepository(t *testing.T) {
	r := newTestRepo(t)
	writeWork(t, r, "a.txt", "a")

	st, err := r.Status()
	require.NoError(t, err)
	assert.Empty(t, st.CurrentCommit)
	assert.Empty(t, st.Staged)
	assert.Empty(t, st.Unstaged)
	assert.Equal(t, []string{"a.txt"}, st.Untracked)
	assert.True(t, st.Clean())
}

func TestStatus_Classification(t *testing.T) {
	r := newTestRepo(t)
	c := commitFile(t, r, "tracked.txt", "v1", "first")

	writeWork(t, r, "tracked.txt", "v2") // unstaged edit
	require.NoError(t, r.Add(writeWork(t, r, "new.txt", "n")))
	writeWork(t, r, "loose.txt", "l")

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, c.ID, st.CurrentCommit)
	assert.Equal(t, []string{"new.txt"}, st.Staged)
	assert.Equal(t, []string{"tracked.txt"}, st.Unstaged)
	assert.Equal(t, []string{"loose.txt"}, st.Untracked)
	assert.False(t, st.Clean())

	again, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, st, again)
}

func TestEnsureClean(t *testing.T) {
	r := newTestRepo(t)
	commitFile(t, r, "a.txt", "1", "first")
	writeWork(t, r, "untracked.txt", "u")
	require.NoError(t, r.ensureClean("test"))

	writeWork(t, r, "a.txt", "2")
	assert.ErrorIs(t, r.ensureClean("test"), ErrDirtyWorkingTree)
}
