package repo

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wit/pkg/object"
)

func TestWriteRefs_Format(t *testing.T) {
	r := newTestRepo(t)
	id := object.ID(strings.Repeat("ab", 20))

	require.NoError(t, r.WriteRefs(&RefTable{
		Head: id,
		Branches: map[string]object.ID{
			"zeta":        id,
			DefaultBranch: id,
			"alpha":       "",
		},
	}))

	data, err := os.ReadFile(r.referencesPath())
	require.NoError(t, err)
	want := "HEAD=" + string(id) + "\n" +
		"master=" + string(id) + "\n" +
		"alpha=None\n" +
		"zeta=" + string(id) + "\n"
	assert.Equal(t, want, string(data))
}

func TestReadRefs_NoneAndEmptyAreUnset(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, os.WriteFile(r.referencesPath(), []byte("HEAD=None\nmaster=\nfeat=None\n"), 0o644))

	refs, err := r.ReadRefs()
	require.NoError(t, err)
	assert.Empty(t, refs.Head)
	assert.Equal(t, map[string]object.ID{"master": "", "feat": ""}, refs.Branches)
}

func TestReadRefs_Malformed(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, os.WriteFile(r.referencesPath(), []byte("HEAD\n"), 0o644))
	_, err := r.ReadRefs()
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	r := newTestRepo(t)

	_, _, err := r.Resolve("master")
	assert.ErrorIs(t, err, ErrNoCommitsYet)
	_, _, err = r.Resolve("HEAD")
	assert.ErrorIs(t, err, ErrNoCommitsYet)

	c := commitFile(t, r, "a.txt", "1", "first")

	id, branch, err := r.Resolve("MASTER")
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)
	assert.Equal(t, DefaultBranch, branch)

	id, branch, err = r.Resolve("head")
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)
	assert.Empty(t, branch)

	id, branch, err = r.Resolve(strings.ToUpper(string(c.ID)))
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)
	assert.Empty(t, branch)

	_, _, err = r.Resolve(strings.Repeat("0", object.IDLength))
	assert.ErrorIs(t, err, ErrCommitNotFound)
	_, _, err = r.Resolve("nope")
	assert.ErrorIs(t, err, ErrCommitNotFound)
	_, _, err = r.Resolve("  ")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}
