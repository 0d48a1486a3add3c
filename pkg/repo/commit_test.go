package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wit/pkg/object"
)

func TestCommit_NothingStaged(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.Commit("empty")
	assert.ErrorIs(t, err, ErrNothingToCommit)

	commitFile(t, r, "a.txt", "1", "first")
	_, err = r.Commit("again")
	assert.ErrorIs(t, err, ErrNothingToCommit)
}

func TestCommit_FirstCommitAdvancesMaster(t *testing.T) {
	r := newTestRepo(t)
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("", 2*60*60))
	pinClock(t, at)

	c := commitFile(t, r, "a.txt", "1", "first\n")
	assert.Equal(t, []object.ID{object.NoParent}, c.Parents)
	assert.Equal(t, "first", c.Message)

	refs, err := r.ReadRefs()
	require.NoError(t, err)
	assert.Equal(t, c.ID, refs.Head)
	assert.Equal(t, c.ID, refs.Branches[DefaultBranch])

	stored, err := r.Store.ReadCommit(c.ID)
	require.NoError(t, err)
	assert.True(t, at.Equal(stored.Date))
	assert.Equal(t, "1", readFile(t, r.Store.SnapshotPath(c.ID), "a.txt"))
}

func TestCommit_SnapshotIsWholeStagingArea(t *testing.T) {
	r := newTestRepo(t)
	commitFile(t, r, "a.txt", "1", "first")
	c := commitFile(t, r, "b.txt", "2", "second")

	assert.Equal(t, "1", readFile(t, r.Store.SnapshotPath(c.ID), "a.txt"))
	assert.Equal(t, "2", readFile(t, r.Store.SnapshotPath(c.ID), "b.txt"))
}

func TestCommit_Monotonicity(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitFile(t, r, "a.txt", "1", "first")
	c2 := commitFile(t, r, "a.txt", "2", "second")
	assert.Equal(t, []object.ID{c1.ID}, c2.Parents)

	refs, err := r.ReadRefs()
	require.NoError(t, err)
	assert.Equal(t, c2.ID, refs.Head)
	assert.Equal(t, c2.ID, refs.Branches[DefaultBranch])
}

func TestCommit_DetachedHeadLeavesBranchesAlone(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitFile(t, r, "a.txt", "1", "first")
	c2 := commitFile(t, r, "a.txt", "2", "second")

	_, err := r.Checkout(string(c1.ID), false)
	require.NoError(t, err)
	c3 := commitFile(t, r, "a.txt", "3", "third")

	refs, err := r.ReadRefs()
	require.NoError(t, err)
	assert.Equal(t, c3.ID, refs.Head)
	assert.Equal(t, c2.ID, refs.Branches[DefaultBranch])
}

func TestCommit_BranchBehindHeadDoesNotMove(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitFile(t, r, "a.txt", "1", "first")
	_, err := r.CreateBranch("feat")
	require.NoError(t, err)
	c2 := commitFile(t, r, "a.txt", "2", "second")

	refs, err := r.ReadRefs()
	require.NoError(t, err)
	assert.Equal(t, c1.ID, refs.Branches["feat"])
	assert.Equal(t, c2.ID, refs.Branches[DefaultBranch])
}

func TestCommitWithSigner(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.Add(writeWork(t, r, "a.txt", "1")))

	var payload []byte
	c, err := r.CommitWithSigner("signed", func(p []byte) (string, error) {
		payload = p
		return "sig-data", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "sig-data", c.Signature)

	stored, err := r.Store.ReadCommit(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "sig-data", stored.Signature)
	assert.Equal(t, object.CommitSigningPayload(stored), payload)
}

func TestLog_FirstParentNewestFirst(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.Log("", 0)
	assert.ErrorIs(t, err, ErrNoCommitsYet)

	c1 := commitFile(t, r, "a.txt", "1", "first")
	c2 := commitFile(t, r, "a.txt", "2", "second")
	c3 := commitFile(t, r, "a.txt", "3", "third")

	all, err := r.Log("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []object.ID{c3.ID, c2.ID, c1.ID}, []object.ID{all[0].ID, all[1].ID, all[2].ID})

	limited, err := r.Log(c2.ID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, c2.ID, limited[0].ID)
}
