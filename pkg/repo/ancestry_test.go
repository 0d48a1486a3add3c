package repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wit/pkg/object"
)

func TestAncestorTrace_Linear(t *testing.T) {
	r := newTestRepo(t)
	a := storeCommit(t, r)
	b := storeCommit(t, r, a)
	c := storeCommit(t, r, b)

	trace, err := r.AncestorTrace(c)
	require.NoError(t, err)
	assert.Equal(t, []TraceEntry{
		{Commit: c, Parent: b, Depth: 0},
		{Commit: b, Parent: a, Depth: 1},
		{Commit: a, Parent: object.NoParent, Depth: 2},
	}, trace)
}

func TestAncestorTrace_MergeVisitsSecondParentFirst(t *testing.T) {
	r := newTestRepo(t)
	root := storeCommit(t, r)
	first := storeCommit(t, r, root)
	second := storeCommit(t, r, root)
	m := storeCommit(t, r, first, second)
	top := storeCommit(t, r, m)

	trace, err := r.AncestorTrace(top)
	require.NoError(t, err)
	assert.Equal(t, []TraceEntry{
		{Commit: top, Parent: m, Depth: 0},
		{Commit: m, Parent: second, Depth: 1},
		{Commit: second, Parent: root, Depth: 1},
		{Commit: root, Parent: object.NoParent, Depth: 2},
		{Commit: m, Parent: first, Depth: 1},
		{Commit: first, Parent: root, Depth: 2},
		{Commit: root, Parent: object.NoParent, Depth: 3},
	}, trace)
}

func TestAncestorTrace_NestedMerges(t *testing.T) {
	r := newTestRepo(t)
	root := storeCommit(t, r)
	x := storeCommit(t, r, root)
	y := storeCommit(t, r, root)
	inner := storeCommit(t, r, x, y)
	z := storeCommit(t, r, root)
	outer := storeCommit(t, r, z, inner)

	trace, err := r.AncestorTrace(outer)
	require.NoError(t, err)
	assert.Equal(t, []TraceEntry{
		{Commit: outer, Parent: inner, Depth: 0},
		{Commit: inner, Parent: y, Depth: 0},
		{Commit: y, Parent: root, Depth: 0},
		{Commit: root, Parent: object.NoParent, Depth: 1},
		{Commit: inner, Parent: x, Depth: 0},
		{Commit: x, Parent: root, Depth: 1},
		{Commit: root, Parent: object.NoParent, Depth: 2},
		{Commit: outer, Parent: z, Depth: 0},
		{Commit: z, Parent: root, Depth: 1},
		{Commit: root, Parent: object.NoParent, Depth: 2},
	}, trace)
}

func TestAncestorTrace_MissingRecord(t *testing.T) {
	r := newTestRepo(t)
	ghost := object.ID(strings.Repeat("f", object.IDLength))
	c := storeCommit(t, r, ghost)

	_, err := r.AncestorTrace(c)
	assert.ErrorIs(t, err, ErrCommitNotFound)
}

func TestAncestorTrace_Limit(t *testing.T) {
	r := newTestRepo(t)
	id := storeCommit(t, r)
	for i := 0; i < 4; i++ {
		id = storeCommit(t, r, id)
	}

	prev := ancestorTraceLimit
	ancestorTraceLimit = 2
	t.Cleanup(func() { ancestorTraceLimit = prev })

	_, err := r.AncestorTrace(id)
	assert.ErrorContains(t, err, "exceeded maximum")
}

func TestFindSharedAncestor_DivergingBranches(t *testing.T) {
	r := newTestRepo(t)
	a := storeCommit(t, r)
	b := storeCommit(t, r, a)
	c := storeCommit(t, r, b)
	d := storeCommit(t, r, c)
	e := storeCommit(t, r, b)

	got, err := r.FindSharedAncestor(d, e)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	got, err = r.FindSharedAncestor(e, d)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestFindSharedAncestor_TargetIsAncestor(t *testing.T) {
	r := newTestRepo(t)
	a := storeCommit(t, r)
	b := storeCommit(t, r, a)

	got, err := r.FindSharedAncestor(b, a)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestFindSharedAncestor_TieGoesToFirstTrace(t *testing.T) {
	r := newTestRepo(t)
	x := storeCommit(t, r)
	y := storeCommit(t, r)
	m := storeCommit(t, r, x, y) // trace: y at depth 0, x at depth 1
	n := storeCommit(t, r, y, x) // trace: x at depth 0, y at depth 1

	got, err := r.FindSharedAncestor(m, n)
	require.NoError(t, err)
	assert.Equal(t, y, got)

	got, err = r.FindSharedAncestor(n, m)
	require.NoError(t, err)
	assert.Equal(t, x, got)
}

func TestFindSharedAncestor_UnrelatedRoots(t *testing.T) {
	r := newTestRepo(t)
	x := storeCommit(t, r)
	y := storeCommit(t, r)

	_, err := r.FindSharedAncestor(x, y)
	assert.ErrorIs(t, err, ErrNoSharedAncestor)
}
