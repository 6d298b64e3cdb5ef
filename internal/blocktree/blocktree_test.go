package blocktree

import (
	"math/rand"
	"testing"

	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"github.com/nimrodSerokTAU/evo-sim/internal/simerrors"
	"gotest.tools/v3/assert"
)

func TestNewSingleNode(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 10, Inserted: 0})
	assert.Equal(t, tree.TotalLength(), 10)
	assert.NilError(t, tree.Audit())
}

func TestInsertMaintainsBalance(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 1, Inserted: 0})
	for i := 1; i < 200; i++ {
		tree.Insert(block.Block{AncestorIndex: i, Copied: 1, Inserted: 0})
		assert.NilError(t, tree.Audit())
	}
	assert.Equal(t, tree.TotalLength(), 200)
	assert.Equal(t, len(tree.InOrder()), 200)
}

func TestInsertDescendingMaintainsBalance(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 200, Copied: 1, Inserted: 0})
	for i := 199; i >= 0; i-- {
		tree.Insert(block.Block{AncestorIndex: i, Copied: 1, Inserted: 0})
		assert.NilError(t, tree.Audit())
	}
	assert.Equal(t, tree.TotalLength(), 201)
}

func TestDeleteNodeKeepsInvariants(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 1, Inserted: 0})
	nodes := []*Node{tree.Root}
	for i := 1; i < 50; i++ {
		nodes = append(nodes, tree.Insert(block.Block{AncestorIndex: i, Copied: 1, Inserted: 0}))
	}
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
	for i, n := range nodes {
		tree.DeleteNode(n)
		assert.NilError(t, tree.Audit())
		assert.Equal(t, tree.TotalLength(), 50-i-1)
	}
}

func TestUpdateAndIncrementInPlacePropagatesLength(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 10, Inserted: 0})
	second := tree.Insert(block.Block{AncestorIndex: 1, Copied: 5, Inserted: 0})

	newCopied := 7
	tree.UpdateInPlace(second, &newCopied, nil)
	assert.Equal(t, tree.TotalLength(), 17)

	delta := 3
	tree.IncrementInPlace(second, nil, &delta)
	assert.Equal(t, tree.TotalLength(), 20)
	assert.NilError(t, tree.Audit())
}

func TestRekeyToInsertOnlyOnLeftmost(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 1, Inserted: 2})
	assert.Assert(t, tree.Root.IsLeftmost())
	tree.RekeyToInsertOnly(tree.Root)
	assert.Equal(t, tree.Root.Block.AncestorIndex, block.NoAncestor)
}

func TestSearchInsertionVsDeletionBoundary(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 10, Inserted: 0})
	tree.Insert(block.Block{AncestorIndex: 10, Copied: 10, Inserted: 0})

	node, offset := tree.Search(10, true)
	assert.Equal(t, node.Block.AncestorIndex, 0)
	assert.Equal(t, offset, 10)

	node, offset = tree.Search(10, false)
	assert.Equal(t, node.Block.AncestorIndex, 10)
	assert.Equal(t, offset, 0)
}

func TestSearchAtEndOfSequence(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 5, Inserted: 0})
	node, offset := tree.Search(5, true)
	assert.Equal(t, node.Block.AncestorIndex, 0)
	assert.Equal(t, offset, 5)
}

func TestAuditCatchesBrokenSubtreeLength(t *testing.T) {
	tree := New(block.Block{AncestorIndex: 0, Copied: 10, Inserted: 0})
	tree.Root.SubtreeLength = 999
	err := tree.Audit()
	assert.Assert(t, err != nil)
	assert.Assert(t, simerrors.IsTreeInvariantViolation(err))
}
