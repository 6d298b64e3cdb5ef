package seqnode

import (
	"testing"

	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"gotest.tools/v3/assert"
)

func applyAllThree(t *testing.T, rootLength int, events []block.IndelEvent) (tree *TreeNode, list *ListNode, naive *Naive) {
	t.Helper()
	tree = NewTreeNode(rootLength)
	list = NewListNode(rootLength)
	naive = NewNaive(rootLength)
	for _, ev := range events {
		tree.Apply(ev)
		list.Apply(ev)
		naive.Apply(ev)
	}
	return
}

func assertBlocks(t *testing.T, got []block.Block, want []block.Block) {
	t.Helper()
	assert.Equal(t, len(got), len(want))
	for i := range want {
		assert.Equal(t, got[i], want[i])
	}
}

// TestS1SingleInsertion is spec scenario S1.
func TestS1SingleInsertion(t *testing.T) {
	events := []block.IndelEvent{block.Insertion(30, 5)}
	tree, list, _ := applyAllThree(t, 100, events)
	want := []block.Block{
		{AncestorIndex: 0, Copied: 30, Inserted: 5},
		{AncestorIndex: 30, Copied: 70, Inserted: 0},
	}
	assertBlocks(t, tree.Blocks(), want)
	assertBlocks(t, list.Blocks(), want)
	assert.Equal(t, tree.Length(), 105)
}

// TestS2InsertionDeletionInsertion is spec scenario S2.
func TestS2InsertionDeletionInsertion(t *testing.T) {
	events := []block.IndelEvent{
		block.Insertion(30, 5),
		block.Deletion(40, 12),
		block.Insertion(12, 2),
	}
	tree, list, _ := applyAllThree(t, 100, events)
	want := []block.Block{
		{AncestorIndex: 0, Copied: 12, Inserted: 2},
		{AncestorIndex: 12, Copied: 18, Inserted: 5},
		{AncestorIndex: 30, Copied: 5, Inserted: 0},
		{AncestorIndex: 47, Copied: 53, Inserted: 0},
	}
	assertBlocks(t, tree.Blocks(), want)
	assertBlocks(t, list.Blocks(), want)
	assert.Equal(t, tree.Length(), 95)
}

// TestS3DeletionConsumesCopiedBlockWithInsertionTail is spec scenario S3.
func TestS3DeletionConsumesCopiedBlockWithInsertionTail(t *testing.T) {
	events := []block.IndelEvent{
		block.Insertion(30, 5),
		block.Insertion(40, 12),
		block.Deletion(35, 5),
	}
	tree, list, _ := applyAllThree(t, 100, events)
	want := []block.Block{
		{AncestorIndex: 0, Copied: 30, Inserted: 17},
		{AncestorIndex: 35, Copied: 65, Inserted: 0},
	}
	assertBlocks(t, tree.Blocks(), want)
	assertBlocks(t, list.Blocks(), want)
	assert.Equal(t, tree.Length(), 112)
}

// TestS4InsertionAtStartCreatesSentinelBlock is spec scenario S4.
func TestS4InsertionAtStartCreatesSentinelBlock(t *testing.T) {
	events := []block.IndelEvent{
		block.Insertion(30, 5),
		block.Insertion(0, 12),
		block.Insertion(42, 3),
	}
	tree, list, _ := applyAllThree(t, 100, events)
	want := []block.Block{
		{AncestorIndex: block.NoAncestor, Copied: 0, Inserted: 12},
		{AncestorIndex: 0, Copied: 30, Inserted: 8},
		{AncestorIndex: 30, Copied: 70, Inserted: 0},
	}
	assertBlocks(t, tree.Blocks(), want)
	assertBlocks(t, list.Blocks(), want)
	assert.Equal(t, tree.Length(), 120)
}

// TestOutOfSequenceEventIsSilentNoOp covers the classify guard: an event
// whose Place exceeds the current length is dropped without mutating state.
func TestOutOfSequenceEventIsSilentNoOp(t *testing.T) {
	tree := NewTreeNode(10)
	tree.Apply(block.Deletion(50, 3))
	assert.Equal(t, tree.Length(), 10)
	assertBlocks(t, tree.Blocks(), []block.Block{{AncestorIndex: 0, Copied: 10, Inserted: 0}})
}

// TestNegativePlaceDeletionIsClipped exercises spec §3's clipping rule: a
// deletion starting before position 0 is clipped to [0, place+length).
func TestNegativePlaceDeletionIsClipped(t *testing.T) {
	tree := NewTreeNode(10)
	tree.Apply(block.Deletion(-3, 5))
	assert.Equal(t, tree.Length(), 8)
	assertBlocks(t, tree.Blocks(), []block.Block{{AncestorIndex: 2, Copied: 8, Inserted: 0}})
}

// TestNegativePlaceDeletionFullyBeforeStartIsNoOp covers the other half of
// the clip: an effective span that is empty or negative drops the event.
func TestNegativePlaceDeletionFullyBeforeStartIsNoOp(t *testing.T) {
	tree := NewTreeNode(10)
	tree.Apply(block.Deletion(-10, 5))
	assert.Equal(t, tree.Length(), 10)
}

// TestTreeAndListAgreeUnderRandomizedEvents is spec testable property 3:
// tree and list variants must produce byte-identical block sequences for
// any event sequence.
func TestTreeAndListAgreeUnderRandomizedEvents(t *testing.T) {
	events := []block.IndelEvent{
		block.Insertion(5, 3),
		block.Deletion(2, 4),
		block.Insertion(0, 2),
		block.Insertion(20, 6),
		block.Deletion(10, 15),
		block.Insertion(1, 1),
		block.Deletion(0, 3),
	}
	tree, list, _ := applyAllThree(t, 30, events)
	assertBlocks(t, tree.Blocks(), list.Blocks())
	assert.Equal(t, tree.Length(), list.Length())
}

// TestNaiveBlockProjectionAgreesWithTree is spec testable property 4: the
// naive variant, projected back into blocks, matches the block variants.
func TestNaiveBlockProjectionAgreesWithTree(t *testing.T) {
	events := []block.IndelEvent{
		block.Insertion(30, 5),
		block.Deletion(40, 12),
		block.Insertion(12, 2),
	}
	tree, _, naive := applyAllThree(t, 100, events)
	assertBlocks(t, naive.Blocks(), tree.Blocks())
	assert.Equal(t, naive.Length(), tree.Length())
}
