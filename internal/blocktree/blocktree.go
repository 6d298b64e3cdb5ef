// Package blocktree implements C3: a balanced (AVL) binary search tree of
// blocks keyed by ancestor index, where every node additionally carries the
// total sequence length of its subtree so that position-addressed search,
// insertion and deletion all run in O(log n).
//
// This is the reference variant from spec §4.2; internal/blocklist holds an
// unbalanced sorted-slice variant used purely to cross-check it (spec §4.3,
// testable property 3).
package blocktree

import (
	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"github.com/nimrodSerokTAU/evo-sim/internal/simerrors"
)

// Node is one AVL node. Parent is a back-link so in-place mutations
// (UpdateInPlace/IncrementInPlace) can propagate a length delta to the root
// without re-descending from it.
type Node struct {
	Block  block.Block
	Left   *Node
	Right  *Node
	Parent *Node
	Height int

	// SubtreeLength is this node's own Length() plus both children's
	// SubtreeLength. It is the invariant the whole package exists to
	// maintain cheaply.
	SubtreeLength int
}

func (n *Node) ownLength() int {
	return n.Block.Length()
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Height
}

func subtreeLength(n *Node) int {
	if n == nil {
		return 0
	}
	return n.SubtreeLength
}

func balanceFactor(n *Node) int {
	if n == nil {
		return 0
	}
	return height(n.Left) - height(n.Right)
}

func (n *Node) refreshLocal() {
	n.Height = 1 + max(height(n.Left), height(n.Right))
	n.SubtreeLength = n.ownLength() + subtreeLength(n.Left) + subtreeLength(n.Right)
}

// Tree owns the set of blocks of a single sequence.
type Tree struct {
	Root *Node
}

// New creates a tree with a single node holding the initial block — the
// identity block (ancestor_index=0, copied=parent_length, inserted=0) for a
// freshly created SeqNode.
func New(initial block.Block) *Tree {
	n := &Node{Block: initial}
	n.refreshLocal()
	return &Tree{Root: n}
}

// TotalLength is the root's SubtreeLength: the sequence's current length.
func (t *Tree) TotalLength() int {
	return subtreeLength(t.Root)
}

// Insert adds a new block, rebalances, and refreshes SubtreeLength up to the
// root. The new node is returned as a handle to it; the handle stays valid
// until the next DeleteNode, which may move a successor's block into a
// different node.
func (t *Tree) Insert(b block.Block) *Node {
	inserted := &Node{Block: b}
	inserted.refreshLocal()
	t.Root = insertAt(t.Root, nil, inserted)
	return inserted
}

func insertAt(current, parent, inserted *Node) *Node {
	if current == nil {
		inserted.Parent = parent
		return inserted
	}
	if inserted.Block.AncestorIndex < current.Block.AncestorIndex {
		current.Left = insertAt(current.Left, current, inserted)
	} else {
		current.Right = insertAt(current.Right, current, inserted)
	}
	current.refreshLocal()
	return rebalance(current)
}

// DeleteNode removes a node from the tree (standard BST successor
// replacement keyed by the node's current ancestor index), rebalances, and
// refreshes SubtreeLength to the root.
func (t *Tree) DeleteNode(target *Node) {
	t.Root = deleteKey(t.Root, target.Block.AncestorIndex)
}

func deleteKey(current *Node, key int) *Node {
	if current == nil {
		return nil
	}
	switch {
	case key < current.Block.AncestorIndex:
		current.Left = deleteKey(current.Left, key)
	case key > current.Block.AncestorIndex:
		current.Right = deleteKey(current.Right, key)
	default:
		switch {
		case current.Left == nil:
			replacement := current.Right
			if replacement != nil {
				replacement.Parent = current.Parent
			}
			return replacement
		case current.Right == nil:
			replacement := current.Left
			if replacement != nil {
				replacement.Parent = current.Parent
			}
			return replacement
		default:
			successor := minNode(current.Right)
			current.Block = successor.Block
			current.Right = deleteKey(current.Right, successor.Block.AncestorIndex)
		}
	}
	current.refreshLocal()
	return rebalance(current)
}

func minNode(n *Node) *Node {
	for n.Left != nil {
		n = n.Left
	}
	return n
}

func rebalance(n *Node) *Node {
	bf := balanceFactor(n)
	switch {
	case bf > 1 && balanceFactor(n.Left) >= 0:
		return rotateRight(n)
	case bf > 1:
		n.Left = rotateLeft(n.Left)
		return rotateRight(n)
	case bf < -1 && balanceFactor(n.Right) <= 0:
		return rotateLeft(n)
	case bf < -1:
		n.Right = rotateRight(n.Right)
		return rotateLeft(n)
	default:
		return n
	}
}

func rotateLeft(grandparent *Node) *Node {
	pivot := grandparent.Right
	orphan := pivot.Left

	pivot.Parent = grandparent.Parent
	pivot.Left = grandparent
	grandparent.Parent = pivot
	grandparent.Right = orphan
	if orphan != nil {
		orphan.Parent = grandparent
	}

	grandparent.refreshLocal()
	pivot.refreshLocal()
	return pivot
}

func rotateRight(grandparent *Node) *Node {
	pivot := grandparent.Left
	orphan := pivot.Right

	pivot.Parent = grandparent.Parent
	pivot.Right = grandparent
	grandparent.Parent = pivot
	grandparent.Left = orphan
	if orphan != nil {
		orphan.Parent = grandparent
	}

	grandparent.refreshLocal()
	pivot.refreshLocal()
	return pivot
}

// UpdateInPlace overwrites Copied and/or Inserted on an existing node
// without moving it in the tree, then propagates the resulting length delta
// to the root. A nil pointer leaves that field untouched.
func (t *Tree) UpdateInPlace(n *Node, newCopied, newInserted *int) {
	if newCopied != nil {
		n.Block.Copied = *newCopied
	}
	if newInserted != nil {
		n.Block.Inserted = *newInserted
	}
	propagateLength(n)
}

// IncrementInPlace adds deltas to Copied and/or Inserted on an existing
// node and propagates the change to the root.
func (t *Tree) IncrementInPlace(n *Node, deltaCopied, deltaInserted *int) {
	if deltaCopied != nil {
		n.Block.Copied += *deltaCopied
	}
	if deltaInserted != nil {
		n.Block.Inserted += *deltaInserted
	}
	propagateLength(n)
}

// RekeyToInsertOnly turns an existing node into a pure-insertion block by
// setting its ancestor index to block.NoAncestor in place, without
// repositioning it in the tree. This is only ever called (see seqnode's
// AllCopiedUncontained-at-start case) on a node that is already the
// leftmost node in the tree, so BST order is preserved: NoAncestor still
// sorts before everything else.
func (t *Tree) RekeyToInsertOnly(n *Node) {
	n.Block.AncestorIndex = block.NoAncestor
}

func propagateLength(n *Node) {
	for cur := n; cur != nil; cur = cur.Parent {
		cur.refreshLocal()
	}
}

// Search returns the node whose span contains position, and the offset of
// position within that node's own block.
//
// isInsertion distinguishes two half-open conventions: for insertions,
// position == node's cumulative length still resolves to that node (so an
// insertion AtEnd fires against the last block); for deletions it rolls
// forward into the next block instead. This is the one subtle invariant of
// search and it must not be "simplified" — it is what makes the boundary
// cases of §4.1 fall out of a single position query.
func (t *Tree) Search(position int, isInsertion bool) (*Node, int) {
	return search(t.Root, position, isInsertion)
}

func search(n *Node, position int, isInsertion bool) (*Node, int) {
	if n == nil {
		return nil, 0
	}
	if n.Left != nil {
		leftLen := n.Left.SubtreeLength
		if (isInsertion && position <= leftLen) || (!isInsertion && position < leftLen) {
			return search(n.Left, position, isInsertion)
		}
		position -= leftLen
	}
	own := n.ownLength()
	if (!isInsertion && position < own) || (isInsertion && position <= own) {
		return n, position
	}
	if n.Right != nil {
		return search(n.Right, position-own, isInsertion)
	}
	return n, position
}

// IsLeftmost reports whether n has no left child — i.e. no earlier block
// precedes it anywhere in its subtree. Deletion subtype classification
// (§4.1, DeletionAllCopiedUncontained's -at-start variant) uses this to
// detect the very first block of the sequence.
func (n *Node) IsLeftmost() bool {
	return n.Left == nil
}

// InOrder emits nodes in ancestor-index order: the block sequence.
func (t *Tree) InOrder() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Left)
		out = append(out, n)
		walk(n.Right)
	}
	walk(t.Root)
	return out
}

// Blocks is a convenience projection of InOrder onto plain block.Block
// values, e.g. for comparing against the blocklist variant.
func (t *Tree) Blocks() []block.Block {
	nodes := t.InOrder()
	out := make([]block.Block, len(nodes))
	for i, n := range nodes {
		out[i] = n.Block
	}
	return out
}

// Audit recomputes height and SubtreeLength bottom-up and checks BST
// ordering, returning a simerrors.TreeInvariantViolation on the first
// mismatch. Test suites call this after every scenario (spec §4.2).
func (t *Tree) Audit() error {
	_, _, err := audit(t.Root)
	return err
}

func audit(n *Node) (length int, ht int, err error) {
	if n == nil {
		return 0, 0, nil
	}
	leftLen, leftHt, err := audit(n.Left)
	if err != nil {
		return 0, 0, err
	}
	rightLen, rightHt, err := audit(n.Right)
	if err != nil {
		return 0, 0, err
	}
	if n.Left != nil && n.Left.Block.AncestorIndex > n.Block.AncestorIndex {
		return 0, 0, simerrors.TreeInvariantViolation("left child %d > node %d", n.Left.Block.AncestorIndex, n.Block.AncestorIndex)
	}
	if n.Right != nil && n.Right.Block.AncestorIndex < n.Block.AncestorIndex {
		return 0, 0, simerrors.TreeInvariantViolation("right child %d < node %d", n.Right.Block.AncestorIndex, n.Block.AncestorIndex)
	}
	if bf := leftHt - rightHt; bf > 1 || bf < -1 {
		return 0, 0, simerrors.TreeInvariantViolation("AVL balance violated at node %d: %d", n.Block.AncestorIndex, bf)
	}
	wantLen := n.ownLength() + leftLen + rightLen
	if wantLen != n.SubtreeLength {
		return 0, 0, simerrors.TreeInvariantViolation("subtree length mismatch at node %d: cached %d, actual %d", n.Block.AncestorIndex, n.SubtreeLength, wantLen)
	}
	wantHt := 1 + max(leftHt, rightHt)
	if wantHt != n.Height {
		return 0, 0, simerrors.TreeInvariantViolation("height mismatch at node %d: cached %d, actual %d", n.Block.AncestorIndex, n.Height, wantHt)
	}
	return wantLen, wantHt, nil
}
