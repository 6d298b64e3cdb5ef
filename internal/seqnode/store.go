package seqnode

import (
	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"github.com/nimrodSerokTAU/evo-sim/internal/blocklist"
	"github.com/nimrodSerokTAU/evo-sim/internal/blocktree"
)

// Store is the common shape blocktree.Tree and blocklist.List both offer: a
// position-addressed set of blocks with O(log n) (tree) or O(n) (list)
// search, insert, delete and in-place mutation. Engine is written once
// against Store so the tree and list variants share exactly one
// classification/rewrite implementation — the only way to guarantee spec
// §8 testable property 3 (tree and list produce byte-identical block
// sequences) by construction rather than by hoping two hand-duplicated
// implementations stay in sync.
type Store[H any] interface {
	TotalLength() int
	Search(position int, isInsertion bool) (H, int)
	Insert(b block.Block) H
	BlockOf(h H) block.Block
	UpdateInPlace(h H, newCopied, newInserted *int)
	IncrementInPlace(h H, deltaCopied, deltaInserted *int)
	RekeyToInsertOnly(h H)
	IsLeftmost(h H) bool
	Delete(h H)
	Blocks() []block.Block
}

// treeStore adapts *blocktree.Tree to Store[*blocktree.Node].
type treeStore struct {
	tree *blocktree.Tree
}

func (s treeStore) TotalLength() int { return s.tree.TotalLength() }
func (s treeStore) Search(position int, isInsertion bool) (*blocktree.Node, int) {
	return s.tree.Search(position, isInsertion)
}
func (s treeStore) Insert(b block.Block) *blocktree.Node { return s.tree.Insert(b) }
func (s treeStore) BlockOf(n *blocktree.Node) block.Block { return n.Block }
func (s treeStore) UpdateInPlace(n *blocktree.Node, newCopied, newInserted *int) {
	s.tree.UpdateInPlace(n, newCopied, newInserted)
}
func (s treeStore) IncrementInPlace(n *blocktree.Node, deltaCopied, deltaInserted *int) {
	s.tree.IncrementInPlace(n, deltaCopied, deltaInserted)
}
func (s treeStore) RekeyToInsertOnly(n *blocktree.Node) { s.tree.RekeyToInsertOnly(n) }
func (s treeStore) IsLeftmost(n *blocktree.Node) bool   { return n.IsLeftmost() }
func (s treeStore) Delete(n *blocktree.Node)            { s.tree.DeleteNode(n) }
func (s treeStore) Blocks() []block.Block               { return s.tree.Blocks() }

// listStore adapts *blocklist.List to Store[*blocklist.Entry].
type listStore struct {
	list *blocklist.List
}

func (s listStore) TotalLength() int { return s.list.TotalLength() }
func (s listStore) Search(position int, isInsertion bool) (*blocklist.Entry, int) {
	return s.list.Search(position, isInsertion)
}
func (s listStore) Insert(b block.Block) *blocklist.Entry { return s.list.Insert(b) }
func (s listStore) BlockOf(e *blocklist.Entry) block.Block { return e.Block }
func (s listStore) UpdateInPlace(e *blocklist.Entry, newCopied, newInserted *int) {
	s.list.UpdateInPlace(e, newCopied, newInserted)
}
func (s listStore) IncrementInPlace(e *blocklist.Entry, deltaCopied, deltaInserted *int) {
	s.list.IncrementInPlace(e, deltaCopied, deltaInserted)
}
func (s listStore) RekeyToInsertOnly(e *blocklist.Entry) { s.list.RekeyToInsertOnly(e) }
func (s listStore) IsLeftmost(e *blocklist.Entry) bool   { return s.list.IsLeftmost(e) }
func (s listStore) Delete(e *blocklist.Entry)            { s.list.DeleteEntry(e) }
func (s listStore) Blocks() []block.Block                { return s.list.Blocks() }
