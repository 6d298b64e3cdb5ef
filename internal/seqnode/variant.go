package seqnode

import (
	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"github.com/nimrodSerokTAU/evo-sim/internal/blocklist"
	"github.com/nimrodSerokTAU/evo-sim/internal/blocktree"
)

// TreeNode is the balanced-tree-backed SeqNode variant (spec C3 + C4).
type TreeNode = Node[*blocktree.Node]

// NewTreeNode creates a TreeNode for a child whose parent has parentLength
// residues. The identity block {AncestorIndex: 0, Copied: parentLength,
// Inserted: 0} represents "nothing has happened yet" (spec §4.2).
func NewTreeNode(parentLength int) *TreeNode {
	tree := blocktree.New(block.Block{AncestorIndex: 0, Copied: parentLength, Inserted: 0})
	return &Node[*blocktree.Node]{store: treeStore{tree: tree}, length: parentLength}
}

// ListNode is the sorted-list-backed SeqNode variant, used for cross-
// validation against TreeNode and for small sequences where O(n) list
// operations are cheaper than maintaining AVL balance.
type ListNode = Node[*blocklist.Entry]

// NewListNode creates a ListNode for a child whose parent has parentLength
// residues.
func NewListNode(parentLength int) *ListNode {
	list := blocklist.New(block.Block{AncestorIndex: 0, Copied: parentLength, Inserted: 0})
	return &Node[*blocklist.Entry]{store: listStore{list: list}, length: parentLength}
}
