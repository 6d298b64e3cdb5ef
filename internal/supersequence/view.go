package supersequence

import "github.com/nimrodSerokTAU/evo-sim/internal/block"

// View is one node's sequence expressed as an ordered list of handles into
// the shared SuperSequence (spec C7). Offset 0 always holds the anchor
// handle inherited from the parent (or the spine's own anchor, for the
// root), never a real residue.
type View struct {
	superSeq *SuperSequence
	handles  []Handle
	nodeID   int
	save     bool
}

// NewRootView builds the root's view over the whole freshly seeded spine.
func NewRootView(superSeq *SuperSequence, nodeID int, save bool) *View {
	handles := superSeq.RootHandles()
	v := &View{superSeq: superSeq, handles: handles, nodeID: nodeID, save: save}
	if save {
		for _, h := range handles {
			superSeq.Reference(h)
		}
	}
	return v
}

// NewChildView builds v's view from parent's view and v's block sequence,
// per spec §4.5. Blocks must be in ancestor-index order (as produced by any
// seqnode Store's Blocks()).
func NewChildView(superSeq *SuperSequence, nodeID int, save bool, parent *View, blocks []block.Block) *View {
	v := &View{superSeq: superSeq, nodeID: nodeID, save: save, handles: make([]Handle, 0, len(blocks)+1)}
	v.handles = append(v.handles, parent.handles[0])
	for _, b := range blocks {
		v.applyBlock(b, parent)
	}
	return v
}

// applyBlock appends the handles contributed by one block: c copied
// handles from the parent starting at offset a+1, then i freshly inserted
// handles spliced after the running tail. A block with AncestorIndex ==
// block.NoAncestor contributes only inserted sites, anchored at the
// parent's own anchor handle (offset 0) so there is always a valid
// insert-after target even at the very start of the sequence.
func (v *View) applyBlock(b block.Block, parent *View) {
	a, c, ins := b.AncestorIndex, b.Copied, b.Inserted
	if c == 0 && ins == 0 {
		return
	}

	var tail Handle
	if a == block.NoAncestor {
		tail = v.handles[0]
	} else {
		for i := 0; i < c; i++ {
			h := parent.handles[a+1+i]
			if v.save {
				v.superSeq.Reference(h)
			}
			v.handles = append(v.handles, h)
		}
		if c > 0 {
			tail = parent.handles[a+c]
		} else {
			tail = parent.handles[a]
		}
	}

	for i := 0; i < ins; i++ {
		siteID := v.superSeq.ConsumeInsertedID()
		h := v.superSeq.InsertAfter(tail, siteID, v.save)
		v.handles = append(v.handles, h)
		tail = h
	}
}

// NodeID is the identifier of the tree node this view belongs to.
func (v *View) NodeID() int { return v.nodeID }

// Handles exposes the view's handles in sequence order, anchor included.
func (v *View) Handles() []Handle { return v.handles }

// Len is the number of handles held, anchor included.
func (v *View) Len() int { return len(v.handles) }
