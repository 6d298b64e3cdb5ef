// Package block defines the Block value type shared by every SeqNode
// variant: a contiguous run of a sequence expressed relative to the parent
// it was copied from.
package block

// NoAncestor is the sentinel AncestorIndex of a pure-insertion block: one
// with no copied parent columns at all. It sorts strictly before 0.
const NoAncestor = -1

// Block is the triple (ancestor index, copied count, inserted count)
// described in spec §3. It never owns a reference to its neighbors; that is
// the job of the store (blocktree.Tree or blocklist.List) that holds it.
type Block struct {
	AncestorIndex int
	Copied        int
	Inserted      int
}

// Length is the block's own contribution to the owning sequence's length.
func (b Block) Length() int {
	return b.Copied + b.Inserted
}

// IsRedundant reports whether the block carries no sites at all and should
// be removed by its owner. The unique root sentinel is never constructed
// with zero counts, so this check alone is sufficient.
func (b Block) IsRedundant() bool {
	return b.Copied == 0 && b.Inserted == 0
}

// IsPureInsertion reports whether the block has no ancestry.
func (b Block) IsPureInsertion() bool {
	return b.AncestorIndex == NoAncestor
}

// IndelEvent is the atomic unit the EventGenerator produces and a SeqNode
// consumes: an insertion or deletion of Length residues starting at Place.
type IndelEvent struct {
	IsInsertion bool
	Place       int
	Length      int
}

// Insertion builds an insertion event.
func Insertion(place, length int) IndelEvent {
	return IndelEvent{IsInsertion: true, Place: place, Length: length}
}

// Deletion builds a deletion event. Place may be negative, modeling a
// deletion that begins before the sequence start; callers are expected to
// have already clipped Length to the effective span.
func Deletion(place, length int) IndelEvent {
	return IndelEvent{IsInsertion: false, Place: place, Length: length}
}
