// Package seqnode implements C4: applying an ordered stream of IndelEvents
// to a parent sequence's block structure (spec §4.1, §4.3), in three
// variants sharing one classification/rewrite engine (Node[H], generic over
// the backing Store), plus an independent Naive oracle (naive.go) that
// bypasses blocks entirely.
package seqnode

import "github.com/nimrodSerokTAU/evo-sim/internal/block"

// Node applies IndelEvents to the identity block of a sequence whose parent
// had ParentLength residues, against any Store[H].
type Node[H any] struct {
	store  Store[H]
	length int
}

// Length is the node's current total sequence length.
func (n *Node[H]) Length() int { return n.length }

// Blocks returns the block sequence in ancestor-index order.
func (n *Node[H]) Blocks() []block.Block { return n.store.Blocks() }

// Apply applies a single IndelEvent, per spec §4.1/§4.3. Out-of-bounds or
// zero-effective-length events are silently dropped (simerrors.OutOfSequence
// semantics; not surfaced as a Go error, since the continuous-time model
// legitimately proposes these).
func (n *Node[H]) Apply(ev block.IndelEvent) {
	ev = clipDeletionStart(ev)
	subtype, handle, offset := n.classify(ev)
	if subtype == OutOfSequence {
		return
	}
	if ev.IsInsertion {
		n.applyInsertion(ev, subtype, handle, offset)
	} else {
		n.applyDeletion(ev, subtype, handle, offset)
	}
}

// ApplyAll applies events in order; straddling deletions are re-issued as a
// residual event at the same position with the remaining length (spec
// §4.3 step 4) via a bounded recursive call back into Apply — bounded
// because each re-issue strictly shrinks the remaining span, so recursion
// depth is capped by the number of blocks one deletion straddles.
func (n *Node[H]) ApplyAll(events []block.IndelEvent) {
	for _, ev := range events {
		n.Apply(ev)
	}
}

// clipDeletionStart implements spec §3's clipping rule for deletions that
// begin before the sequence start: Place may be negative, and the
// effective deletion is [0, Place+Length). A deletion whose effective span
// is empty or negative becomes a length-0 no-op, which classify reports as
// OutOfSequence.
func clipDeletionStart(ev block.IndelEvent) block.IndelEvent {
	if ev.IsInsertion || ev.Place >= 0 {
		return ev
	}
	effectiveLength := ev.Place + ev.Length
	if effectiveLength <= 0 {
		return block.Deletion(0, 0)
	}
	return block.Deletion(0, effectiveLength)
}

func (n *Node[H]) classify(ev block.IndelEvent) (EventSubType, H, int) {
	var zero H
	total := n.store.TotalLength()
	if ev.Length <= 0 || ev.Place > total || (!ev.IsInsertion && ev.Place == total) {
		return OutOfSequence, zero, -1
	}
	handle, offset := n.store.Search(ev.Place, ev.IsInsertion)
	if ev.IsInsertion {
		return n.classifyInsertion(ev, handle, offset)
	}
	return n.classifyDeletion(ev, handle, offset)
}

func (n *Node[H]) classifyInsertion(ev block.IndelEvent, handle H, offset int) (EventSubType, H, int) {
	if ev.Place == 0 {
		first, _ := n.store.Search(-1, true)
		if n.store.BlockOf(first).Copied == 0 {
			return InsertionAtStartAddition, handle, offset
		}
		return InsertionAtStart, handle, offset
	}
	b := n.store.BlockOf(handle)
	if offset < b.Copied {
		return InsertionInsideCopied, handle, offset
	}
	return InsertionInsideInserted, handle, offset
}

func (n *Node[H]) classifyDeletion(ev block.IndelEvent, handle H, offset int) (EventSubType, H, int) {
	b := n.store.BlockOf(handle)
	if offset < b.Copied {
		switch {
		case offset+ev.Length < b.Copied:
			if offset > 0 {
				return DeletionInsideCopiedContainedAtMid, handle, offset
			}
			return DeletionInsideCopiedContainedAtStart, handle, offset
		case offset+ev.Length == b.Copied && offset == 0:
			return DeletionOfCopied, handle, offset
		case offset == 0:
			if ev.Place == 0 && n.store.IsLeftmost(handle) {
				return DeletionAllCopiedUncontainedAtStart, handle, offset
			}
			return DeletionAllCopiedUncontained, handle, offset
		default:
			return DeletionInsideCopiedUncontained, handle, offset
		}
	}
	if offset+ev.Length <= b.Inserted {
		if offset > b.Copied {
			return DeletionInsideInsertedContained, handle, offset
		}
		return DeletionInsideInsertedUncontained, handle, offset
	}
	return DeletionOfInserted, handle, offset
}

func (n *Node[H]) applyInsertion(ev block.IndelEvent, subtype EventSubType, handle H, offset int) {
	switch subtype {
	case InsertionAtStartAddition:
		n.store.IncrementInPlace(handle, nil, intPtr(ev.Length))
	case InsertionAtStart:
		n.store.Insert(block.Block{AncestorIndex: block.NoAncestor, Copied: 0, Inserted: ev.Length})
	case InsertionInsideCopied:
		b := n.store.BlockOf(handle)
		tail := block.Block{
			AncestorIndex: b.AncestorIndex + offset,
			Copied:        b.Copied - offset,
			Inserted:      b.Inserted,
		}
		n.store.UpdateInPlace(handle, intPtr(offset), intPtr(ev.Length))
		n.store.Insert(tail)
	case InsertionInsideInserted:
		n.store.IncrementInPlace(handle, nil, intPtr(ev.Length))
	}
	n.length += ev.Length
}

func (n *Node[H]) applyDeletion(ev block.IndelEvent, subtype EventSubType, handle H, offset int) {
	switch subtype {
	case DeletionInsideCopiedContainedAtMid:
		b := n.store.BlockOf(handle)
		tail := block.Block{
			AncestorIndex: b.AncestorIndex + offset + ev.Length,
			Copied:        b.Copied - (offset + ev.Length),
			Inserted:      b.Inserted,
		}
		n.store.UpdateInPlace(handle, intPtr(offset), intPtr(0))
		n.store.Insert(tail)
		n.length -= ev.Length

	case DeletionInsideCopiedContainedAtStart:
		b := n.store.BlockOf(handle)
		n.store.Delete(handle)
		n.store.Insert(block.Block{
			AncestorIndex: b.AncestorIndex + offset + ev.Length,
			Copied:        b.Copied - ev.Length,
			Inserted:      b.Inserted,
		})
		n.length -= ev.Length

	case DeletionOfCopied:
		b := n.store.BlockOf(handle)
		if b.AncestorIndex > block.NoAncestor {
			insertedCount := b.Inserted
			n.store.Delete(handle)
			n.length -= insertedCount
			if insertedCount > 0 {
				n.Apply(block.Insertion(ev.Place, insertedCount))
			}
		} else {
			n.store.Delete(handle)
			n.store.Insert(block.Block{
				AncestorIndex: b.AncestorIndex + offset + ev.Length,
				Copied:        b.Copied - (offset + ev.Length),
				Inserted:      b.Inserted,
			})
		}
		n.length -= ev.Length

	case DeletionAllCopiedUncontained, DeletionAllCopiedUncontainedAtStart:
		n.applyDeleteAllCopied(ev, subtype, handle)

	case DeletionInsideCopiedUncontained:
		b := n.store.BlockOf(handle)
		removedFromCopied := b.Copied - offset
		deletedFromInsertion := min(ev.Length-removedFromCopied, b.Inserted)
		n.store.IncrementInPlace(handle, intPtr(-removedFromCopied), nil)
		n.length -= removedFromCopied
		n.deleteFromInsertedTail(handle, ev.Length-removedFromCopied, deletedFromInsertion, ev.Place)

	case DeletionInsideInsertedContained, DeletionInsideInsertedUncontained, DeletionOfInserted:
		b := n.store.BlockOf(handle)
		deletedFromInsertion := min(b.Inserted-(offset-b.Copied), ev.Length)
		n.deleteFromInsertedTail(handle, ev.Length, deletedFromInsertion, ev.Place)
	}
}

func (n *Node[H]) applyDeleteAllCopied(ev block.IndelEvent, subtype EventSubType, handle H) {
	b := n.store.BlockOf(handle)
	deletedFromInsertion := min(ev.Length-b.Copied, b.Inserted)
	deletedFromCopied := b.Copied
	n.length -= deletedFromCopied + deletedFromInsertion

	remainingInserted := b.Inserted - deletedFromInsertion
	remainingLength := ev.Length - deletedFromCopied - deletedFromInsertion

	if remainingInserted > 0 {
		if subtype == DeletionAllCopiedUncontainedAtStart {
			n.store.UpdateInPlace(handle, intPtr(0), intPtr(remainingInserted))
			n.store.RekeyToInsertOnly(handle)
			return
		}
		n.store.Delete(handle)
		newHandle, _ := n.store.Search(ev.Place, true)
		n.store.IncrementInPlace(newHandle, nil, intPtr(remainingInserted))
		return
	}

	n.store.Delete(handle)
	if remainingLength > 0 {
		n.Apply(block.Deletion(ev.Place, remainingLength))
	}
}

func (n *Node[H]) deleteFromInsertedTail(handle H, deletionLen, deletedFromInsertion, place int) {
	leftToDeleteLater := deletionLen - deletedFromInsertion
	n.store.IncrementInPlace(handle, nil, intPtr(-deletedFromInsertion))
	n.length -= deletedFromInsertion
	if n.store.BlockOf(handle).IsRedundant() {
		n.store.Delete(handle)
	}
	if leftToDeleteLater > 0 {
		n.Apply(block.Deletion(place, leftToDeleteLater))
	}
}

func intPtr(i int) *int { return &i }
