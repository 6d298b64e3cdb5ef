package seqnode

// EventSubType is one of the fourteen concrete rewrite cases enumerated in
// spec §4.1, plus OutOfSequence for events classify drops. It exists for
// debuggability and tests (spec GLOSSARY: "Event subtype") — application
// logic only branches on the handful of subtypes whose rewrite actually
// differs; several deletion subtypes below share one code path by design
// (see engine.go).
type EventSubType int

const (
	InsertionAtStart EventSubType = iota
	InsertionAtStartAddition
	InsertionInsideCopied
	InsertionInsideInserted
	InsertionAtEnd
	DeletionInsideCopiedContainedAtMid
	DeletionInsideCopiedContainedAtStart
	DeletionInsideCopiedUncontained
	DeletionOfCopied
	DeletionAllCopiedUncontained
	DeletionAllCopiedUncontainedAtStart
	DeletionInsideInsertedContained
	DeletionInsideInsertedUncontained
	DeletionOfInserted
	OutOfSequence
)

func (t EventSubType) String() string {
	switch t {
	case InsertionAtStart:
		return "InsertionAtStart"
	case InsertionAtStartAddition:
		return "InsertionAtStartAddition"
	case InsertionInsideCopied:
		return "InsertionInsideCopied"
	case InsertionInsideInserted:
		return "InsertionInsideInserted"
	case InsertionAtEnd:
		return "InsertionAtEnd"
	case DeletionInsideCopiedContainedAtMid:
		return "DeletionInsideCopiedContainedAtMid"
	case DeletionInsideCopiedContainedAtStart:
		return "DeletionInsideCopiedContainedAtStart"
	case DeletionInsideCopiedUncontained:
		return "DeletionInsideCopiedUncontained"
	case DeletionOfCopied:
		return "DeletionOfCopied"
	case DeletionAllCopiedUncontained:
		return "DeletionAllCopiedUncontained"
	case DeletionAllCopiedUncontainedAtStart:
		return "DeletionAllCopiedUncontainedAtStart"
	case DeletionInsideInsertedContained:
		return "DeletionInsideInsertedContained"
	case DeletionInsideInsertedUncontained:
		return "DeletionInsideInsertedUncontained"
	case DeletionOfInserted:
		return "DeletionOfInserted"
	default:
		return "OutOfSequence"
	}
}
