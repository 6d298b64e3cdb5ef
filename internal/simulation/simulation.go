package simulation

import (
	"math/rand"

	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"github.com/nimrodSerokTAU/evo-sim/internal/eventgen"
	"github.com/nimrodSerokTAU/evo-sim/internal/msa"
	"github.com/nimrodSerokTAU/evo-sim/internal/phylotree"
	"github.com/nimrodSerokTAU/evo-sim/internal/seqnode"
	"github.com/nimrodSerokTAU/evo-sim/internal/simconfig"
	"github.com/nimrodSerokTAU/evo-sim/internal/simerrors"
	"github.com/nimrodSerokTAU/evo-sim/internal/substitution"
	"github.com/nimrodSerokTAU/evo-sim/internal/supersequence"
)

// seqStore is the contract every C4 variant satisfies (TreeNode, ListNode,
// Naive all export the same three methods, only their backing store
// differs), letting the driver stay agnostic to --type.
type seqStore interface {
	ApplyAll(events []block.IndelEvent)
	Blocks() []block.Block
	Length() int
}

func newSeqStore(variant simconfig.SeqNodeVariant, parentLength int) seqStore {
	switch variant {
	case simconfig.VariantList:
		return seqnode.NewListNode(parentLength)
	case simconfig.VariantNaive:
		return seqnode.NewNaive(parentLength)
	default:
		return seqnode.NewTreeNode(parentLength)
	}
}

// Result is one finished replicate. Rows is nil when cfg.KeepInMemory is
// false, since rows were streamed to streamPath as they finished instead.
type Result struct {
	Names []string
	Rows  []string
}

// Run walks tree in pre-order (spec §4.8): at the root it assigns the
// configured length and no events; at every other node it runs the
// EventGenerator over the parent's length and the branch length, applies
// the resulting events to a fresh SeqNode, builds the node's SequenceView
// from the parent's view and the SeqNode's blocks, and — if substitutions
// are enabled — evolves the parent's residues over the branch. Every
// node's RNG stream is derived solely from rootSeed and the node's id
// (deriveSeed), so the walk can be reordered or parallelized across
// disjoint subtrees without changing any node's output.
//
// streamPath is only used when cfg.KeepInMemory is false; it names the
// file rows are appended to one at a time once the walk has finished and
// absolute positions are assigned, per spec §5's memory discipline for
// large trees.
func Run(tree *phylotree.Tree, cfg simconfig.SimConfiguration, matrix *substitution.RateMatrix, algorithm substitution.Algorithm, rootSeed uint64, streamPath string) (*Result, error) {
	if cfg.KeepInMemory {
		return runInMemory(tree, cfg, matrix, algorithm, rootSeed)
	}
	return runStreaming(tree, cfg, matrix, algorithm, rootSeed, streamPath)
}

type walkState struct {
	super           *supersequence.SuperSequence
	builder         *msa.Builder
	lengths         map[int]int
	views           map[int]*supersequence.View
	residues        map[int][]int
	pendingChildren map[int]int
	sampler         *substitution.Sampler
	evCfg           eventgen.Config
	tree            *phylotree.Tree
	rootSeed        uint64
}

func newWalkState(tree *phylotree.Tree, cfg simconfig.SimConfiguration, matrix *substitution.RateMatrix, algorithm substitution.Algorithm, rootSeed uint64) *walkState {
	super := supersequence.New(cfg.OriginalSequenceLength)
	w := &walkState{
		super:           super,
		builder:         msa.New(super),
		lengths:         make(map[int]int, len(tree.Nodes)),
		views:           make(map[int]*supersequence.View, len(tree.Nodes)),
		residues:        make(map[int][]int, len(tree.Nodes)),
		pendingChildren: make(map[int]int, len(tree.Nodes)),
		tree:            tree,
		rootSeed:        rootSeed,
		evCfg: eventgen.Config{
			InsertionRate:        cfg.InsertionRate,
			DeletionRate:         cfg.DeletionRate,
			DeletionExtraEdgeLen: cfg.DeletionExtraEdgeLen,
			IndelLengthAlpha:     cfg.IndelLengthAlpha,
			IndelTruncatedLength: cfg.IndelTruncatedLength,
		},
	}
	if cfg.EnableSubstitutions {
		w.sampler = substitution.New(matrix, algorithm, cfg.SubstitutionRate)
	}
	for _, n := range tree.Nodes {
		w.pendingChildren[n.ID] = n.ChildCount()
	}
	return w
}

func saveNode(cfg simconfig.SimConfiguration, n *phylotree.Node) bool {
	return n.IsLeaf() || cfg.IncludeInternal
}

// visit advances one pre-order step, evolving node from its parent (or
// seeding the root) and recording its view/residues/length.
func (w *walkState) visit(node *phylotree.Node, cfg simconfig.SimConfiguration) error {
	seed := deriveSeed(w.rootSeed, node.ID)
	rng := rand.New(rand.NewSource(int64(seed)))

	if node.Parent == nil {
		w.lengths[node.ID] = cfg.OriginalSequenceLength
		w.views[node.ID] = supersequence.NewRootView(w.super, node.ID, saveNode(cfg, node))
		if w.sampler != nil {
			w.residues[node.ID] = w.sampler.RootSequence(cfg.OriginalSequenceLength, rng)
		}
		return nil
	}

	parentLength := w.lengths[node.Parent.ID]
	gen := eventgen.New(w.evCfg, rng)
	events, newLength := gen.Run(parentLength, node.BranchLength)
	if newLength > cfg.RunawayLengthCeiling {
		return simerrors.RunawayLength("node %d (%s) grew to length %d, exceeding ceiling %d", node.ID, node.Name, newLength, cfg.RunawayLengthCeiling)
	}

	store := newSeqStore(cfg.Variant, parentLength)
	store.ApplyAll(events)
	w.lengths[node.ID] = store.Length()

	parentView, ok := w.views[node.Parent.ID]
	if !ok {
		return simerrors.TreeInvariantViolation("node %d visited before its parent %d", node.ID, node.Parent.ID)
	}
	w.views[node.ID] = supersequence.NewChildView(w.super, node.ID, saveNode(cfg, node), parentView, store.Blocks())

	if w.sampler != nil {
		residues, err := w.sampler.Evolve(w.residues[node.Parent.ID], node.BranchLength, rng)
		if err != nil {
			return err
		}
		w.residues[node.ID] = residues
	}

	w.releaseParent(node.Parent.ID, cfg)
	return nil
}

// releaseParent drops a parent's residues and (if it was never saved) its
// view once every child has consumed them, bounding peak memory on large
// trees (spec §5).
func (w *walkState) releaseParent(parentID int, cfg simconfig.SimConfiguration) {
	w.pendingChildren[parentID]--
	if w.pendingChildren[parentID] > 0 {
		return
	}
	delete(w.residues, parentID)
	if parent := w.tree.Nodes[parentID]; !saveNode(cfg, parent) {
		delete(w.views, parentID)
	}
}

func (w *walkState) residueBytes(nodeID int) []byte {
	seq, ok := w.residues[nodeID]
	if !ok {
		return nil
	}
	return encodeResidues(seq)
}

func encodeResidues(states []int) []byte {
	out := make([]byte, len(states))
	for i, s := range states {
		out[i] = substitution.Alphabet[s]
	}
	return out
}

func runInMemory(tree *phylotree.Tree, cfg simconfig.SimConfiguration, matrix *substitution.RateMatrix, algorithm substitution.Algorithm, rootSeed uint64) (*Result, error) {
	w := newWalkState(tree, cfg, matrix, algorithm, rootSeed)

	for _, node := range tree.PreOrder() {
		if err := w.visit(node, cfg); err != nil {
			return nil, err
		}
		if saveNode(cfg, node) {
			w.builder.Register(node.Name, w.views[node.ID])
		}
	}
	w.super.AssignAbsolutePositions()

	residuesByNode := make(map[int][]byte, len(w.residues))
	for id := range w.residues {
		residuesByNode[id] = w.residueBytes(id)
	}

	rows := w.builder.Build(residuesByNode)
	names := make([]string, len(w.builder.Rows()))
	for i, row := range w.builder.Rows() {
		names[i] = row.Name
	}
	return &Result{Names: names, Rows: rows}, nil
}

// runStreaming defers rendering until after AssignAbsolutePositions (every
// row's absolute positions must be final first), but never holds more than
// one rendered row in memory: each is appended to streamPath and discarded.
func runStreaming(tree *phylotree.Tree, cfg simconfig.SimConfiguration, matrix *substitution.RateMatrix, algorithm substitution.Algorithm, rootSeed uint64, streamPath string) (*Result, error) {
	if streamPath == "" {
		return nil, simerrors.InvalidConfig("a stream path is required when keep_in_memory is false")
	}
	w := newWalkState(tree, cfg, matrix, algorithm, rootSeed)

	for _, node := range tree.PreOrder() {
		if err := w.visit(node, cfg); err != nil {
			return nil, err
		}
		if saveNode(cfg, node) {
			w.builder.Register(node.Name, w.views[node.ID])
		}
	}
	w.super.AssignAbsolutePositions()

	names := make([]string, 0, len(w.builder.Rows()))
	for _, row := range w.builder.Rows() {
		residues := w.residueBytes(row.View.NodeID())
		if err := w.builder.StreamRow(streamPath, row.Name, row.View, residues); err != nil {
			return nil, err
		}
		names = append(names, row.Name)
	}
	return &Result{Names: names}, nil
}
