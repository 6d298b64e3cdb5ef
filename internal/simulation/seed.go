// Package simulation implements C9, the Simulation driver of spec §4.8: a
// pre-order walk of the phylogenetic tree that wires EventGenerator,
// SeqNode, SequenceView and (optionally) the substitution Sampler together
// into a finished MsaBuilder.
//
// The original implementation reseeds one shared global RNG per node
// ("random.seed(node_id)"), which spec §9's redesign note flags directly:
// it serializes otherwise-independent subtrees and cannot be parallelized.
// deriveSeed replaces that with a stateless hash of (parent seed, node id),
// the same shape as splitmix64 (the generator Go's own math/rand package
// uses internally to scramble a single int64 seed): no node's RNG state
// depends on simulation order, only on its position in the tree, so two
// disjoint subtrees draw from RNG streams that share no state. (The walk
// itself still shares the super-sequence and its per-node maps.)
package simulation

// deriveSeed mixes a parent seed and a node id into a fresh 64-bit seed via
// splitmix64's finalizer (the same avalanche used to seed Go's
// runtime/rand and documented in Vigna & Blackman's "Scrambled Linear
// Pseudorandom Number Generators"). Two different node ids under the same
// parent seed, or the same node id under two different parent seeds,
// produce unrelated seeds.
func deriveSeed(parentSeed uint64, nodeID int) uint64 {
	z := parentSeed + uint64(nodeID)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
