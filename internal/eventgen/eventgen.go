// Package eventgen implements C5: the continuous-time Markov event
// generator of spec §4.4, grounded on indelsim.classes.sim_node's
// create_events loop and indelsim.utils.calc_trunc_zipf.
package eventgen

import (
	"math/rand"

	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config carries the per-simulation rate and length-distribution
// parameters shared by every node's event generation (spec §4.4, §6).
type Config struct {
	InsertionRate         float64
	DeletionRate          float64
	DeletionExtraEdgeLen  int
	IndelLengthAlpha      float64
	IndelTruncatedLength  int
}

// Generator produces IndelEvents for one branch. It is constructed fresh
// per node with that node's derived RNG (see simulation's SplitMix64
// seeding), so two nodes never share mutable sampling state.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New builds a Generator drawing from rng, which the caller has already
// seeded deterministically for this node.
func New(cfg Config, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Run simulates the branch of length branchLength starting from a sequence
// of startLength residues, returning the ordered event stream and the
// sequence length after every event has been applied (spec §4.4's
// ordering guarantee: apply in emission order).
func (g *Generator) Run(startLength int, branchLength float64) ([]block.IndelEvent, int) {
	var events []block.IndelEvent
	currentTime := 0.0
	length := startLength

	for {
		totalRate := g.cfg.InsertionRate*float64(length+1) + g.cfg.DeletionRate*float64(length+g.cfg.DeletionExtraEdgeLen)
		if totalRate <= 0 {
			break
		}
		waitingTime := distuv.Exponential{Rate: totalRate, Src: g.rng}.Rand()
		currentTime += waitingTime
		if currentTime > branchLength {
			break
		}

		insertionProb := g.cfg.InsertionRate * float64(length+1) / totalRate
		if g.rng.Float64() < insertionProb {
			ev := g.sampleInsertion(length)
			events = append(events, ev)
			length += ev.Length
			continue
		}
		ev, ok := g.sampleDeletion(length)
		if ok {
			events = append(events, ev)
			// A deletion starting before 0 removes only Place+Length residues.
			length -= min(ev.Length, ev.Place+ev.Length)
		}
	}
	return events, length
}

func (g *Generator) sampleInsertion(currentLength int) block.IndelEvent {
	place := g.rng.Intn(currentLength + 1)
	length := g.truncatedZipf()
	return block.Insertion(place, length)
}

// sampleDeletion draws a deletion whose place may start before position 0
// (modeling deletions that overhang the sequence start, per the
// deletion_extra_edge_length constant), clips its length so it never runs
// past the sequence end, and reports ok=false if the clipped effective
// interval is empty.
func (g *Generator) sampleDeletion(currentLength int) (block.IndelEvent, bool) {
	start := -g.cfg.DeletionExtraEdgeLen
	place := start + g.rng.Intn(currentLength-start)
	length := g.truncatedZipf()
	if place+length > currentLength {
		length = currentLength - place
	}
	if place+length <= 0 {
		return block.IndelEvent{}, false
	}
	return block.Deletion(place, length), true
}

// truncatedZipf draws from a classic Zipf(alpha) distribution over
// {1, 2, ...}, resampling until the draw falls at or below
// IndelTruncatedLength (indelsim.utils.calc_trunc_zipf's rejection loop).
// gonum's distuv package has no Zipf distribution, so this is one of the
// few places the module reaches past gonum to math/rand's NewZipf, which
// implements the same Devroye rejection algorithm NumPy's generator does;
// shifting its zero-based support by one reproduces the classic
// Zipf(alpha) support starting at 1.
func (g *Generator) truncatedZipf() int {
	z := rand.NewZipf(g.rng, g.cfg.IndelLengthAlpha, 1, 1<<40)
	for {
		v := int(z.Uint64()) + 1
		if v <= g.cfg.IndelTruncatedLength {
			return v
		}
	}
}
