package substitution

import (
	"math"
	"math/rand"

	"github.com/nimrodSerokTAU/evo-sim/internal/simerrors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Algorithm selects between the two interchangeable sampling strategies of
// spec §4.7.
type Algorithm int

const (
	Gillespie Algorithm = iota
	MatrixExponential
)

// Sampler evolves an integer residue sequence over a branch under a fixed
// RateMatrix, per spec §4.7.
type Sampler struct {
	matrix    *RateMatrix
	algorithm Algorithm
	rateScale float64
	expCache  map[int64]*mat.Dense
}

// New builds a Sampler. rateScale is the substitution_rate multiplier
// applied to every branch length before simulating (spec §4.7: "t < b *
// rate_scale").
func New(matrix *RateMatrix, algorithm Algorithm, rateScale float64) *Sampler {
	return &Sampler{matrix: matrix, algorithm: algorithm, rateScale: rateScale, expCache: make(map[int64]*mat.Dense)}
}

// RootSequence draws length residues i.i.d. from the matrix's equilibrium
// distribution.
func (s *Sampler) RootSequence(length int, rng *rand.Rand) []int {
	seq := make([]int, length)
	for i := range seq {
		seq[i] = sampleCategorical(s.matrix.Pi, rng)
	}
	return seq
}

// Evolve evolves parent over a branch of length b, returning a fresh
// slice of the same length (spec §4.7: "both algorithms must preserve
// sequence length exactly"). A NumericInstability error from the
// matrix-exponential path is returned to the caller rather than panicking
// (spec §7: "errors at the configuration or numerical level surface to
// the caller").
func (s *Sampler) Evolve(parent []int, branchLength float64, rng *rand.Rand) ([]int, error) {
	switch s.algorithm {
	case MatrixExponential:
		return s.evolveMatrix(parent, branchLength, rng)
	default:
		return s.evolveGillespie(parent, branchLength, rng), nil
	}
}

// evolveGillespie runs the per-site CTMC exactly, maintaining per-site
// exit rates and their sum incrementally (spec §4.7). Picking the site is
// a linear scan over the per-site rates, so each step is O(L).
func (s *Sampler) evolveGillespie(parent []int, branchLength float64, rng *rand.Rand) []int {
	seq := append([]int(nil), parent...)
	mu := make([]float64, len(seq))
	total := 0.0
	for i, state := range seq {
		mu[i] = s.matrix.ExitRate(state)
		total += mu[i]
	}

	limit := branchLength * s.rateScale
	t := 0.0
	for t < limit && total > 0 {
		dt := distuv.Exponential{Rate: total, Src: rng}.Rand()
		t += dt
		if t >= limit {
			break
		}
		site := pickWeighted(mu, total, rng)
		newState := s.pickTransition(seq[site], rng)
		seq[site] = newState
		total -= mu[site]
		mu[site] = s.matrix.ExitRate(newState)
		total += mu[site]
	}
	return seq
}

// pickTransition samples r != from with probability Q[from][r]/mu_from.
func (s *Sampler) pickTransition(from int, rng *rand.Rand) int {
	mu := s.matrix.ExitRate(from)
	draw := rng.Float64() * mu
	cum := 0.0
	for r := 0; r < NumStates; r++ {
		if r == from {
			continue
		}
		cum += s.matrix.Q.At(from, r)
		if draw < cum {
			return r
		}
	}
	return (from + 1) % NumStates
}

// evolveMatrix samples each site independently from the row of P(t) that
// matches its current state, using a transition matrix cached by
// quantized branch time.
func (s *Sampler) evolveMatrix(parent []int, branchLength float64, rng *rand.Rand) ([]int, error) {
	p, err := s.transitionMatrix(branchLength)
	if err != nil {
		return nil, err
	}
	seq := make([]int, len(parent))
	row := make([]float64, NumStates)
	for i, state := range parent {
		for j := 0; j < NumStates; j++ {
			row[j] = p.At(state, j)
		}
		seq[i] = sampleCategorical(row, rng)
	}
	return seq, nil
}

// transitionMatrix returns P(t) = exp(Q * t * rateScale), caching by time
// quantized to 10 decimal digits to avoid redundant eigendecomposition
// (spec §4.7).
func (s *Sampler) transitionMatrix(branchLength float64) (*mat.Dense, error) {
	t := branchLength * s.rateScale
	key := quantize(t)
	if cached, ok := s.expCache[key]; ok {
		return cached, nil
	}
	p, err := matrixExp(s.matrix, t)
	if err != nil {
		return nil, err
	}
	s.expCache[key] = p
	return p, nil
}

func quantize(t float64) int64 {
	return int64(math.Round(t * 1e10))
}

// matrixExp computes exp(Q*t) via the symmetrized eigendecomposition
// standard for reversible rate matrices: S = D^(1/2) Q D^(-1/2) is
// symmetric (D = diag(Pi)), so S = V L V^T with real L, and
// exp(Qt) = D^(-1/2) V exp(Lt) V^T D^(1/2).
func matrixExp(m *RateMatrix, t float64) (*mat.Dense, error) {
	sqrtPi := make([]float64, NumStates)
	invSqrtPi := make([]float64, NumStates)
	for i, p := range m.Pi {
		sqrtPi[i] = math.Sqrt(p)
		invSqrtPi[i] = 1 / sqrtPi[i]
	}

	sym := mat.NewSymDense(NumStates, nil)
	for i := 0; i < NumStates; i++ {
		for j := i; j < NumStates; j++ {
			v := sqrtPi[i] * m.Q.At(i, j) * invSqrtPi[j]
			sym.SetSym(i, j, v)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, simerrors.NumericInstability("eigendecomposition failed to converge at t=%v", t)
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	expL := mat.NewDiagDense(NumStates, nil)
	for i, lambda := range values {
		expL.SetDiag(i, math.Exp(lambda*t))
	}

	var tmp, symExp mat.Dense
	tmp.Mul(&vectors, expL)
	symExp.Mul(&tmp, vectors.T())

	out := mat.NewDense(NumStates, NumStates, nil)
	for i := 0; i < NumStates; i++ {
		rowSum := 0.0
		for j := 0; j < NumStates; j++ {
			v := invSqrtPi[i] * symExp.At(i, j) * sqrtPi[j]
			out.Set(i, j, v)
			rowSum += v
		}
		if math.Abs(rowSum-1) > 1e-8 {
			return nil, simerrors.NumericInstability("row %d of P(t=%v) sums to %v, want 1", i, t, rowSum)
		}
	}
	return out, nil
}

func sampleCategorical(weights []float64, rng *rand.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	draw := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if draw < cum {
			return i
		}
	}
	return len(weights) - 1
}

func pickWeighted(weights []float64, total float64, rng *rand.Rand) int {
	draw := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if draw < cum {
			return i
		}
	}
	return len(weights) - 1
}
