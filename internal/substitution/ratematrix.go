// Package substitution implements C8 (SubstitutionSampler) of spec §4.7:
// Gillespie and matrix-exponential residue evolution over a pluggable
// 20-symbol rate matrix. Per spec §1's explicit scope note, the empirical
// JTT numerical constants are an external collaborator's concern — this
// package specifies only the RateMatrix contract and the two sampling
// algorithms, grounded on indelsim.classes.substitution.py and jtt.py's
// separation between "the matrix" and "what evolves under it."
package substitution

import (
	"fmt"

	"github.com/nimrodSerokTAU/evo-sim/internal/simerrors"
	"gonum.org/v1/gonum/mat"
)

// NumStates is the size of the fixed amino-acid alphabet (spec §6:
// ACDEFGHIKLMNPQRSTVWY).
const NumStates = 20

// Alphabet is the canonical residue ordering; state index i in a
// RateMatrix corresponds to Alphabet[i].
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// RateMatrix is a reversible continuous-time Markov generator over
// NumStates residues: Q[i][j] for i != j is the instantaneous rate from i
// to j, Q[i][i] is -(row sum), and Pi is the stationary distribution
// satisfying Pi[i]*Q[i][j] == Pi[j]*Q[j][i] (detailed balance).
type RateMatrix struct {
	Q  *mat.Dense
	Pi []float64
}

// NewRateMatrix builds a normalized reversible RateMatrix from symmetric
// exchangeability coefficients (every off-diagonal entry of both triangles
// is read, so both must hold the same values; diagonal ignored) and a
// stationary distribution. Rates are scaled so the
// mean instantaneous substitution rate (Σ Pi[i] * -Q[i][i]) equals exactly
// one substitution per site per unit branch length, the standard
// normalization used throughout empirical amino-acid models.
func NewRateMatrix(exchangeability [NumStates][NumStates]float64, pi [NumStates]float64) (*RateMatrix, error) {
	sum := 0.0
	for _, p := range pi {
		if p < 0 {
			return nil, simerrors.InvalidConfig("equilibrium frequency must be non-negative, got %v", p)
		}
		sum += p
	}
	if d := sum - 1; d > 1e-6 || d < -1e-6 {
		return nil, simerrors.InvalidConfig("equilibrium frequencies must sum to 1, got %v", sum)
	}

	q := mat.NewDense(NumStates, NumStates, nil)
	for i := 0; i < NumStates; i++ {
		rowSum := 0.0
		for j := 0; j < NumStates; j++ {
			if i == j {
				continue
			}
			rate := exchangeability[i][j] * pi[j]
			q.Set(i, j, rate)
			rowSum += rate
		}
		q.Set(i, i, -rowSum)
	}

	meanRate := 0.0
	for i := 0; i < NumStates; i++ {
		meanRate += pi[i] * -q.At(i, i)
	}
	if meanRate <= 0 {
		return nil, simerrors.InvalidConfig("rate matrix has non-positive mean substitution rate")
	}
	q.Scale(1/meanRate, q)

	piCopy := append([]float64(nil), pi[:]...)
	return &RateMatrix{Q: q, Pi: piCopy}, nil
}

// Uniform builds a rate matrix with equal exchangeability and a flat
// stationary distribution: a deliberately simplistic stand-in used by
// tests and by callers who have not wired in an empirical model (e.g. JTT)
// from outside the package, per spec §1's scope note.
func Uniform() *RateMatrix {
	var exch [NumStates][NumStates]float64
	var pi [NumStates]float64
	for i := range pi {
		pi[i] = 1.0 / NumStates
		for j := range exch[i] {
			if i != j {
				exch[i][j] = 1.0
			}
		}
	}
	m, err := NewRateMatrix(exch, pi)
	if err != nil {
		panic(fmt.Sprintf("substitution.Uniform: %v", err))
	}
	return m
}

// ExitRate is mu_s = -Q[state][state], the total rate of leaving state.
func (m *RateMatrix) ExitRate(state int) float64 {
	return -m.Q.At(state, state)
}
