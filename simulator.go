package qutrace

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
)

// maxSimQubits caps the dense state vector at 2^28 amplitudes.
const maxSimQubits = 28

/*
Simulator is a local single-shot state-vector backend. It holds the full
2^n amplitude vector, applies each gate as a 2x2 matrix on its target
(restricted to basis states where every control bit is set), collapses the
state on measurement, and honors classical guards against the bits measured
so far.

The shot is driven by a seeded generator, so a given seed and circuit always
produce the same outcome. That makes the simulator usable in tests without
multi-shot statistics; one execution is one deterministic outcome.
*/
type Simulator struct {
	seed int64
}

// NewSimulator creates a simulator whose single shot is driven by seed.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{seed: seed}
}

func (s *Simulator) Execute(ctx context.Context, c *Circuit) (Outcome, error) {
	if c.Clbits == 0 {
		return Outcome{Empty: true}, nil
	}
	if c.Qubits > maxSimQubits {
		return Outcome{}, fmt.Errorf("circuit needs %d qubits, simulator supports at most %d", c.Qubits, maxSimQubits)
	}
	if c.Clbits > 64 {
		return Outcome{}, fmt.Errorf("circuit needs %d classical bits, outcome bitmask holds at most 64", c.Clbits)
	}

	state := newStateVector(c.Qubits)
	rng := rand.New(rand.NewSource(s.seed))
	var bits uint64

	for _, op := range c.Ops {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		if op.Kind == OpMeasure {
			if state.measure(op.Qubit, rng) {
				bits |= 1 << uint(op.Clbit)
			} else {
				bits &^= 1 << uint(op.Clbit)
			}
			continue
		}
		if !guardsHold(op.Guards, bits) {
			continue
		}
		m, err := gateMatrix(op.Gate)
		if err != nil {
			return Outcome{}, err
		}
		target := op.Qubits[len(op.Qubits)-1]
		controls := op.Qubits[:len(op.Qubits)-1]
		state.apply(m, target, controls)
	}
	return Outcome{Bits: bits}, nil
}

func guardsHold(guards []Guard, bits uint64) bool {
	for _, g := range guards {
		set := (bits>>uint(g.Clbit))&1 == 1
		if set != g.Value {
			return false
		}
	}
	return true
}

// matrix2 is a single-qubit unitary in row-major order.
type matrix2 [2][2]complex128

// gateMatrix maps a catalog gate name to its base single-qubit unitary.
// Controls are not part of the matrix; apply restricts it to the control
// subspace instead.
func gateMatrix(g Gate) (matrix2, error) {
	p := func(i int) float64 {
		if i < len(g.Params) {
			return g.Params[i]
		}
		return 0
	}
	switch g.Name {
	case "x":
		return matrix2{{0, 1}, {1, 0}}, nil
	case "y":
		return matrix2{{0, -1i}, {1i, 0}}, nil
	case "z":
		return matrix2{{1, 0}, {0, -1}}, nil
	case "h":
		h := complex(1/math.Sqrt2, 0)
		return matrix2{{h, h}, {h, -h}}, nil
	case "s":
		return matrix2{{1, 0}, {0, 1i}}, nil
	case "sdg":
		return matrix2{{1, 0}, {0, -1i}}, nil
	case "t":
		return matrix2{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}, nil
	case "tdg":
		return matrix2{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}, nil
	case "p":
		return matrix2{{1, 0}, {0, cmplx.Exp(complex(0, p(0)))}}, nil
	case "rx":
		c := complex(math.Cos(p(0)/2), 0)
		js := complex(0, -math.Sin(p(0)/2))
		return matrix2{{c, js}, {js, c}}, nil
	case "ry":
		c := complex(math.Cos(p(0)/2), 0)
		sn := complex(math.Sin(p(0)/2), 0)
		return matrix2{{c, -sn}, {sn, c}}, nil
	case "rz":
		e := cmplx.Exp(complex(0, p(0)/2))
		return matrix2{{cmplx.Conj(e), 0}, {0, e}}, nil
	case "u":
		theta, phi, lambda := p(0), p(1), p(2)
		c := complex(math.Cos(theta/2), 0)
		sn := complex(math.Sin(theta/2), 0)
		return matrix2{
			{c, -cmplx.Exp(complex(0, lambda)) * sn},
			{cmplx.Exp(complex(0, phi)) * sn, cmplx.Exp(complex(0, phi+lambda)) * c},
		}, nil
	default:
		return matrix2{}, fmt.Errorf("unknown gate %q", g.Name)
	}
}

type stateVector struct {
	amps   []complex128
	qubits int
}

func newStateVector(qubits int) *stateVector {
	amps := make([]complex128, 1<<uint(qubits))
	amps[0] = 1
	return &stateVector{amps: amps, qubits: qubits}
}

// apply multiplies the target qubit's amplitude pairs by m, restricted to
// basis states where every control bit is set.
func (s *stateVector) apply(m matrix2, target int, controls []int) {
	tbit := 1 << uint(target)
	cmask := 0
	for _, c := range controls {
		cmask |= 1 << uint(c)
	}
	for i := range s.amps {
		if i&tbit != 0 || i&cmask != cmask {
			continue
		}
		j := i | tbit
		a0, a1 := s.amps[i], s.amps[j]
		s.amps[i] = m[0][0]*a0 + m[0][1]*a1
		s.amps[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

// measure collapses qubit q to a definite bit drawn from its probability and
// returns the bit.
func (s *stateVector) measure(q int, rng *rand.Rand) bool {
	bit := 1 << uint(q)
	prob1 := 0.0
	for i, amp := range s.amps {
		if i&bit != 0 {
			prob1 += real(amp * cmplx.Conj(amp))
		}
	}

	one := rng.Float64() < prob1
	keep := prob1
	if !one {
		keep = 1 - prob1
	}
	norm := complex(math.Sqrt(keep), 0)
	for i := range s.amps {
		if (i&bit != 0) != one {
			s.amps[i] = 0
		} else if norm != 0 {
			s.amps[i] /= norm
		}
	}
	return one
}
