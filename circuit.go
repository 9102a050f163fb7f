package qutrace

import (
	"fmt"
	"strings"
)

// Guard is a runtime condition on one classical bit: proceed only if the bit
// holds Value.
type Guard struct {
	Clbit int
	Value bool
}

/*
Sink receives the compiled instruction stream. The engine drives a Sink in
strict emission order: one Allocate, then interleaved AppendGate and
AppendMeasure calls. Circuit is the default implementation; custom sinks can
stream instructions straight to a device API instead.
*/
type Sink interface {
	// Allocate declares the register sizes before any instruction arrives.
	Allocate(qubits, clbits int)

	// AppendGate applies a gate primitive to qubit indices, optionally
	// guarded by classical-bit conditions that must all hold at run time.
	AppendGate(g Gate, qubits []int, guards []Guard)

	// AppendMeasure measures one qubit index into one classical bit index.
	AppendMeasure(qubit, clbit int)
}

// OpKind distinguishes circuit operations.
type OpKind int

const (
	OpGate OpKind = iota
	OpMeasure
)

// Op is one operation of a compiled circuit.
type Op struct {
	Kind   OpKind
	Gate   Gate
	Qubits []int
	Guards []Guard

	// Measurement source and destination, valid when Kind is OpMeasure.
	Qubit int
	Clbit int
}

/*
Circuit is the in-memory compiled program: register sizes plus the totally
ordered operation list the scheduler emitted. Identical traces compile to
identical circuits, so two compiles of the same program can be compared with
Equal or byte-for-byte on String.
*/
type Circuit struct {
	Qubits int
	Clbits int
	Ops    []Op
}

func (c *Circuit) Allocate(qubits, clbits int) {
	c.Qubits = qubits
	c.Clbits = clbits
}

func (c *Circuit) AppendGate(g Gate, qubits []int, guards []Guard) {
	c.Ops = append(c.Ops, Op{Kind: OpGate, Gate: g, Qubits: qubits, Guards: guards})
}

func (c *Circuit) AppendMeasure(qubit, clbit int) {
	c.Ops = append(c.Ops, Op{Kind: OpMeasure, Qubit: qubit, Clbit: clbit})
}

// Equal reports whether two circuits have identical registers and operation
// streams.
func (c *Circuit) Equal(other *Circuit) bool {
	return other != nil && c.String() == other.String()
}

// String renders the circuit one operation per line in a stable textual
// form, e.g.
//
//	qubits 2; clbits 1
//	cx q[0],q[1]
//	measure q[1] -> c[0]
//	if (c[0]==1) x q[0]
func (c *Circuit) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "qubits %d; clbits %d\n", c.Qubits, c.Clbits)
	for _, op := range c.Ops {
		if op.Kind == OpMeasure {
			fmt.Fprintf(&b, "measure q[%d] -> c[%d]\n", op.Qubit, op.Clbit)
			continue
		}
		for _, g := range op.Guards {
			v := 0
			if g.Value {
				v = 1
			}
			fmt.Fprintf(&b, "if (c[%d]==%d) ", g.Clbit, v)
		}
		targets := make([]string, len(op.Qubits))
		for i, q := range op.Qubits {
			targets[i] = fmt.Sprintf("q[%d]", q)
		}
		fmt.Fprintf(&b, "%s %s\n", op.Gate, strings.Join(targets, ","))
	}
	return b.String()
}
