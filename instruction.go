package qutrace

/*
Instruction is an immutable record of one gate or measurement application. It
is a hyperedge: it references every operand it touches, and it appears exactly
once in each of those operands' logs. For a gate, the touched operands are its
qubits (quantum controls first, target last) plus the promises guarding it at
run time. For a measurement, they are the measured qubit plus every output
promise, the original and any siblings created by later inversions.
*/
type Instruction struct {
	// Gate is the primitive descriptor; zero-valued for measurements.
	Gate Gate

	// Qubits are the quantum operands, controls before the target.
	Qubits []*Qubit

	// Conditions are the promises gating execution on the backend. Always
	// empty for measurements.
	Conditions []*Promise

	// Outputs are the promises produced by a measurement. Empty for gates.
	Outputs []*Promise
}

// IsMeasurement reports whether this instruction measures a qubit.
func (inst *Instruction) IsMeasurement() bool {
	return len(inst.Outputs) > 0
}

// touches enumerates every operand participating in this instruction, in the
// fixed order qubits, conditions, outputs. The scheduler relies on this
// enumeration being stable.
func (inst *Instruction) touches() []Operand {
	touched := make([]Operand, 0, len(inst.Qubits)+len(inst.Conditions)+len(inst.Outputs))
	for _, q := range inst.Qubits {
		touched = append(touched, q)
	}
	for _, p := range inst.Conditions {
		touched = append(touched, p)
	}
	for _, p := range inst.Outputs {
		touched = append(touched, p)
	}
	return touched
}

// ready reports whether this instruction is the next unit of work for every
// operand it touches. Emitting before that point would violate some
// participant's causal order.
func (inst *Instruction) ready() bool {
	for _, op := range inst.touches() {
		if op.base().head() != inst {
			return false
		}
	}
	return true
}

// advance moves every touched operand's cursor past this instruction.
func (inst *Instruction) advance() {
	for _, op := range inst.touches() {
		op.base().cursor++
	}
}

// newMeasurement records a measurement of q, creating its first output
// promise. The instruction is appended to the qubit's log here; the promise's
// log starts as exactly this measurement.
func newMeasurement(q *Qubit) *Instruction {
	inst := &Instruction{Qubits: []*Qubit{q}}
	p := &Promise{source: inst}
	p.trace = q.trace
	p.seq = q.trace.nextSeq()
	p.appendOp(inst)
	inst.Outputs = []*Promise{p}
	q.appendOp(inst)
	return inst
}
