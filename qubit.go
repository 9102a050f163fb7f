package qutrace

/*
Qubit is one quantum register cell, created fresh in state |0⟩ by
Trace.Qubit. Gate methods record instructions onto the qubit's log and return
the receiver so calls can be stacked:

	q := trace.Qubit()
	q.X().H()

Every gate method takes optional conditions. Qubit conditions become quantum
controls, Promise conditions become runtime classical guards, and When
literals are evaluated immediately: a false literal makes the call a no-op,
removing the operation from the compiled program entirely. Conditions pushed
by enclosing control scopes are combined with the explicit ones.

A Qubit never leaves its trace: returning one from a traced function is an
error, because the qubit no longer exists once its circuit has executed.
*/
type Qubit struct {
	operand
}

/*
Apply records one application of gate g to this qubit, under the given
conditions plus whatever controls are in scope. It is the single dispatch
point every named gate method goes through.
*/
func (q *Qubit) Apply(g Gate, conds ...Condition) *Qubit {
	combined := append(append([]Condition{}, conds...), q.trace.activeControls()...)
	controls, promises, buildTime := partitionConditions(combined)
	if !buildTime {
		return q
	}
	if len(controls) > 0 {
		g = g.Controlled(len(controls))
	}
	inst := &Instruction{
		Gate:       g,
		Qubits:     append(controls, q),
		Conditions: promises,
	}
	for _, op := range inst.touches() {
		op.base().appendOp(inst)
	}
	return q
}

func (q *Qubit) X(conds ...Condition) *Qubit   { return q.Apply(XGate(), conds...) }
func (q *Qubit) Y(conds ...Condition) *Qubit   { return q.Apply(YGate(), conds...) }
func (q *Qubit) Z(conds ...Condition) *Qubit   { return q.Apply(ZGate(), conds...) }
func (q *Qubit) H(conds ...Condition) *Qubit   { return q.Apply(HGate(), conds...) }
func (q *Qubit) S(conds ...Condition) *Qubit   { return q.Apply(SGate(), conds...) }
func (q *Qubit) Sdg(conds ...Condition) *Qubit { return q.Apply(SdgGate(), conds...) }
func (q *Qubit) T(conds ...Condition) *Qubit   { return q.Apply(TGate(), conds...) }
func (q *Qubit) Tdg(conds ...Condition) *Qubit { return q.Apply(TdgGate(), conds...) }

func (q *Qubit) P(lambda float64, conds ...Condition) *Qubit {
	return q.Apply(PGate(lambda), conds...)
}

func (q *Qubit) RX(theta float64, conds ...Condition) *Qubit {
	return q.Apply(RXGate(theta), conds...)
}

func (q *Qubit) RY(theta float64, conds ...Condition) *Qubit {
	return q.Apply(RYGate(theta), conds...)
}

func (q *Qubit) RZ(theta float64, conds ...Condition) *Qubit {
	return q.Apply(RZGate(theta), conds...)
}

func (q *Qubit) U(theta, phi, lambda float64, conds ...Condition) *Qubit {
	return q.Apply(UGate(theta, phi, lambda), conds...)
}

/*
Measure records a measurement of this qubit and returns the Promise that will
carry the classical result after execution.

Measurements cannot be conditioned on qubits or promises: a quantum control on
a measurement is physically meaningless here, and guarding a measurement on
another measurement's result is unsupported. Both fail fast with
ErrMeasureCondition, whether the condition was passed explicitly or inherited
from an enclosing control scope. Build-time When conditions are allowed; a
false one skips the measurement and returns a nil promise.
*/
func (q *Qubit) Measure(conds ...Condition) (*Promise, error) {
	combined := append(append([]Condition{}, conds...), q.trace.activeControls()...)
	controls, promises, buildTime := partitionConditions(combined)
	if len(controls) > 0 || len(promises) > 0 {
		return nil, ErrMeasureCondition
	}
	if !buildTime {
		return nil, nil
	}
	inst := newMeasurement(q)
	return inst.Outputs[0], nil
}

// AsControl pushes this qubit onto the trace's control scope stack and
// returns the release function popping it. Defer the release so the scope
// closes even if the body panics:
//
//	release := q.AsControl()
//	defer release()
//	other.X() // controlled by q
func (q *Qubit) AsControl() func() {
	return q.trace.pushControl(q)
}
