package qutrace

/*
Promise is a placeholder for a classical bit that does not exist yet: the
result of measuring a qubit. Promises come out of Qubit.Measure, never from a
constructor. Until the compiled circuit has executed, a promise has no value;
afterwards it is resolved exactly once and immutable.

A promise can guard quantum gates before it has a value, either passed as a
condition or pushed as a control scope:

	m, _ := a.Measure()
	b.X(m) // apply X to b only if a measured 1

Identity and value comparison are deliberately separate operations: Is answers
"same placeholder", Value answers "what did it resolve to". Two distinct
promises are never the same placeholder, even if they resolve to equal values.
*/
type Promise struct {
	operand

	// source is the measurement that produces this promise's value.
	source *Instruction

	// inverted promises negate the measured bit on resolution.
	inverted bool

	resolved bool
	value    bool
}

/*
Not returns a sibling promise carrying the negation of this promise's future
value. It does not measure the qubit again: the sibling shares the source
measurement and is registered as an additional output of it, so both resolve
from the same classical bit.
*/
func (p *Promise) Not() *Promise {
	sibling := &Promise{
		source:   p.source,
		inverted: !p.inverted,
	}
	sibling.trace = p.trace
	sibling.seq = p.trace.nextSeq()
	sibling.appendOp(p.source)
	p.source.Outputs = append(p.source.Outputs, sibling)
	return sibling
}

// Value returns the resolved boolean, or ErrPromiseUnresolved if the program
// has not executed yet.
func (p *Promise) Value() (bool, error) {
	if !p.resolved {
		return false, ErrPromiseUnresolved
	}
	return p.value, nil
}

// Resolved reports whether the promise has a value.
func (p *Promise) Resolved() bool {
	return p.resolved
}

// Is reports whether other is this exact placeholder.
func (p *Promise) Is(other *Promise) bool {
	return p == other
}

// AsControl pushes this promise onto the trace's control scope stack and
// returns the release function popping it. Gates recorded inside the scope
// execute on the backend only if the promise's bit comes out true.
func (p *Promise) AsControl() func() {
	return p.trace.pushControl(p)
}

// resolve assigns the promise's value from the raw measured bit, applying
// inversion. Resolving twice is fine as long as the value agrees; a
// conflicting re-resolution means two executions were interpreted onto the
// same trace and is rejected.
func (p *Promise) resolve(bit bool) error {
	value := bit != p.inverted
	if p.resolved && p.value != value {
		return ErrPromiseConflict
	}
	p.value = value
	p.resolved = true
	return nil
}
