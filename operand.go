package qutrace

/*
operand is the shared state behind Qubit and Promise: an identity, an
append-only log of the instructions that touch it, and the bookkeeping the
compiler uses while turning logs into a circuit.

Identity is the creation sequence number handed out by the owning Trace; it is
never derived from a value, so two operands are the same operand only if they
are the same instance. An instruction's position in the log never changes once
appended; only the cursor moves, and only during scheduling.
*/
type operand struct {
	trace *Trace
	seq   int

	// ops is the causal order of instructions touching this operand.
	ops []*Instruction

	// cursor and index are scratch state for one compile pass: cursor is the
	// scheduling progress pointer, index the assigned circuit position.
	cursor int
	index  int
}

// Operand is either a *Qubit or a *Promise.
type Operand interface {
	base() *operand
}

func (o *operand) base() *operand { return o }

func (o *operand) appendOp(inst *Instruction) {
	o.ops = append(o.ops, inst)
}

// finished reports whether scheduling has consumed this operand's whole log.
func (o *operand) finished() bool {
	return o.cursor >= len(o.ops)
}

// head returns the next unscheduled instruction, or nil when finished.
func (o *operand) head() *Instruction {
	if o.finished() {
		return nil
	}
	return o.ops[o.cursor]
}
