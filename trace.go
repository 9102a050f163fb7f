package qutrace

/*
Trace owns everything recorded while a traced function runs: the operand
creation sequence and the stack of active control operands. Every Qubit and
Promise belongs to exactly one Trace for its entire lifetime, and a Trace must
not be shared between concurrently running traced functions. Because all scope
state lives on the Trace rather than in process-wide storage, independent
traces running on different goroutines never observe each other's controls.
*/
type Trace struct {
	seq      int
	controls []Condition
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Qubit allocates a fresh qubit on this trace, starting in state |0⟩.
func (t *Trace) Qubit() *Qubit {
	q := &Qubit{}
	q.trace = t
	q.seq = t.nextSeq()
	return q
}

// Qubits allocates n fresh qubits in creation order.
func (t *Trace) Qubits(n int) []*Qubit {
	qs := make([]*Qubit, n)
	for i := range qs {
		qs[i] = t.Qubit()
	}
	return qs
}

/*
Controlled runs body with cond pushed onto the control scope stack. Every gate
recorded inside body picks up cond as an extra condition, on top of any
controls pushed by enclosing scopes. The control is popped when body returns,
including when it panics.
*/
func (t *Trace) Controlled(cond Condition, body func()) {
	release := t.pushControl(cond)
	defer release()
	body()
}

// pushControl pushes one control and returns the function that pops it.
// Callers must run the release exactly once, normally via defer.
func (t *Trace) pushControl(cond Condition) func() {
	t.controls = append(t.controls, cond)
	return func() {
		t.controls = t.controls[:len(t.controls)-1]
	}
}

// activeControls returns a snapshot of the control stack, outermost first.
func (t *Trace) activeControls() []Condition {
	if len(t.controls) == 0 {
		return nil
	}
	snapshot := make([]Condition, len(t.controls))
	copy(snapshot, t.controls)
	return snapshot
}

func (t *Trace) nextSeq() int {
	s := t.seq
	t.seq++
	return s
}
