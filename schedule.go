package qutrace

/*
schedule merges every operand's private instruction order into one total
order and emits it into the sink. The merge advances per-operand cursors: an
instruction is emittable only when it sits at the cursor of every operand it
touches, which is exactly the point where emitting it violates nobody's
recorded order.

The merge runs off a worklist instead of rescanning all logs each pass: an
operand is examined by draining its log from the cursor until its head
instruction is not ready, and every emit re-queues the touched operands,
since their stalled heads may have just become ready. The worklist is FIFO
and seeded with the closure's qubits in index order, so the emitted order is
a deterministic function of the trace.

A drained worklist with unfinished cursors means no instruction is ready
anywhere. Correct tracing cannot produce that state because participant
cursors only advance together, so it is reported as ErrSchedulerStall rather
than looping forever.
*/
func schedule(link linkage, sink Sink) (emitted int, err error) {
	sink.Allocate(len(link.qubits), len(link.promises))

	queued := make(map[*operand]bool)
	var worklist []*Qubit
	enqueue := func(q *Qubit) {
		if !queued[q.base()] && !q.finished() {
			queued[q.base()] = true
			worklist = append(worklist, q)
		}
	}
	for _, q := range link.qubits {
		enqueue(q)
	}

	for len(worklist) > 0 {
		q := worklist[0]
		worklist = worklist[1:]
		queued[q.base()] = false

		for !q.finished() {
			inst := q.head()
			if !inst.ready() {
				break
			}
			inst.advance()
			emit(inst, sink)
			emitted++
			for _, touched := range inst.touches() {
				if tq, ok := touched.(*Qubit); ok {
					enqueue(tq)
				}
			}
		}
	}

	for _, q := range link.qubits {
		if !q.finished() {
			return emitted, ErrSchedulerStall
		}
	}
	for _, p := range link.promises {
		if !p.finished() {
			return emitted, ErrSchedulerStall
		}
	}
	return emitted, nil
}

// emit writes one scheduled instruction into the sink. A measurement becomes
// one measure per output promise, all reading the same qubit; a gate carries
// one runtime guard per classical condition, polarity honoring inversion.
func emit(inst *Instruction, sink Sink) {
	if inst.IsMeasurement() {
		source := inst.Qubits[0]
		for _, out := range inst.Outputs {
			sink.AppendMeasure(source.index, out.index)
		}
		return
	}

	qubits := make([]int, len(inst.Qubits))
	for i, q := range inst.Qubits {
		qubits[i] = q.index
	}
	var guards []Guard
	for _, p := range inst.Conditions {
		guards = append(guards, Guard{Clbit: p.index, Value: !p.inverted})
	}
	sink.AppendGate(inst.Gate, qubits, guards)
}
