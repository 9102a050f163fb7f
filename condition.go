package qutrace

/*
Condition is anything a gate application can be conditioned on: a Qubit (a
quantum control), a Promise (a runtime classical guard), or a When literal (a
build-time boolean that prunes the operation from the compiled program
entirely when false).
*/
type Condition interface {
	traceCondition()
}

// When wraps a plain boolean as a build-time condition.
//
//	q.X(qutrace.When(cfg.ApplyCorrection))
type When bool

func (When) traceCondition()     {}
func (*Qubit) traceCondition()   {}
func (*Promise) traceCondition() {}

// partitionConditions splits combined conditions into quantum controls,
// classical condition promises, and the AND of all build-time booleans.
func partitionConditions(conds []Condition) (qubits []*Qubit, promises []*Promise, buildTime bool) {
	buildTime = true
	for _, c := range conds {
		switch cond := c.(type) {
		case *Qubit:
			qubits = append(qubits, cond)
		case *Promise:
			promises = append(promises, cond)
		case When:
			buildTime = buildTime && bool(cond)
		}
	}
	return qubits, promises, buildTime
}
