package qutrace

import "errors"

// Engine error kinds. All surface synchronously to the caller of the
// compile or run entry point; none are recovered from internally.
var (
	// ErrPromiseUnresolved means a promise's value was read before the
	// program executed. Move that logic after Run, or return the promise.
	ErrPromiseUnresolved = errors.New("promise has no value until the program has run")

	// ErrQubitEscaped means a raw qubit was found in a traced function's
	// output. Only classical promises may be returned; measure the qubit.
	ErrQubitEscaped = errors.New("qubit returned from traced function; return its measurement instead")

	// ErrUnsearchable means the output search cannot recurse into a value.
	ErrUnsearchable = errors.New("cannot search value for promises")

	// ErrMeasureCondition means a measurement was conditioned on a qubit or
	// promise. Only build-time booleans may gate a measurement.
	ErrMeasureCondition = errors.New("measurements cannot be conditioned on qubits or promises")

	// ErrNotCompiled means Run or Interpret was called before Compile
	// produced a circuit.
	ErrNotCompiled = errors.New("program must be compiled before running")

	// ErrSchedulerStall means a merge pass made no progress while
	// instructions remained. It signals a corrupted operand log, never a
	// legal trace.
	ErrSchedulerStall = errors.New("scheduler stalled; operand logs are inconsistent")

	// ErrPromiseConflict means a promise was resolved twice with
	// disagreeing outcomes.
	ErrPromiseConflict = errors.New("promise already resolved with a different value")
)
