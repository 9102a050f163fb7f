package qutrace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TraceFunc is a traced function: ordinary imperative code operating on
// qubits from the supplied trace, returning any value containing the
// promises it wants fulfilled.
type TraceFunc func(t *Trace) (any, error)

/*
Program wraps a traced function and carries it through the full pipeline:
run the function to record a trace, search its output for promises, compile
the circuit those promises need, execute it on a backend, and resolve the
promises from the outcome.

	prog := qutrace.NewProgram(func(t *qutrace.Trace) (any, error) {
		left, right := t.Qubit(), t.Qubit()
		left.H()
		right.X(left)
		l, _ := left.Measure()
		r, _ := right.Measure()
		return []*qutrace.Promise{l, r}, nil
	})
	output, err := prog.Execute(ctx)

Compile and Run split the pipeline when the caller wants the circuit before
execution, e.g. to export QASM or to run it on a different backend via
Interpret.
*/
type Program struct {
	// ID tags log lines for this program.
	ID string

	fn      TraceFunc
	backend Backend

	output   any
	promises []*Promise
	circuit  *Circuit
	compiled bool
	stats    CompileStats
}

// ProgramOption configures a Program.
type ProgramOption func(*Program)

// WithBackend sets the execution backend. The default is a local simulator
// seeded from the wall clock.
func WithBackend(b Backend) ProgramOption {
	return func(p *Program) {
		p.backend = b
	}
}

// NewProgram wraps fn. The program is not compiled yet.
func NewProgram(fn TraceFunc, opts ...ProgramOption) *Program {
	p := &Program{
		ID:      uuid.NewString(),
		fn:      fn,
		backend: NewSimulator(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

/*
Compile runs the traced function on a fresh trace, collects the promises in
its output, resolves the linkage closure and schedules it into a circuit.
After Compile, Circuit returns the compiled program and Run can execute it.
Compiling again replays the function on a new trace and replaces the circuit.
*/
func (p *Program) Compile() error {
	started := time.Now()
	trace := NewTrace()

	output, err := p.fn(trace)
	if err != nil {
		return fmt.Errorf("traced function failed: %w", err)
	}
	promises, err := FindPromises(output)
	if err != nil {
		return err
	}

	link := resolveLinkage(promises)
	circuit := &Circuit{}
	emitted, err := schedule(link, circuit)
	if err != nil {
		return err
	}

	p.output = output
	p.promises = promises
	p.circuit = circuit
	p.compiled = true
	p.stats = CompileStats{
		Qubits:       circuit.Qubits,
		Clbits:       circuit.Clbits,
		Instructions: emitted,
		Duration:     time.Since(started),
	}
	return nil
}

// Circuit returns the compiled circuit, or nil before Compile.
func (p *Program) Circuit() *Circuit {
	return p.circuit
}

// Stats returns metrics from the last compile pass.
func (p *Program) Stats() CompileStats {
	return p.stats
}

/*
Run executes the compiled circuit on the backend and returns the traced
function's output with every requested promise resolved. A program whose
output holds no promises is purely classical: nothing executes and the output
comes back unchanged.
*/
func (p *Program) Run(ctx context.Context) (any, error) {
	if !p.compiled {
		return nil, ErrNotCompiled
	}
	if len(p.promises) == 0 {
		return p.output, nil
	}

	outcome, err := p.backend.Execute(ctx, p.circuit)
	if err != nil {
		return nil, fmt.Errorf("backend execution failed: %w", err)
	}
	return p.Interpret(outcome)
}

/*
Interpret resolves the requested promises from a single-shot outcome and
returns the traced function's output. Use it directly when execution happens
outside Run, e.g. on a remote device.
*/
func (p *Program) Interpret(outcome Outcome) (any, error) {
	if !p.compiled {
		return nil, ErrNotCompiled
	}
	if len(p.promises) == 0 {
		return p.output, nil
	}
	if outcome.Empty {
		return nil, fmt.Errorf("outcome has no classical content for %d promises", len(p.promises))
	}
	for _, promise := range p.promises {
		if err := promise.resolve(outcome.Bit(promise.index)); err != nil {
			return nil, err
		}
	}
	return p.output, nil
}

// Execute compiles and runs in one step.
func (p *Program) Execute(ctx context.Context) (any, error) {
	if err := p.Compile(); err != nil {
		return nil, err
	}
	return p.Run(ctx)
}
