package qutrace

import "context"

/*
Outcome is one shot's classical result: bit i of Bits is the value measured
into classical bit index i. Empty marks the no-classical-content case, when a
program requested no promises and nothing was executed.
*/
type Outcome struct {
	Bits  uint64
	Empty bool
}

// Bit returns the value of classical bit index i.
func (o Outcome) Bit(i int) bool {
	return (o.Bits>>uint(i))&1 == 1
}

/*
Backend executes a compiled circuit and returns a single-shot outcome.
Execution is the engine's only blocking, long-latency operation; everything up
to it is synchronous in-memory work, which is why only this interface takes a
context.
*/
type Backend interface {
	Execute(ctx context.Context, c *Circuit) (Outcome, error)
}
