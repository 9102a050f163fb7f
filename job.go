package qutrace

import "time"

// Job is one program queued on the run pool. Every job compiles and executes
// on its own trace, so jobs never share operands or control scopes.
type Job struct {
	ID          string
	Program     *Program
	RetryPolicy *RetryPolicy
	Attempt     int
	LastError   error
	StartTime   time.Time
}

// JobOption is a function type for configuring jobs
type JobOption func(*Job)
