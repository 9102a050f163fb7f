package qutrace

import (
	"sync"
	"time"
)

// Result wraps a finished job's output with metadata.
type Result struct {
	Output    any
	Error     error
	CreatedAt time.Time
}

// resultSpace delivers job results to whoever awaits them, whether the
// await happens before or after the job finishes.
type resultSpace struct {
	mu      sync.Mutex
	values  map[string]Result
	waiting map[string][]chan Result
}

func newResultSpace() *resultSpace {
	return &resultSpace{
		values:  make(map[string]Result),
		waiting: make(map[string][]chan Result),
	}
}

// Store records a job's result and notifies any waiting channels.
func (rs *resultSpace) Store(id string, output any, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	result := Result{
		Output:    output,
		Error:     err,
		CreatedAt: time.Now(),
	}
	rs.values[id] = result

	for _, ch := range rs.waiting[id] {
		ch <- result
		close(ch)
	}
	delete(rs.waiting, id)
}

// Await returns a channel that receives the result for id once available.
// The channel is buffered and closed after delivery.
func (rs *resultSpace) Await(id string) chan Result {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	ch := make(chan Result, 1)
	if result, ok := rs.values[id]; ok {
		ch <- result
		close(ch)
		return ch
	}
	rs.waiting[id] = append(rs.waiting[id], ch)
	return ch
}
