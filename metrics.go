package qutrace

import (
	"sync"
	"time"
)

// CompileStats captures one compile pass.
type CompileStats struct {
	Qubits       int
	Clbits       int
	Instructions int
	Duration     time.Duration
}

// Metrics tracks run pool activity.
type Metrics struct {
	mu                 sync.RWMutex
	WorkerCount        int
	JobQueueSize       int
	JobCount           int64
	FailureCount       int64
	TotalJobTime       time.Duration
	SchedulingFailures int64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalJobTime += time.Since(startTime)
	m.JobCount++
	if !success {
		m.FailureCount++
	}
}

// Export returns a snapshot of the pool metrics.
func (m *Metrics) Export() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := time.Duration(0)
	if m.JobCount > 0 {
		avg = m.TotalJobTime / time.Duration(m.JobCount)
	}
	return map[string]interface{}{
		"worker_count":        m.WorkerCount,
		"queue_size":          m.JobQueueSize,
		"job_count":           m.JobCount,
		"failure_count":       m.FailureCount,
		"avg_latency":         avg.Milliseconds(),
		"scheduling_failures": m.SchedulingFailures,
	}
}
