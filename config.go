package qutrace

import "time"

// Config tunes the run pool.
type Config struct {
	// SchedulingTimeout bounds how long Schedule waits for queue space and
	// how long the dispatcher waits for a free worker.
	SchedulingTimeout time.Duration

	// JobTimeout bounds one job's compile plus execution.
	JobTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		SchedulingTimeout: 10 * time.Second,
		JobTimeout:        30 * time.Second,
	}
}
