package qutrace

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Worker processes jobs
type Worker struct {
	pool *Pool
	jobs chan Job
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case w.pool.workers <- w.jobs:
			select {
			case <-ctx.Done():
				return
			case job, ok := <-w.jobs:
				if !ok {
					return
				}
				output, err := w.processJob(ctx, job)
				w.pool.space.Store(job.ID, output, err)
			}
		}
	}
}

// processJob compiles and executes one program. Compilation runs once and
// never retries; only backend execution is retried, since that is the sole
// remote, failure-prone step.
func (w *Worker) processJob(ctx context.Context, job Job) (any, error) {
	jobCtx, cancel := context.WithTimeout(ctx, w.pool.jobTimeout())
	defer cancel()

	startTime := job.StartTime
	if err := job.Program.Compile(); err != nil {
		w.pool.metrics.recordJobExecution(startTime, false)
		return nil, err
	}

	output, err := w.executeWithRetries(jobCtx, job)
	w.pool.metrics.recordJobExecution(startTime, err == nil)
	return output, err
}

func (w *Worker) executeWithRetries(ctx context.Context, job Job) (any, error) {
	policy := job.RetryPolicy
	if policy == nil {
		policy = &RetryPolicy{MaxAttempts: 1}
	}

	for job.Attempt = 0; job.Attempt < policy.MaxAttempts; job.Attempt++ {
		if job.Attempt > 0 {
			delay := policy.Strategy.NextDelay(job.Attempt)
			log.Printf("Job %s retrying attempt %d after %v", job.ID, job.Attempt+1, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		output, err := job.Program.Run(ctx)
		if err == nil {
			return output, nil
		}

		job.LastError = err
		log.Printf("Job %s attempt %d failed with error: %v", job.ID, job.Attempt+1, err)

		if policy.Filter != nil && !policy.Filter(err) {
			break
		}
	}
	return nil, fmt.Errorf("all attempts failed for job %s: %w", job.ID, job.LastError)
}
