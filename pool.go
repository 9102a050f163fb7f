package qutrace

import (
	"context"
	"fmt"
	"sync"
	"time"
)

/*
Pool runs traced programs concurrently. Each job compiles and executes its
program on a fresh, privately owned trace, which is what makes concurrent
compilation safe: control scope state lives on the trace, and no operand is
ever shared between jobs.
*/
type Pool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	jobs    chan Job
	workers chan chan Job
	space   *resultSpace
	metrics *Metrics
	config  *Config

	workerMu   sync.Mutex
	workerList []*Worker
}

// NewPool creates a pool with the given number of workers.
func NewPool(ctx context.Context, workers int, config *Config) *Pool {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan Job, workers*10),
		workers: make(chan chan Job, workers),
		space:   newResultSpace(),
		metrics: newMetrics(),
		config:  config,
	}

	for i := 0; i < workers; i++ {
		p.startWorker()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.manage()
	}()

	return p
}

// manage dispatches queued jobs to available workers.
func (p *Pool) manage() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			select {
			case <-p.ctx.Done():
				return
			case workerChan := <-p.workers:
				select {
				case workerChan <- job:
				case <-p.ctx.Done():
					return
				}
			case <-time.After(p.schedulingTimeout()):
				p.metrics.mu.Lock()
				p.metrics.SchedulingFailures++
				p.metrics.mu.Unlock()
				p.space.Store(job.ID, nil, fmt.Errorf("no available workers"))
			}
		}
	}
}

/*
Schedule queues a program under the given id and returns a channel that
delivers the resolved output once the job's compile and execution finish.
*/
func (p *Pool) Schedule(id string, prog *Program, opts ...JobOption) chan Result {
	ctx, cancel := context.WithTimeout(p.ctx, p.schedulingTimeout())
	defer cancel()

	job := Job{
		ID:        id,
		Program:   prog,
		StartTime: time.Now(),
	}
	for _, opt := range opts {
		opt(&job)
	}

	select {
	case p.jobs <- job:
		return p.space.Await(id)
	case <-ctx.Done():
		ch := make(chan Result, 1)
		ch <- Result{
			Error:     fmt.Errorf("job scheduling timeout: %w", ctx.Err()),
			CreatedAt: time.Now(),
		}
		close(ch)

		p.metrics.mu.Lock()
		p.metrics.SchedulingFailures++
		p.metrics.mu.Unlock()
		return ch
	}
}

// Metrics returns the pool's metrics collector.
func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

func (p *Pool) startWorker() {
	worker := &Worker{
		pool: p,
		jobs: make(chan Job),
	}
	p.workerMu.Lock()
	p.workerList = append(p.workerList, worker)
	p.workerMu.Unlock()

	p.metrics.mu.Lock()
	p.metrics.WorkerCount++
	p.metrics.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run(p.ctx)
	}()
}

func (p *Pool) schedulingTimeout() time.Duration {
	if p.config != nil && p.config.SchedulingTimeout > 0 {
		return p.config.SchedulingTimeout
	}
	return 5 * time.Second
}

func (p *Pool) jobTimeout() time.Duration {
	if p.config != nil && p.config.JobTimeout > 0 {
		return p.config.JobTimeout
	}
	return 30 * time.Second
}

// Close stops the pool and waits for all workers to finish.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.cancel()
	p.wg.Wait()

	p.workerMu.Lock()
	for _, worker := range p.workerList {
		close(worker.jobs)
	}
	p.workerList = nil
	p.workerMu.Unlock()
}
