package qutrace

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPoolExecution(t *testing.T) {
	Convey("Given a pool with two workers", t, func() {
		pool := NewPool(context.Background(), 2, NewConfig())
		defer pool.Close()

		flipped := func(t *Trace) (any, error) {
			q := t.Qubit()
			q.X()
			return q.Measure()
		}

		Convey("When scheduling several programs concurrently", func() {
			var waits []chan Result
			for i := 0; i < 4; i++ {
				prog := NewProgram(flipped, WithBackend(NewSimulator(int64(i))))
				waits = append(waits, pool.Schedule(fmt.Sprintf("job-%d", i), prog))
			}

			Convey("Then every job resolves its own promise", func() {
				for _, wait := range waits {
					select {
					case result := <-wait:
						So(result.Error, ShouldBeNil)
						m := result.Output.(*Promise)
						v, err := m.Value()
						So(err, ShouldBeNil)
						So(v, ShouldBeTrue)
					case <-time.After(5 * time.Second):
						t.Fatal("timed out waiting for job result")
					}
				}

				metrics := pool.Metrics().Export()
				So(metrics["job_count"], ShouldEqual, int64(4))
				So(metrics["failure_count"], ShouldEqual, int64(0))
			})
		})

		Convey("When a traced function fails", func() {
			boom := errors.New("boom")
			prog := NewProgram(func(t *Trace) (any, error) {
				return nil, boom
			})

			result := <-pool.Schedule("job-fail", prog)

			Convey("Then the failure comes back through the result channel", func() {
				So(result.Error, ShouldNotBeNil)
				So(errors.Is(result.Error, boom), ShouldBeTrue)
			})
		})
	})
}

func TestPoolRetries(t *testing.T) {
	Convey("Given a backend that fails before succeeding", t, func() {
		pool := NewPool(context.Background(), 1, NewConfig())
		defer pool.Close()

		backend := &flakyBackend{failures: 2}
		prog := NewProgram(func(t *Trace) (any, error) {
			return t.Qubit().Measure()
		}, WithBackend(backend))

		Convey("When the job carries a retry policy", func() {
			result := <-pool.Schedule("job-retry", prog, WithRetry(3, &ExponentialBackoff{
				Initial: time.Millisecond,
			}))

			Convey("Then the job eventually succeeds", func() {
				So(result.Error, ShouldBeNil)
				So(backend.calls, ShouldEqual, 3)
			})
		})
	})
}

// flakyBackend fails its first N executions, then delegates to a simulator.
type flakyBackend struct {
	failures int
	calls    int
}

func (f *flakyBackend) Execute(ctx context.Context, c *Circuit) (Outcome, error) {
	f.calls++
	if f.calls <= f.failures {
		return Outcome{}, errors.New("transient backend failure")
	}
	return NewSimulator(1).Execute(ctx, c)
}
