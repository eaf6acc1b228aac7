package scheduler

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/stcrestrada/gogo/v3"
	"github.com/stcrestrada/gogo/v3/gsync"
)

// GoroutinePool is the minimal, deliberately unsophisticated Scheduler
// needed to give the Scheduler/JoinHandle contract a runnable instance:
// every spawned task gets its own goroutine that drives the task's
// Future to completion with RunSync, optionally gated by a semaphore if
// WithWorkerCount bounds concurrency. Work-stealing, batching, and CPU
// affinity are explicitly out of scope — this exists to consume results
// from any caller, not to be a production work-stealing runtime.
type GoroutinePool struct {
	logger *zap.Logger
	sem    *gsync.Semaphore
	closed atomic.Bool
	nextID atomic.Uint64
	wg     sync.WaitGroup
}

var _ Scheduler = (*GoroutinePool)(nil)

// NewGoroutinePool builds a GoroutinePool ready to accept Spawn calls.
func NewGoroutinePool(opts ...Option) *GoroutinePool {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &GoroutinePool{logger: cfg.logger}
	if cfg.workerCount > 0 {
		p.sem = gsync.NewSemaphore(cfg.workerCount)
	}
	return p
}

// ScheduleWake implements gogo.SchedulerHandle: it runs w on a fresh
// goroutine tracked by this pool's shutdown WaitGroup, rather than
// inline with whatever called Context.Wake.
func (p *GoroutinePool) ScheduleWake(w gogo.Waker) {
	if w == nil {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		w()
	}()
}

// Shutdown stops the pool from being usable for new work and waits for
// already-running goroutines (spawned tasks and scheduled wakes) to
// finish.
func (p *GoroutinePool) Shutdown() {
	p.closed.Store(true)
	p.wg.Wait()
}

// Spawn runs f to completion on a dedicated goroutine managed by p,
// returning a JoinHandle that can be polled, joined, or cancelled. Spawn
// is a free function rather than a Scheduler method because Go doesn't
// allow an interface method its own type parameters; see Scheduler's
// doc comment.
func Spawn[T any](p *GoroutinePool, f gogo.Future[T]) (*JoinHandle[T], error) {
	if p.closed.Load() {
		return nil, ErrSchedulerClosed
	}

	cell := gogo.NewOnceVar[taskResult[T]]()
	comp := f.RunComputation()
	id := p.nextID.Add(1)
	handle := &JoinHandle[T]{cell: cell, cancelTask: comp.Cancel}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		release := p.acquireSlot()
		defer release()

		p.logger.Debug("task started", zap.Uint64("task_id", id))

		defer func() {
			if r := recover(); r != nil {
				p.logger.Warn("task panicked", zap.Uint64("task_id", id), zap.Any("panic", r))
				cell.TryWrite(taskResult[T]{panicVal: r, hasPanic: true})
			}
		}()

		v, err := RunSync(comp)
		if err != nil {
			p.logger.Debug("task failed", zap.Uint64("task_id", id), zap.Error(err))
			cell.TryWrite(taskResult[T]{panicVal: err, hasPanic: true})
			return
		}
		p.logger.Debug("task completed", zap.Uint64("task_id", id))
		cell.TryWrite(taskResult[T]{value: v})
	}()

	return handle, nil
}

// acquireSlot blocks (via RunSync) until a worker slot is free, if the
// pool was built with WithWorkerCount. With no bound, it's a no-op.
func (p *GoroutinePool) acquireSlot() func() {
	if p.sem == nil {
		return func() {}
	}
	permit, err := RunSync(p.sem.Acquire().RunComputation())
	if err != nil {
		return func() {}
	}
	return permit.Release
}
