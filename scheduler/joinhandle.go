package scheduler

import (
	"sync"

	"github.com/stcrestrada/gogo/v3"
)

// taskResult is what a spawned task's goroutine commits to its
// JoinHandle's OnceVar: either a value, or a recovered panic to be
// re-raised to whoever polls or joins the handle.
type taskResult[T any] struct {
	value    T
	panicVal any
	hasPanic bool
}

// JoinHandle represents a computation running on a Scheduler. It is
// itself a gogo.Future[T] — RunComputation polls the same underlying
// result cell every time, so a handle can be composed with Bind, Merge,
// First, and the rest exactly like any other Future. Cancel and Join are
// the two operations beyond the Future interface the spec's Scheduler
// contract adds.
//
// A single JoinHandle is meant to be joined from one place at a time:
// the underlying OnceVar is single-waiter, so polling two
// RunComputation() instances concurrently will only wake the most
// recent one.
type JoinHandle[T any] struct {
	cell       *gogo.OnceVar[taskResult[T]]
	cancelTask func()
	cancelOnce sync.Once
}

// RunComputation returns a fresh AsyncComputation view over this
// handle's result.
func (h *JoinHandle[T]) RunComputation() gogo.AsyncComputation[T] {
	return newComputation(
		func(ctx *gogo.Context) gogo.Poll[T] {
			p := h.cell.Poll(ctx)
			if !p.IsReady() {
				return gogo.PollPending[T]()
			}
			tr := p.Value()
			if tr.hasPanic {
				panic(tr.panicVal)
			}
			return gogo.PollReady(tr.value)
		},
		h.Cancel,
	)
}

// Cancel requests that the spawned task abandon its work. Idempotent.
func (h *JoinHandle[T]) Cancel() {
	h.cancelOnce.Do(func() {
		if h.cancelTask != nil {
			h.cancelTask()
		}
		h.cell.Cancel()
	})
}

// Join blocks the calling goroutine until the spawned task completes,
// returning its value or the error it failed with.
func (h *JoinHandle[T]) Join() (T, error) {
	return RunSync(h.RunComputation())
}
