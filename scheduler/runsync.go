// Package scheduler provides the Scheduler/JoinHandle contract for
// running AsyncComputations to completion, a synchronous RunSync driver
// for the common "just block until done" case, and a minimal
// goroutine-backed reference Scheduler.
package scheduler

import (
	"sync"

	"github.com/stcrestrada/gogo/v3"
)

// RunSync drives comp to completion on the calling goroutine: it polls
// comp, and whenever Poll reports Pending, blocks until this
// computation's own Waker is invoked before polling again. It is the
// minimal synchronous driver the rest of the ecosystem (tests, CLI
// tools, anything without its own event loop) can reach for.
//
// If comp panics (a host exception, including ErrFutureCancelled after an
// external Cancel), RunSync recovers it and returns it as a plain error
// instead of letting the panic escape, which matches how Catch already
// exposes exceptions inside the poll-based API.
func RunSync[T any](comp gogo.AsyncComputation[T]) (result T, err error) {
	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	woken := false

	wake := gogo.Waker(func() {
		mu.Lock()
		woken = true
		cond.Signal()
		mu.Unlock()
	})
	ctx := gogo.NewContext(wake)

	defer func() {
		if r := recover(); r != nil {
			err = toError(r)
		}
	}()

	for {
		p := comp.Poll(ctx)
		if p.IsReady() {
			return p.Value(), nil
		}

		mu.Lock()
		for !woken {
			cond.Wait()
		}
		woken = false
		mu.Unlock()
	}
}
