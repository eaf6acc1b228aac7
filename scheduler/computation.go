package scheduler

import (
	"sync/atomic"

	"github.com/stcrestrada/gogo/v3"
)

// funcComputation mirrors gogo's own internal create() helper; kept
// local rather than exported from gogo because JoinHandle is the only
// caller in this package.
type funcComputation[T any] struct {
	poll      func(ctx *gogo.Context) gogo.Poll[T]
	cancelFn  func()
	cancelled atomic.Bool
}

func newComputation[T any](poll func(ctx *gogo.Context) gogo.Poll[T], cancel func()) gogo.AsyncComputation[T] {
	return &funcComputation[T]{poll: poll, cancelFn: cancel}
}

func (f *funcComputation[T]) Poll(ctx *gogo.Context) gogo.Poll[T] {
	return f.poll(ctx)
}

func (f *funcComputation[T]) Cancel() {
	if f.cancelled.CompareAndSwap(false, true) && f.cancelFn != nil {
		f.cancelFn()
	}
}
