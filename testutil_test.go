package gogo_test

import (
	"sync/atomic"

	"github.com/stcrestrada/gogo/v3"
)

// onceVarFuture adapts a single OnceVar into a one-shot Future, for tests
// that want a controllable computation: write to (or cancel) the OnceVar
// from the test body to drive the computation under test through
// Pending -> Ready or Pending -> Cancelled.
func onceVarFuture[T any](ov *gogo.OnceVar[T]) gogo.Future[T] {
	return gogo.FromFunc(func() gogo.AsyncComputation[T] { return ov })
}

// countingWaker returns a Waker and a function reporting how many times
// it's been invoked, for asserting that combinators actually forward
// wake-ups instead of swallowing them.
func countingWaker() (gogo.Waker, func() int) {
	var n atomic.Int64
	return func() { n.Add(1) }, func() int { return int(n.Load()) }
}

// drive polls comp up to maxPolls times, stopping early once it's Ready,
// and returns the final poll result along with how many polls it took.
func drive[T any](comp gogo.AsyncComputation[T], ctx *gogo.Context, maxPolls int) (gogo.Poll[T], int) {
	var p gogo.Poll[T]
	for i := 0; i < maxPolls; i++ {
		p = comp.Poll(ctx)
		if p.IsReady() {
			return p, i + 1
		}
	}
	return p, maxPolls
}

// panicsWith runs f and reports the recovered panic value, or nil if f
// didn't panic.
func panicsWith(f func()) (r any) {
	defer func() {
		r = recover()
	}()
	f()
	return nil
}

// panicComputation always panics with err when polled, for exercising a
// combinator's exception-propagation and sibling-cancellation behavior.
type panicComputation[T any] struct {
	err       error
	cancelled bool
}

func (p *panicComputation[T]) Poll(ctx *gogo.Context) gogo.Poll[T] {
	panic(p.err)
}

func (p *panicComputation[T]) Cancel() {
	p.cancelled = true
}

func panicFuture[T any](err error) gogo.Future[T] {
	return gogo.FromFunc(func() gogo.AsyncComputation[T] {
		return &panicComputation[T]{err: err}
	})
}
