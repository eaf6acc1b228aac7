package gogo

import "sync/atomic"

// Result carries either a value or an error, the shape Catch converts a
// raised exception into instead of letting it keep propagating. Modeled
// on the teacher's own Optional[T]{Result, Error} pair.
type Result[T any] struct {
	Value T
	Err   error
}

// Catch is the only combinator allowed to swallow an exception: it runs
// source, and if Poll ever panics, converts that into a Ready Result
// carrying the error instead of re-raising it. A successful completion is
// wrapped the same way, with a nil Err.
func Catch[T any](source Future[T]) Future[Result[T]] {
	return FromFunc(func() AsyncComputation[Result[T]] {
		c := source.RunComputation()

		return createMemo(
			func(ctx *Context) (out Poll[Result[T]]) {
				func() {
					defer func() {
						if r := recover(); r != nil {
							out = PollReady(Result[T]{Err: toError(r)})
						}
					}()
					p := c.Poll(ctx)
					if p.IsReady() {
						out = PollReady(Result[T]{Value: p.Value()})
					} else {
						out = PollPending[Result[T]]()
					}
				}()
				return out
			},
			func() { c.Cancel() },
		)
	})
}

// Yield is Pending on its first poll (after requesting a wake), and Ready
// on every poll after that. It exists so a long synchronous chain (e.g.
// Iter over many already-ready steps) has a deliberate point to hand
// control back to the driver.
func Yield() Future[Unit] {
	return FromFunc(func() AsyncComputation[Unit] {
		first := true
		return create(
			func(ctx *Context) Poll[Unit] {
				if first {
					first = false
					ctx.Wake()
					return PollPending[Unit]()
				}
				return PollReady(Unit{})
			},
			func() {},
		)
	})
}

// CancellationFuse wraps inner so that, once Cancel has taken effect,
// every later Poll deterministically panics with ErrFutureCancelled
// instead of however inner itself happens to behave post-cancellation.
// Primarily a debugging/testing aid for code that wants to assert
// post-cancel poll behavior without depending on a particular
// combinator's internals.
func CancellationFuse[T any](inner Future[T]) Future[T] {
	return FromFunc(func() AsyncComputation[T] {
		c := inner.RunComputation()
		var cancelled atomic.Bool

		return create(
			func(ctx *Context) Poll[T] {
				if cancelled.Load() {
					panic(ErrFutureCancelled)
				}
				return c.Poll(ctx)
			},
			func() {
				cancelled.Store(true)
				c.Cancel()
			},
		)
	})
}
