package gogo

import "sync"

// Unit is gogo's "no meaningful value" type, used wherever the original
// spec talks about a computation that completes without producing data
// (Yield, Ignore, Notify's wait).
type Unit struct{}

// Ready builds a Future that is immediately done with v on the very first
// poll, every time it's run.
func Ready[T any](v T) Future[T] {
	return FromFunc(func() AsyncComputation[T] {
		return create(
			func(ctx *Context) Poll[T] { return PollReady(v) },
			func() {},
		)
	})
}

// UnitFuture is Ready(Unit{}), spelled out as a shorthand for a Future
// that completes immediately without producing data.
func UnitFuture() Future[Unit] {
	return Ready(Unit{})
}

// Never builds a Future that is permanently Pending: Poll always returns
// Pending, and no Waker it captures is ever invoked. It is mainly useful
// as an identity element for First and as a building block in tests.
func Never[T any]() Future[T] {
	return FromFunc(func() AsyncComputation[T] {
		return create(
			func(ctx *Context) Poll[T] { return PollPending[T]() },
			func() {},
		)
	})
}

// Lazy defers calling f until the first poll, then memoizes its result:
// f runs at most once per RunComputation, no matter how many times the
// resulting computation is polled afterward.
func Lazy[T any](f func() T) Future[T] {
	return FromFunc(func() AsyncComputation[T] {
		return createMemo(
			func(ctx *Context) Poll[T] { return PollReady(f()) },
			func() {},
		)
	})
}

// Delay postpones calling creator until the first poll, then forwards
// every subsequent poll and the eventual Cancel to the Future it
// produces. Unlike Lazy, the inner Future is a full computation (it may
// itself be Pending for a while) rather than a plain value.
func Delay[T any](creator func() Future[T]) Future[T] {
	return FromFunc(func() AsyncComputation[T] {
		var mu sync.Mutex
		var inner AsyncComputation[T]
		var cancelled bool

		return create(
			func(ctx *Context) Poll[T] {
				mu.Lock()
				if cancelled {
					mu.Unlock()
					panic(ErrFutureCancelled)
				}
				if inner == nil {
					inner = creator().RunComputation()
					if cancelled {
						c := inner
						mu.Unlock()
						c.Cancel()
						panic(ErrFutureCancelled)
					}
				}
				c := inner
				mu.Unlock()
				return c.Poll(ctx)
			},
			func() {
				mu.Lock()
				cancelled = true
				c := inner
				mu.Unlock()
				if c != nil {
					c.Cancel()
				}
			},
		)
	})
}
