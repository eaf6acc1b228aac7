package gogo

import "sync"

// Bind sequences two computations: source runs first; once it reaches
// Ready(a), binder(a) is called to produce the next Future, which is run
// in source's place for every poll after that. Cancelling the combined
// computation cancels whichever of source/binder's result is currently
// live. The combinator itself is built on createMemo, so once next
// reaches Ready the value is cached at the Bind level and next is never
// polled again — binder is free to return a Future whose own Poll isn't
// idempotent after Ready, the same way Merge/Apply/First don't require
// idempotent children either.
//
// Map is Bind with a binder that lifts a plain function into Ready.
func Bind[A, B any](binder func(A) Future[B], source Future[A]) Future[B] {
	return FromFunc(func() AsyncComputation[B] {
		var mu sync.Mutex
		src := source.RunComputation()
		var next AsyncComputation[B]
		var cancelled bool
		latch := &panicLatch{}

		return createMemo(
			func(ctx *Context) (out Poll[B]) {
				latch.run(func() {
					mu.Lock()
					n := next
					mu.Unlock()
					if n != nil {
						out = n.Poll(ctx)
						return
					}

					mu.Lock()
					s := src
					mu.Unlock()

					p := s.Poll(ctx)
					if !p.IsReady() {
						out = PollPending[B]()
						return
					}

					a := p.Value()
					nf := binder(a).RunComputation()

					mu.Lock()
					src = nil
					next = nf
					wasCancelled := cancelled
					mu.Unlock()

					if wasCancelled {
						nf.Cancel()
						panic(ErrFutureCancelled)
					}
					out = nf.Poll(ctx)
				})
				return out
			},
			func() {
				mu.Lock()
				s, n := src, next
				cancelled = true
				mu.Unlock()
				if n != nil {
					n.Cancel()
				} else if s != nil {
					s.Cancel()
				}
			},
		)
	})
}

// Map transforms a Future's eventual value with f, without ever observing
// a Pending state itself.
func Map[A, B any](f func(A) B, source Future[A]) Future[B] {
	return Bind(func(a A) Future[B] { return Ready(f(a)) }, source)
}

// Ignore discards a Future's value, keeping only its completion and
// cancellation behavior.
func Ignore[T any](source Future[T]) Future[Unit] {
	return Map(func(T) Unit { return Unit{} }, source)
}

// Join collapses a Future of a Future into a single Future: it polls the
// outer computation, and once that yields the inner Future, runs the
// inner one in its place. It is Bind with an identity binder.
func Join[T any](source Future[Future[T]]) Future[T] {
	return Bind(func(inner Future[T]) Future[T] { return inner }, source)
}
