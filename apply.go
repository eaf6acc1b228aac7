package gogo

// Apply runs fnFuture and argFuture concurrently (every poll advances
// both, in that order) and, once both are Ready, applies the function to
// the argument. Cancelling the combined computation cancels both
// branches.
func Apply[A, B any](fnFuture Future[func(A) B], argFuture Future[A]) Future[B] {
	return FromFunc(func() AsyncComputation[B] {
		sf := newSide(fnFuture)
		sa := newSide(argFuture)
		latch := &panicLatch{}

		return createMemo(
			func(ctx *Context) (out Poll[B]) {
				latch.run(func() {
					f, fReady := safePoll(sf, ctx, sa.cancel)
					a, aReady := safePoll(sa, ctx, sf.cancel)
					if fReady && aReady {
						out = PollReady(f(a))
						return
					}
					out = PollPending[B]()
				})
				return out
			},
			func() {
				sf.cancel()
				sa.cancel()
			},
		)
	})
}

// Pair holds the two results merged together by Merge.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Merge runs a and b concurrently, polling both (left, then right) on
// every outer poll, and completes once both sides have reached Ready. If
// either side raises, the other is cancelled and the same error is
// re-raised from every subsequent poll.
func Merge[A, B any](a Future[A], b Future[B]) Future[Pair[A, B]] {
	return FromFunc(func() AsyncComputation[Pair[A, B]] {
		sa := newSide(a)
		sb := newSide(b)
		latch := &panicLatch{}

		return createMemo(
			func(ctx *Context) (out Poll[Pair[A, B]]) {
				latch.run(func() {
					va, aReady := safePoll(sa, ctx, sb.cancel)
					vb, bReady := safePoll(sb, ctx, sa.cancel)
					if aReady && bReady {
						out = PollReady(Pair[A, B]{First: va, Second: vb})
						return
					}
					out = PollPending[Pair[A, B]]()
				})
				return out
			},
			func() {
				sa.cancel()
				sb.cancel()
			},
		)
	})
}

// First runs a and b concurrently and completes with whichever reaches
// Ready first, cancelling the loser. Ties (both Ready within the same
// outer poll) favor a. If either side raises before a winner is settled,
// the other is cancelled and the error propagates.
func First[T any](a, b Future[T]) Future[T] {
	return FromFunc(func() AsyncComputation[T] {
		ca := a.RunComputation()
		cb := b.RunComputation()
		latch := &panicLatch{}

		return createMemo(
			func(ctx *Context) (out Poll[T]) {
				latch.run(func() {
					pa := pollCatching(ca, ctx, cb.Cancel)
					if pa.IsReady() {
						cb.Cancel()
						out = pa
						return
					}
					pb := pollCatching(cb, ctx, ca.Cancel)
					if pb.IsReady() {
						ca.Cancel()
						out = pb
						return
					}
					out = PollPending[T]()
				})
				return out
			},
			func() {
				ca.Cancel()
				cb.Cancel()
			},
		)
	})
}

func pollCatching[T any](c AsyncComputation[T], ctx *Context, onPanic func()) (out Poll[T]) {
	defer func() {
		if r := recover(); r != nil {
			onPanic()
			panic(r)
		}
	}()
	return c.Poll(ctx)
}
