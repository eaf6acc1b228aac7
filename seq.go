package gogo

// Iter drives body(x) to completion for every item in seq, in order,
// resuming exactly where it left off across Pending results rather than
// restarting the current item. Equivalent items that are already Ready
// are driven through in the same outer poll, one after another, until
// either the sequence is exhausted or an item is Pending.
//
// Cancelling an in-progress Iter cancels whatever item is currently
// running and sticks: every poll after Cancel panics with
// ErrFutureCancelled, the same as any other cancelled computation.
func Iter[X any](seq []X, body func(X) Future[Unit]) Future[Unit] {
	return FromFunc(func() AsyncComputation[Unit] {
		idx := 0
		var current AsyncComputation[Unit]
		cancelled := false

		return create(
			func(ctx *Context) Poll[Unit] {
				if cancelled {
					panic(ErrFutureCancelled)
				}
				for {
					if current == nil {
						if idx >= len(seq) {
							return PollReady(Unit{})
						}
						current = body(seq[idx]).RunComputation()
					}
					p := current.Poll(ctx)
					if !p.IsReady() {
						return PollPending[Unit]()
					}
					current = nil
					idx++
				}
			},
			func() {
				cancelled = true
				if current != nil {
					current.Cancel()
				}
			},
		)
	})
}
