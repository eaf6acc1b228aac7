package gogo

import "sync"

// side wraps one branch of a fan-in combinator (Merge, Apply): it
// polls its own child computation and memoizes the result per-side, so
// the owning combinator never has to re-poll a branch that's already
// Ready. Merge's spec explicitly calls for this per-side memoization;
// Apply gets it by sharing the same helper. First does not use side: it
// settles on the first Ready branch, so it polls its two computations
// directly through pollCatching.
type side[T any] struct {
	mu   sync.Mutex
	comp AsyncComputation[T]
	done bool
	val  T
}

func newSide[T any](f Future[T]) *side[T] {
	return &side[T]{comp: f.RunComputation()}
}

// poll returns (value, true) once the branch has reached Ready, caching
// the value from then on. It returns (zero, false) while still Pending.
// Panics from the underlying computation propagate to the caller
// untouched; it is the caller's job to cancel any sibling branch before
// letting the panic continue.
func (s *side[T]) poll(ctx *Context) (T, bool) {
	s.mu.Lock()
	if s.done {
		val := s.val
		s.mu.Unlock()
		return val, true
	}
	c := s.comp
	s.mu.Unlock()

	p := c.Poll(ctx)
	if !p.IsReady() {
		var zero T
		return zero, false
	}

	s.mu.Lock()
	if !s.done {
		s.val = p.Value()
		s.done = true
	}
	val := s.val
	s.mu.Unlock()
	return val, true
}

// cancel cancels the branch's computation, unless it already reached
// Ready (a Ready sibling has nothing left to cancel).
func (s *side[T]) cancel() {
	s.mu.Lock()
	done := s.done
	c := s.comp
	s.mu.Unlock()
	if !done {
		c.Cancel()
	}
}

// safePoll runs side.poll, invoking onPanic and re-raising if the branch
// panics, so the owning combinator can cancel a sibling before the panic
// continues to unwind.
func safePoll[T any](s *side[T], ctx *Context, onPanic func()) (v T, ready bool) {
	defer func() {
		if r := recover(); r != nil {
			onPanic()
			panic(r)
		}
	}()
	return s.poll(ctx)
}
