package gogo

import "sync"

type onceVarState int

const (
	onceVarEmpty onceVarState = iota
	onceVarWaiting
	onceVarHasValue
	onceVarCancelled
	onceVarCancelledWithValue
)

// OnceVar is a single-assignment asynchronous cell: at most one value is
// ever committed to it, and it is itself an AsyncComputation, so anything
// that wants "the value, once it shows up" can just poll the OnceVar
// directly. It is built to have exactly one waiter at a time (the last
// caller to Poll it), which is what makes it a cheap building block for
// the gogo/gsync primitives rather than a general broadcast channel.
type OnceVar[T any] struct {
	mu     sync.Mutex
	state  onceVarState
	value  T
	waiter Waker
}

// NewOnceVar returns an empty cell.
func NewOnceVar[T any]() *OnceVar[T] {
	return &OnceVar[T]{}
}

// TryWrite attempts to commit val, reporting whether it won the race to
// do so. It never panics and never blocks.
func (v *OnceVar[T]) TryWrite(val T) bool {
	v.mu.Lock()
	var wake Waker
	ok := false
	switch v.state {
	case onceVarEmpty, onceVarWaiting:
		wake = v.waiter
		v.waiter = nil
		v.value = val
		v.state = onceVarHasValue
		ok = true
	case onceVarCancelled:
		v.value = val
		v.state = onceVarCancelledWithValue
		ok = true
	default:
		ok = false
	}
	v.mu.Unlock()
	if ok && wake != nil {
		wake()
	}
	return ok
}

// Write commits val, panicking with ErrOnceVarDoubleWrite if the cell
// already holds a value. Mirrors the teacher's own convention of
// panicking on a misused one-shot resource (Pool.Go called twice,
// Collect called after Go) rather than returning an error for what is a
// programming mistake, not a recoverable runtime condition.
func (v *OnceVar[T]) Write(val T) {
	if !v.TryWrite(val) {
		panic(ErrOnceVarDoubleWrite)
	}
}

// TryRead returns the committed value without blocking or registering a
// waiter, reporting false if nothing has been written yet (including
// when the cell was cancelled before ever receiving a value).
func (v *OnceVar[T]) TryRead() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.state {
	case onceVarHasValue, onceVarCancelledWithValue:
		return v.value, true
	default:
		var zero T
		return zero, false
	}
}

// Poll implements AsyncComputation: it reports Ready once a value has
// been committed (whether or not the cell was later, or already,
// cancelled), or panics with ErrFutureCancelled if the cell was cancelled
// before ever receiving one. Only the most recent caller's Waker is kept;
// OnceVar is single-waiter by construction.
func (v *OnceVar[T]) Poll(ctx *Context) Poll[T] {
	v.mu.Lock()
	switch v.state {
	case onceVarHasValue, onceVarCancelledWithValue:
		val := v.value
		v.mu.Unlock()
		return PollReady(val)
	case onceVarCancelled:
		v.mu.Unlock()
		panic(ErrFutureCancelled)
	default:
		v.state = onceVarWaiting
		v.waiter = ctx.Waker()
		v.mu.Unlock()
		return PollPending[T]()
	}
}

// Abandoned reports whether the cell was cancelled without ever
// receiving a value — i.e. nothing is listening for a write to land here
// anymore. gogo/gsync uses this to skip past stale waiters in its queues
// instead of spending a wakeup on one nobody will see.
func (v *OnceVar[T]) Abandoned() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state == onceVarCancelled
}

// Cancel marks the cell cancelled if no value has been written yet,
// waking whoever is currently polling it so a driver blocked waiting for
// progress notices the cancellation instead of hanging forever.
// Idempotent: cancelling an already-resolved or already-cancelled cell
// is a no-op.
func (v *OnceVar[T]) Cancel() {
	v.mu.Lock()
	var wake Waker
	switch v.state {
	case onceVarEmpty, onceVarWaiting:
		wake = v.waiter
		v.waiter = nil
		v.state = onceVarCancelled
	}
	v.mu.Unlock()
	if wake != nil {
		wake()
	}
}
