package gogo

import (
	"sync"
	"sync/atomic"
)

// AsyncComputation is a single, stateful attempt at producing a T: the
// capability set is deliberately small, Poll and Cancel, mirroring the
// teacher's own minimal interfaces (e.g. Proc's Done/Result) rather than
// a large surface of convenience methods.
//
// Poll drives the computation forward one step. Cancel requests that the
// computation abandon work and release any resources (including child
// computations it owns); Cancel is idempotent, thread-safe, and must not
// block.
type AsyncComputation[T any] interface {
	Poll(ctx *Context) Poll[T]
	Cancel()
}

// Future is a factory for AsyncComputation instances: RunComputation
// starts a fresh, independent run every time it's called, which is what
// lets the same Future value be reused (passed to Bind twice, spawned
// twice, and so on) without the runs interfering with each other.
type Future[T any] interface {
	RunComputation() AsyncComputation[T]
}

// futureFunc adapts a plain function into a Future, the same shape as the
// teacher's functional-options idiom applied to construction instead of
// configuration.
type futureFunc[T any] func() AsyncComputation[T]

func (f futureFunc[T]) RunComputation() AsyncComputation[T] {
	return f()
}

// FromFunc builds a Future out of a function that produces a fresh
// AsyncComputation on each call. Combinator authors outside this package
// can use it the same way this package's own combinators do.
func FromFunc[T any](f func() AsyncComputation[T]) Future[T] {
	return futureFunc[T](f)
}

type pollFunc[T any] func(ctx *Context) Poll[T]

// funcComputation is the plain (non-memoizing) AsyncComputation built by
// create: every Poll call after Ready still invokes poll again, so it's
// only safe to use when poll is itself already idempotent (e.g. an inner
// computation that memoizes on its own, or a primitive like Ready/Never
// whose poll function is trivially constant).
type funcComputation[T any] struct {
	poll      pollFunc[T]
	cancelFn  func()
	cancelled atomic.Bool
}

func create[T any](poll pollFunc[T], cancel func()) AsyncComputation[T] {
	return &funcComputation[T]{poll: poll, cancelFn: cancel}
}

func (f *funcComputation[T]) Poll(ctx *Context) Poll[T] {
	return f.poll(ctx)
}

func (f *funcComputation[T]) Cancel() {
	if f.cancelled.CompareAndSwap(false, true) && f.cancelFn != nil {
		f.cancelFn()
	}
}

// memoComputation is the memoizing AsyncComputation built by createMemo:
// once the wrapped poll function returns Ready, the value is cached and
// every later Poll returns it immediately without calling poll again.
// This is how combinators satisfy the monotonicity invariant when their
// own poll function isn't already idempotent on its own (Lazy, Merge,
// First, Apply, Catch...).
type memoComputation[T any] struct {
	mu        sync.Mutex
	done      bool
	value     T
	poll      pollFunc[T]
	cancelFn  func()
	cancelled bool
}

func createMemo[T any](poll pollFunc[T], cancel func()) AsyncComputation[T] {
	return &memoComputation[T]{poll: poll, cancelFn: cancel}
}

func (m *memoComputation[T]) Poll(ctx *Context) Poll[T] {
	m.mu.Lock()
	if m.done {
		v := m.value
		m.mu.Unlock()
		return PollReady(v)
	}
	m.mu.Unlock()

	p := m.poll(ctx)
	if !p.IsReady() {
		return p
	}

	m.mu.Lock()
	if !m.done {
		m.value = p.Value()
		m.done = true
	}
	v := m.value
	m.mu.Unlock()
	return PollReady(v)
}

func (m *memoComputation[T]) Cancel() {
	m.mu.Lock()
	if m.cancelled {
		m.mu.Unlock()
		return
	}
	m.cancelled = true
	m.mu.Unlock()
	if m.cancelFn != nil {
		m.cancelFn()
	}
}
