package gsync

import (
	"sync"
	"sync/atomic"

	"github.com/stcrestrada/gogo/v3"
)

// funcComputation is the same plain poll/cancel-closure AsyncComputation
// shape gogo itself uses internally, duplicated here (rather than
// exported from gogo). Notify's and Barrier's wait futures use it: they
// only transition Pending -> Ready once, by construction, and carry no
// guard value. The lock and permit futures use memoComputation below.
type funcComputation[T any] struct {
	poll      func(ctx *gogo.Context) gogo.Poll[T]
	cancelFn  func()
	cancelled atomic.Bool
}

func newFuncComputation[T any](poll func(ctx *gogo.Context) gogo.Poll[T], cancel func()) gogo.AsyncComputation[T] {
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

// memoComputation caches the first Ready result, for primitives (Lock,
// RLock, WLock, Acquire) whose guard/permit value must stay the exact
// same object on every re-poll after it's granted.
type memoComputation[T any] struct {
	mu       sync.Mutex
	done     bool
	value    T
	poll     func(ctx *gogo.Context) gogo.Poll[T]
	cancelFn func()
	cancel1  sync.Once
}

func newMemoComputation[T any](poll func(ctx *gogo.Context) gogo.Poll[T], cancel func()) gogo.AsyncComputation[T] {
	return &memoComputation[T]{poll: poll, cancelFn: cancel}
}

func (m *memoComputation[T]) Poll(ctx *gogo.Context) gogo.Poll[T] {
	m.mu.Lock()
	if m.done {
		v := m.value
		m.mu.Unlock()
		return gogo.PollReady(v)
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
	return gogo.PollReady(v)
}

func (m *memoComputation[T]) Cancel() {
	m.cancel1.Do(func() {
		if m.cancelFn != nil {
			m.cancelFn()
		}
	})
}
