package gsync

import (
	"sync"
	"sync/atomic"

	"github.com/stcrestrada/gogo/v3"
	"github.com/stcrestrada/gogo/v3/internal/list"
)

// Mutex guards a value of type T with mutual exclusion, handed out via a
// MutexGuard. Unlike sync.Mutex, Lock doesn't block a goroutine: it
// returns a Future that resolves once the lock is actually acquired,
// queueing behind any other waiter via the intrusive waiter list.
type Mutex[T any] struct {
	mu      sync.Mutex
	locked  bool
	value   T
	waiters list.InPlaceList[*gogo.OnceVar[gogo.Unit]]
}

// NewMutex returns an unlocked Mutex guarding initial.
func NewMutex[T any](initial T) *Mutex[T] {
	return &Mutex[T]{value: initial}
}

// MutexGuard is the capability returned once Lock's Future is Ready. Get
// and Set access the guarded value; Release gives up the lock, which is
// otherwise never released automatically (there is no scope-based defer
// here, since the guard travels through Poll calls rather than a single
// stack frame).
type MutexGuard[T any] struct {
	m        *Mutex[T]
	released atomic.Bool
}

// Get reads the guarded value.
func (g *MutexGuard[T]) Get() T {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	return g.m.value
}

// Set overwrites the guarded value.
func (g *MutexGuard[T]) Set(v T) {
	g.m.mu.Lock()
	g.m.value = v
	g.m.mu.Unlock()
}

// Release gives up the lock, waking the next queued waiter (if any).
// Idempotent: calling Release twice on the same guard is a no-op the
// second time.
func (g *MutexGuard[T]) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.m.release()
	}
}

// Lock returns a Future that resolves to a MutexGuard once this waiter
// acquires the lock.
func (m *Mutex[T]) Lock() gogo.Future[*MutexGuard[T]] {
	return gogo.FromFunc(func() gogo.AsyncComputation[*MutexGuard[T]] {
		ov := gogo.NewOnceVar[gogo.Unit]()
		node := &list.Node[*gogo.OnceVar[gogo.Unit]]{Value: ov}
		registered := false

		poll := func(ctx *gogo.Context) gogo.Poll[*MutexGuard[T]] {
			if registered {
				p := ov.Poll(ctx)
				if !p.IsReady() {
					return gogo.PollPending[*MutexGuard[T]]()
				}
				return gogo.PollReady(&MutexGuard[T]{m: m})
			}
			m.mu.Lock()
			if !m.locked {
				m.locked = true
				m.mu.Unlock()
				return gogo.PollReady(&MutexGuard[T]{m: m})
			}
			m.waiters.PushBack(node)
			registered = true
			m.mu.Unlock()
			p := ov.Poll(ctx)
			if !p.IsReady() {
				return gogo.PollPending[*MutexGuard[T]]()
			}
			return gogo.PollReady(&MutexGuard[T]{m: m})
		}
		cancel := func() { ov.Cancel() }
		return newMemoComputation(poll, cancel)
	})
}

// release hands the lock directly to the next non-abandoned waiter
// instead of unlocking and letting a fresh Lock call race for it, so a
// waiter that was cancelled between being queued and being woken never
// swallows the handoff.
func (m *Mutex[T]) release() {
	m.mu.Lock()
	for {
		node := m.waiters.PopFront()
		if node == nil {
			m.locked = false
			m.mu.Unlock()
			return
		}
		if node.Value.Abandoned() {
			continue
		}
		m.mu.Unlock()
		node.Value.TryWrite(gogo.Unit{})
		return
	}
}
