package gsync

import (
	"sync"
	"sync/atomic"

	"github.com/stcrestrada/gogo/v3"
	"github.com/stcrestrada/gogo/v3/internal/list"
)

// Semaphore bounds concurrent access to n permits. Acquire returns a
// Future that resolves to a SemaphorePermit once one is available;
// Release hands the permit back, either returning it to the pool or
// directly to the next queued waiter.
type Semaphore struct {
	mu      sync.Mutex
	permits int
	waiters list.InPlaceList[*gogo.OnceVar[gogo.Unit]]
}

// SemaphoreOption configures a Semaphore at construction, following the
// functional-options idiom used throughout this module.
type SemaphoreOption func(*Semaphore)

// WithHeld reserves n permits immediately at construction, before any
// caller has acquired one — for a Semaphore that starts life already
// partly spoken for (e.g. capacity set aside for a long-lived task).
// A held permit is never handed out by Acquire, and Semaphore has no
// operation that returns one: the capacity stays reduced by n for the
// Semaphore's lifetime.
func WithHeld(n int) SemaphoreOption {
	return func(s *Semaphore) {
		s.permits -= n
	}
}

// NewSemaphore returns a Semaphore with n permits available up front,
// minus whatever opts (such as WithHeld) reserve before the first
// Acquire.
func NewSemaphore(n int, opts ...SemaphoreOption) *Semaphore {
	s := &Semaphore{permits: n}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SemaphorePermit is a single held permit.
type SemaphorePermit struct {
	s        *Semaphore
	released atomic.Bool
}

// Release returns the permit, waking the next queued waiter if any.
// Idempotent.
func (p *SemaphorePermit) Release() {
	if p.released.CompareAndSwap(false, true) {
		p.s.release()
	}
}

// Acquire returns a Future resolving to a permit once one is available.
func (s *Semaphore) Acquire() gogo.Future[*SemaphorePermit] {
	return gogo.FromFunc(func() gogo.AsyncComputation[*SemaphorePermit] {
		ov := gogo.NewOnceVar[gogo.Unit]()
		node := &list.Node[*gogo.OnceVar[gogo.Unit]]{Value: ov}
		registered := false

		poll := func(ctx *gogo.Context) gogo.Poll[*SemaphorePermit] {
			if registered {
				p := ov.Poll(ctx)
				if !p.IsReady() {
					return gogo.PollPending[*SemaphorePermit]()
				}
				return gogo.PollReady(&SemaphorePermit{s: s})
			}
			s.mu.Lock()
			if s.permits > 0 {
				s.permits--
				s.mu.Unlock()
				return gogo.PollReady(&SemaphorePermit{s: s})
			}
			s.waiters.PushBack(node)
			registered = true
			s.mu.Unlock()
			p := ov.Poll(ctx)
			if !p.IsReady() {
				return gogo.PollPending[*SemaphorePermit]()
			}
			return gogo.PollReady(&SemaphorePermit{s: s})
		}
		return newMemoComputation(poll, func() { ov.Cancel() })
	})
}

func (s *Semaphore) release() {
	s.mu.Lock()
	for {
		node := s.waiters.PopFront()
		if node == nil {
			s.permits++
			s.mu.Unlock()
			return
		}
		if node.Value.Abandoned() {
			continue
		}
		s.mu.Unlock()
		node.Value.TryWrite(gogo.Unit{})
		return
	}
}
