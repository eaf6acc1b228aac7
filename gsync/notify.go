// Package gsync provides cooperative synchronization primitives —
// Notify, Mutex, RwLock, Semaphore, Barrier — built entirely on top of
// gogo.OnceVar and an intrusive waiter queue. None of them ever block a
// goroutine; every wait is expressed as a gogo.Future that some driver
// polls, exactly like any other computation.
package gsync

import (
	"sync"

	"github.com/stcrestrada/gogo/v3"
	"github.com/stcrestrada/gogo/v3/internal/list"
)

// Notify is the simplest primitive: parties call Wait to get a Future
// that completes once NotifyOne or NotifyAll releases it. It carries no
// payload and no permit count. Mutex, RwLock, Semaphore and Barrier do
// not use Notify; each keeps its own queue of OnceVar waiters in the
// same way.
type Notify struct {
	mu      sync.Mutex
	waiters list.InPlaceList[*gogo.OnceVar[gogo.Unit]]
}

// NewNotify returns an empty Notify with no pending waiters.
func NewNotify() *Notify {
	return &Notify{}
}

// Wait returns a Future that completes the next time this waiter is
// chosen by NotifyOne, or whenever NotifyAll runs.
func (n *Notify) Wait() gogo.Future[gogo.Unit] {
	return gogo.FromFunc(func() gogo.AsyncComputation[gogo.Unit] {
		ov := gogo.NewOnceVar[gogo.Unit]()
		node := &list.Node[*gogo.OnceVar[gogo.Unit]]{Value: ov}
		registered := false

		poll := func(ctx *gogo.Context) gogo.Poll[gogo.Unit] {
			if !registered {
				n.mu.Lock()
				n.waiters.PushBack(node)
				n.mu.Unlock()
				registered = true
			}
			return ov.Poll(ctx)
		}
		cancel := func() { ov.Cancel() }
		return newFuncComputation(poll, cancel)
	})
}

// NotifyOne wakes at most one waiter, skipping over any that were
// already cancelled so a single notification is never absorbed by a
// waiter who's no longer listening — it carries forward to the next one
// instead.
func (n *Notify) NotifyOne() {
	for {
		n.mu.Lock()
		node := n.waiters.PopFront()
		n.mu.Unlock()
		if node == nil {
			return
		}
		if node.Value.Abandoned() {
			continue
		}
		node.Value.TryWrite(gogo.Unit{})
		return
	}
}

// NotifyAll wakes every current waiter.
func (n *Notify) NotifyAll() {
	n.mu.Lock()
	nodes := n.waiters.Drain()
	n.mu.Unlock()
	for _, node := range nodes {
		node.Value.TryWrite(gogo.Unit{})
	}
}
