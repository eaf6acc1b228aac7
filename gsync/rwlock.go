package gsync

import (
	"sync"
	"sync/atomic"

	"github.com/stcrestrada/gogo/v3"
	"github.com/stcrestrada/gogo/v3/internal/list"
)

// RwLock guards a value with multiple-reader/single-writer semantics and
// writer priority: once a writer is queued, new readers queue behind it
// rather than jumping ahead, so a steady stream of readers can't starve
// a waiting writer.
type RwLock[T any] struct {
	mu           sync.Mutex
	value        T
	writerActive bool
	readerCount  int
	readQueue    list.InPlaceList[*gogo.OnceVar[gogo.Unit]]
	writeQueue   list.InPlaceList[*gogo.OnceVar[gogo.Unit]]
}

// NewRwLock returns an unlocked RwLock guarding initial.
func NewRwLock[T any](initial T) *RwLock[T] {
	return &RwLock[T]{value: initial}
}

// RLockGuard is a held read lock.
type RLockGuard[T any] struct {
	l        *RwLock[T]
	released atomic.Bool
}

// Get reads the guarded value.
func (g *RLockGuard[T]) Get() T {
	g.l.mu.Lock()
	defer g.l.mu.Unlock()
	return g.l.value
}

// Release gives up this read lock.
func (g *RLockGuard[T]) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.l.unlockRead()
	}
}

// WLockGuard is a held write lock.
type WLockGuard[T any] struct {
	l        *RwLock[T]
	released atomic.Bool
}

// Get reads the guarded value.
func (g *WLockGuard[T]) Get() T {
	g.l.mu.Lock()
	defer g.l.mu.Unlock()
	return g.l.value
}

// Set overwrites the guarded value.
func (g *WLockGuard[T]) Set(v T) {
	g.l.mu.Lock()
	g.l.value = v
	g.l.mu.Unlock()
}

// Release gives up this write lock.
func (g *WLockGuard[T]) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.l.unlockWrite()
	}
}

// RLock returns a Future resolving to a read guard once granted.
func (l *RwLock[T]) RLock() gogo.Future[*RLockGuard[T]] {
	return gogo.FromFunc(func() gogo.AsyncComputation[*RLockGuard[T]] {
		ov := gogo.NewOnceVar[gogo.Unit]()
		node := &list.Node[*gogo.OnceVar[gogo.Unit]]{Value: ov}
		registered := false

		poll := func(ctx *gogo.Context) gogo.Poll[*RLockGuard[T]] {
			if registered {
				p := ov.Poll(ctx)
				if !p.IsReady() {
					return gogo.PollPending[*RLockGuard[T]]()
				}
				return gogo.PollReady(&RLockGuard[T]{l: l})
			}
			l.mu.Lock()
			if !l.writerActive && l.writeQueue.Empty() {
				l.readerCount++
				l.mu.Unlock()
				return gogo.PollReady(&RLockGuard[T]{l: l})
			}
			l.readQueue.PushBack(node)
			registered = true
			l.mu.Unlock()
			p := ov.Poll(ctx)
			if !p.IsReady() {
				return gogo.PollPending[*RLockGuard[T]]()
			}
			return gogo.PollReady(&RLockGuard[T]{l: l})
		}
		return newMemoComputation(poll, func() { ov.Cancel() })
	})
}

// WLock returns a Future resolving to a write guard once granted.
func (l *RwLock[T]) WLock() gogo.Future[*WLockGuard[T]] {
	return gogo.FromFunc(func() gogo.AsyncComputation[*WLockGuard[T]] {
		ov := gogo.NewOnceVar[gogo.Unit]()
		node := &list.Node[*gogo.OnceVar[gogo.Unit]]{Value: ov}
		registered := false

		poll := func(ctx *gogo.Context) gogo.Poll[*WLockGuard[T]] {
			if registered {
				p := ov.Poll(ctx)
				if !p.IsReady() {
					return gogo.PollPending[*WLockGuard[T]]()
				}
				return gogo.PollReady(&WLockGuard[T]{l: l})
			}
			l.mu.Lock()
			if !l.writerActive && l.readerCount == 0 {
				l.writerActive = true
				l.mu.Unlock()
				return gogo.PollReady(&WLockGuard[T]{l: l})
			}
			l.writeQueue.PushBack(node)
			registered = true
			l.mu.Unlock()
			p := ov.Poll(ctx)
			if !p.IsReady() {
				return gogo.PollPending[*WLockGuard[T]]()
			}
			return gogo.PollReady(&WLockGuard[T]{l: l})
		}
		return newMemoComputation(poll, func() { ov.Cancel() })
	})
}

func (l *RwLock[T]) unlockRead() {
	l.mu.Lock()
	l.readerCount--
	if l.readerCount > 0 {
		l.mu.Unlock()
		return
	}
	for {
		node := l.writeQueue.PopFront()
		if node == nil {
			l.mu.Unlock()
			return
		}
		if node.Value.Abandoned() {
			continue
		}
		l.writerActive = true
		l.mu.Unlock()
		node.Value.TryWrite(gogo.Unit{})
		return
	}
}

func (l *RwLock[T]) unlockWrite() {
	l.mu.Lock()
	l.writerActive = false
	for {
		node := l.writeQueue.PopFront()
		if node == nil {
			break
		}
		if node.Value.Abandoned() {
			continue
		}
		l.writerActive = true
		l.mu.Unlock()
		node.Value.TryWrite(gogo.Unit{})
		return
	}

	nodes := l.readQueue.Drain()
	woken := 0
	for _, n := range nodes {
		if !n.Value.Abandoned() {
			woken++
		}
	}
	l.readerCount += woken
	l.mu.Unlock()
	for _, n := range nodes {
		n.Value.TryWrite(gogo.Unit{})
	}
}
