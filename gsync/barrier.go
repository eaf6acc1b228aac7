package gsync

import (
	"sync"

	"github.com/stcrestrada/gogo/v3"
	"github.com/stcrestrada/gogo/v3/internal/list"
)

// Barrier holds n parties at a rendezvous point until all n have called
// Wait, then releases every one of them together. Cancelling a party's
// Wait before the barrier trips withdraws it from the count, so the
// remaining parties aren't stuck waiting on one that gave up.
type Barrier struct {
	mu       sync.Mutex
	parties  int
	arrived  int
	waiters  list.InPlaceList[*gogo.OnceVar[gogo.Unit]]
}

// NewBarrier returns a Barrier that trips once n parties have arrived.
func NewBarrier(n int) *Barrier {
	return &Barrier{parties: n}
}

const (
	barrierNotArrived = iota
	barrierWaiting
	barrierTripped
	barrierWithdrawn
)

// Wait returns a Future that resolves once every party has called Wait.
func (b *Barrier) Wait() gogo.Future[gogo.Unit] {
	return gogo.FromFunc(func() gogo.AsyncComputation[gogo.Unit] {
		ov := gogo.NewOnceVar[gogo.Unit]()
		node := &list.Node[*gogo.OnceVar[gogo.Unit]]{Value: ov}
		state := barrierNotArrived

		poll := func(ctx *gogo.Context) gogo.Poll[gogo.Unit] {
			b.mu.Lock()
			switch state {
			case barrierTripped:
				b.mu.Unlock()
				return gogo.PollReady(gogo.Unit{})
			case barrierWithdrawn:
				b.mu.Unlock()
				panic(gogo.ErrFutureCancelled)
			case barrierWaiting:
				b.mu.Unlock()
				p := ov.Poll(ctx)
				if p.IsReady() {
					b.mu.Lock()
					state = barrierTripped
					b.mu.Unlock()
				}
				return p
			default:
				b.arrived++
				if b.arrived == b.parties {
					nodes := b.waiters.Drain()
					b.arrived = 0
					state = barrierTripped
					b.mu.Unlock()
					for _, n := range nodes {
						n.Value.TryWrite(gogo.Unit{})
					}
					return gogo.PollReady(gogo.Unit{})
				}
				b.waiters.PushBack(node)
				state = barrierWaiting
				b.mu.Unlock()
				return ov.Poll(ctx)
			}
		}

		cancel := func() {
			b.mu.Lock()
			switch state {
			case barrierWaiting:
				b.arrived--
				state = barrierWithdrawn
				ov.Cancel()
			case barrierNotArrived:
				state = barrierWithdrawn
			}
			b.mu.Unlock()
		}

		return newFuncComputation(poll, cancel)
	})
}
