package gogo

import (
	"sync"
	"time"
)

// Timer is the handle Clock.AfterFunc returns: the part of *time.Timer
// Sleep actually needs, so a test clock can hand back something lighter
// than a real OS timer.
type Timer interface {
	Stop() bool
}

// Clock is the pluggable time source spec.md calls for ("callers may
// supply a monotonic clock; the default is the host's"): anything that
// can schedule a one-shot callback after a duration. *time.Timer already
// satisfies Timer, so SystemClock needs no wrapper type of its own.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the default Clock, backed by the standard library's
// monotonic timers. Sleep uses it unless SleepOn is given a different one.
var SystemClock Clock = systemClock{}

// Sleep builds a Future that becomes Ready with Unit{} once d has
// elapsed, using SystemClock. The wait is driven by an external one-shot
// timer waking the computation's Context, never by blocking inside Poll.
func Sleep(d time.Duration) Future[Unit] {
	return SleepOn(SystemClock, d)
}

// SleepOn is Sleep parameterized over an explicit Clock, for tests or
// callers that need a virtual time source instead of the host clock.
// Timer cancellation is tied to computation cancellation: Cancel stops
// the pending timer so it never fires after the computation has been
// abandoned.
func SleepOn(clock Clock, d time.Duration) Future[Unit] {
	return FromFunc(func() AsyncComputation[Unit] {
		var mu sync.Mutex
		var timer Timer
		var started bool
		var fired bool
		var cancelled bool

		return createMemo(
			func(ctx *Context) Poll[Unit] {
				mu.Lock()
				defer mu.Unlock()
				if cancelled {
					panic(ErrFutureCancelled)
				}
				if fired {
					return PollReady(Unit{})
				}
				if !started {
					started = true
					wake := ctx.Waker()
					timer = clock.AfterFunc(d, func() {
						mu.Lock()
						fired = true
						mu.Unlock()
						if wake != nil {
							wake()
						}
					})
				}
				return PollPending[Unit]()
			},
			func() {
				mu.Lock()
				if !fired {
					cancelled = true
				}
				t := timer
				mu.Unlock()
				if t != nil {
					t.Stop()
				}
			},
		)
	})
}
