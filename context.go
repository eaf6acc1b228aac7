package gogo

// Waker signals that a pending computation may be able to make progress.
// It is safe to call from any goroutine, any number of times, including
// before the Poll call that captured it has returned — spurious wakes are
// always permitted, a computation must simply re-check its own state the
// next time it is polled rather than assuming a wake implies readiness.
type Waker func()

// SchedulerHandle is the narrow capability a Context exposes about the
// ambient scheduler driving the current poll, without gogo importing
// package scheduler back (scheduler imports gogo, not the other way
// around). A computation that wants to offload its continuation rather
// than being woken inline can type-assert for richer scheduler behavior,
// but the common case only needs ScheduleWake.
type SchedulerHandle interface {
	// ScheduleWake arranges for w to run via the scheduler's own work
	// queue instead of synchronously inline with whatever called Wake.
	ScheduleWake(w Waker)
}

// Context is handed to every Poll call. It is only valid for the duration
// of that single call: a computation may retain the Waker it returns (via
// Waker or Wake) past the call returning, but must not retain the Context
// value itself.
type Context struct {
	wake      Waker
	scheduler SchedulerHandle
}

// NewContext builds a Context around a plain Waker, with no scheduler
// attached.
func NewContext(wake Waker) *Context {
	return &Context{wake: wake}
}

// NewSchedulerContext builds a Context that also carries a scheduler
// handle, for drivers that want computations to find them via
// Context.Scheduler. gogo/scheduler's RunSync (and so JoinHandle.Join)
// uses NewContext and attaches no scheduler.
func NewSchedulerContext(wake Waker, scheduler SchedulerHandle) *Context {
	return &Context{wake: wake, scheduler: scheduler}
}

// Wake invokes the Context's Waker, if any. Safe to call any number of
// times.
func (c *Context) Wake() {
	if c != nil && c.wake != nil {
		c.wake()
	}
}

// Waker returns the Context's underlying wake function so it can be
// stashed away and invoked later, after Poll has returned.
func (c *Context) Waker() Waker {
	if c == nil {
		return nil
	}
	return c.wake
}

// Scheduler returns the ambient scheduler handle, if the driver attached
// one.
func (c *Context) Scheduler() (SchedulerHandle, bool) {
	if c == nil || c.scheduler == nil {
		return nil, false
	}
	return c.scheduler, true
}
