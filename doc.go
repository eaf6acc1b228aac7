// Package gogo is a cooperative, poll-based asynchronous computation
// library. Unlike the channel/goroutine style of the original gogo API,
// every computation here follows the "pull" discipline: nothing pushes a
// result onto a callback. Instead, an external driver repeatedly calls
// Poll, which returns either a final value (Ready) or a request to try
// again later (Pending). The computation is responsible for arranging its
// own wake-up via the Waker captured from the Context passed to Poll.
//
// The core abstraction is AsyncComputation[T]: a two-method capability set,
// Poll and Cancel. Future[T] is a factory that produces a fresh
// AsyncComputation on demand (RunComputation), so the same Future can be
// run more than once. Combinators (Ready, Bind, Map, Merge, First, and the
// rest) build bigger Futures out of smaller ones, threading cancellation
// and the polling Context through automatically.
//
// OnceVar is the minimal synchronization primitive: a single-assignment
// cell that is itself an AsyncComputation, and the building block the
// gogo/gsync package uses for Notify, Mutex, RwLock, Semaphore, and
// Barrier. gogo/scheduler provides the Scheduler/JoinHandle contract and a
// synchronous runner (RunSync) that drives any AsyncComputation to
// completion on the calling goroutine.
package gogo
