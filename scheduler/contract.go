package scheduler

import "github.com/stcrestrada/gogo/v3"

// Scheduler is the contract any driver needs to satisfy to be usable as
// the ambient scheduler attached to a Context: it can schedule a Waker
// to run on its own work queue (gogo.SchedulerHandle, so gogo itself can
// depend on the contract without importing this package), and it can be
// shut down. Spawning new work is handled by the package-level Spawn
// function rather than a generic interface method — Go doesn't support
// type parameters on interface methods, so Spawn is parameterized over
// the concrete scheduler type instead, the same way golang.org/x/sync's
// errgroup or uber-go/conc expose generic helpers around a non-generic
// coordinator type.
type Scheduler interface {
	gogo.SchedulerHandle

	// Shutdown stops the scheduler from accepting newly spawned work and
	// waits for already-scheduled work to finish. Spawned tasks that are
	// still running are not cancelled; callers that want that should
	// Cancel their own JoinHandles first.
	Shutdown()
}
