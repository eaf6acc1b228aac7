package scheduler

import "go.uber.org/zap"

// Option configures a GoroutinePool, following the same functional-options
// idiom as the rest of this module (mirroring the teacher's
// PoolOption/WithFailFast/WithBufferSize shape).
type Option func(*config)

type config struct {
	logger      *zap.Logger
	workerCount int
}

// WithLogger attaches a *zap.Logger the pool uses for spawn/completion/
// panic-recovery events. Defaults to zap.NewNop(), so a GoroutinePool
// built without this option is silent.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWorkerCount bounds how many spawned tasks may run concurrently. A
// value <= 0 (the default) means unbounded — every Spawn call gets its
// own goroutine immediately.
func WithWorkerCount(n int) Option {
	return func(c *config) {
		c.workerCount = n
	}
}
