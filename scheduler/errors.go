package scheduler

import (
	"errors"
	"fmt"
)

// ErrSchedulerClosed is returned by Spawn once the scheduler it was
// called on has been shut down.
var ErrSchedulerClosed = errors.New("scheduler: spawn on closed scheduler")

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("scheduler: panic: %v", r)
}
