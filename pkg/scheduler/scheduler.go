package scheduler

import "time"

// Handle identifies a periodic registration. The zero value means no handle.
type Handle uint64

// Scheduler invokes callbacks on a fixed period.
type Scheduler interface {
	// RegisterPeriodic invokes callback once per period until the returned
	// handle is cancelled. The callback must not run before RegisterPeriodic
	// returns, and invocations for one handle must not overlap.
	RegisterPeriodic(callback func(), period time.Duration) Handle

	// CancelPeriodic stops future invocations for h. Unknown, zero, or
	// already-cancelled handles are ignored.
	CancelPeriodic(h Handle)
}
