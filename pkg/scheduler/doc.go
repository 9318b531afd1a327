// Package scheduler provides the periodic callback capability used by the
// countdown timer.
//
// A Scheduler invokes a callback repeatedly at a fixed period until the
// registration is cancelled. Two implementations are provided:
//
//   - Real runs each registration on its own goroutine driven by a
//     time.Ticker. Use it in production.
//   - Manual delivers ticks only when told to (Tick, Advance, Fire). Use it in
//     tests, or when embedding the timer in an existing event loop.
//
// # Handles
//
// RegisterPeriodic returns an opaque Handle. The zero Handle never refers to a
// registration, so CancelPeriodic(0) is always a no-op. Cancelling a handle
// more than once is also a no-op.
package scheduler
