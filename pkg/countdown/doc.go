// Package countdown implements a whole-second countdown timer.
//
// A Timer counts down from a duration to zero, one second per tick delivered
// by an injected scheduler.Scheduler. It exposes start, stop, pause, resume,
// and reset controls and accessors for remaining time and run state.
//
// # States
//
//	IDLE    - not counting (initial state, after stop/reset, after completion)
//	RUNNING - counting down; exactly one tick registration is live
//	PAUSED  - counting suspended; remaining time is frozen
//
// Reaching zero returns the timer to IDLE, exactly as an explicit Stop does.
// Callers tell completion from a manual stop by RemainingTime() == 0.
//
// # Controls
//
//   - Start always restarts: any live registration is torn down first and the
//     countdown begins again from the new duration, whatever the prior state.
//   - Pause and Resume are no-ops outside RUNNING and PAUSED respectively.
//   - Stop and Reset are valid in every state.
//
// Start rejects non-positive durations with ErrInvalidArgument. No other
// operation fails.
//
// # Cancellation
//
// Every tick callback is bound to the registration it was created for. A
// tick that arrives after its registration was cancelled is dropped without
// touching the timer, so no stale delivery can decrement a stopped, paused,
// reset, or restarted timer.
package countdown
