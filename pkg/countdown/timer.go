package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/countdown/countdown-go/pkg/log"
	"github.com/countdown/countdown-go/pkg/scheduler"
)

// TickPeriod is the interval between countdown ticks.
const TickPeriod = time.Second

// ErrInvalidArgument is returned by Start for a non-positive duration.
var ErrInvalidArgument = errors.New("invalid argument")

// State represents the timer's run state.
type State uint8

const (
	// StateIdle indicates the timer is not counting.
	StateIdle State = iota

	// StateRunning indicates the timer is counting down.
	StateRunning

	// StatePaused indicates counting is suspended with remaining time preserved.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// State change reasons recorded in diagnostic events.
const (
	reasonStart    = "start"
	reasonRestart  = "restart"
	reasonStop     = "stop"
	reasonReset    = "reset"
	reasonPause    = "pause"
	reasonResume   = "resume"
	reasonComplete = "complete"
)

// Config holds timer configuration. Zero fields take defaults.
type Config struct {
	// ID identifies the timer in diagnostic events. Defaults to a random UUID.
	ID string

	// Scheduler delivers ticks. Defaults to a new scheduler.Real.
	Scheduler scheduler.Scheduler

	// Logger receives diagnostic events. Defaults to log.NoopLogger.
	Logger log.Logger
}

// Timer is a countdown timer. It is safe for concurrent use.
type Timer struct {
	mu sync.Mutex

	id     string
	sched  scheduler.Scheduler
	logger log.Logger

	// Configured duration and remaining time, in seconds
	duration  int
	remaining int

	state State

	// Live tick registration; zero unless state is StateRunning
	handle scheduler.Handle

	// Generation of the live registration; ticks from older ones are stale
	gen uint64
}

// NewTimer creates an idle timer driven by a real scheduler.
func NewTimer() *Timer {
	return NewTimerWithConfig(Config{})
}

// NewTimerWithConfig creates an idle timer with custom configuration.
func NewTimerWithConfig(cfg Config) *Timer {
	t := &Timer{
		id:     cfg.ID,
		sched:  cfg.Scheduler,
		logger: cfg.Logger,
		state:  StateIdle,
	}

	if t.id == "" {
		t.id = uuid.NewString()
	}
	if t.sched == nil {
		t.sched = scheduler.NewReal()
	}
	if t.logger == nil {
		t.logger = log.NoopLogger{}
	}

	return t
}

// ID returns the timer's identifier.
func (t *Timer) ID() string {
	return t.id
}

// Start begins counting down from duration seconds, restarting from any state.
// Returns ErrInvalidArgument if duration <= 0, leaving the timer unchanged.
func (t *Timer) Start(duration int) error {
	if duration <= 0 {
		err := fmt.Errorf("%w: duration must be a positive number, got %d", ErrInvalidArgument, duration)
		t.emit(
			t.controlEvent(log.OpStart, duration, false),
			log.Event{
				Category: log.CategoryError,
				Error:    &log.ErrorEventData{Message: err.Error(), Context: "start"},
			},
		)
		return err
	}

	t.mu.Lock()

	oldState := t.state
	t.cancelTick()
	t.duration = duration
	t.remaining = duration
	t.registerTick()

	reason := reasonStart
	if oldState != StateIdle {
		reason = reasonRestart
	}
	events := []log.Event{
		t.controlEvent(log.OpStart, duration, false),
		t.transition(oldState, StateRunning, reason),
	}

	t.mu.Unlock()
	t.emit(events...)
	return nil
}

// Stop halts counting and keeps the remaining time. Valid in any state.
func (t *Timer) Stop() {
	t.mu.Lock()

	oldState := t.state
	t.stopLocked()

	events := []log.Event{t.controlEvent(log.OpStop, 0, oldState == StateIdle)}
	if oldState != StateIdle {
		events = append(events, t.stateEvent(oldState, StateIdle, reasonStop))
	}

	t.mu.Unlock()
	t.emit(events...)
}

// Reset stops the timer and restores the remaining time to the configured
// duration. Valid in any state.
func (t *Timer) Reset() {
	t.mu.Lock()

	oldState := t.state
	t.stopLocked()
	t.remaining = t.duration

	events := []log.Event{
		t.controlEvent(log.OpReset, 0, false),
		t.stateEvent(oldState, StateIdle, reasonReset),
	}

	t.mu.Unlock()
	t.emit(events...)
}

// Pause suspends counting, preserving the remaining time.
// No-op unless the timer is running.
func (t *Timer) Pause() {
	t.mu.Lock()

	if t.state != StateRunning {
		events := []log.Event{t.controlEvent(log.OpPause, 0, true)}
		t.mu.Unlock()
		t.emit(events...)
		return
	}

	t.cancelTick()
	events := []log.Event{
		t.controlEvent(log.OpPause, 0, false),
		t.transition(StateRunning, StatePaused, reasonPause),
	}

	t.mu.Unlock()
	t.emit(events...)
}

// Resume continues counting from the preserved remaining time.
// No-op unless the timer is paused.
func (t *Timer) Resume() {
	t.mu.Lock()

	if t.state != StatePaused {
		events := []log.Event{t.controlEvent(log.OpResume, 0, true)}
		t.mu.Unlock()
		t.emit(events...)
		return
	}

	t.registerTick()
	events := []log.Event{
		t.controlEvent(log.OpResume, 0, false),
		t.transition(StatePaused, StateRunning, reasonResume),
	}

	t.mu.Unlock()
	t.emit(events...)
}

// RemainingTime returns the remaining time in seconds.
func (t *Timer) RemainingTime() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Duration returns the duration in seconds passed to the last successful Start.
func (t *Timer) Duration() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// State returns the current run state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsTimerRunning returns true if the timer is counting down.
func (t *Timer) IsTimerRunning() bool {
	return t.State() == StateRunning
}

// IsPaused returns true if the timer is paused.
func (t *Timer) IsPaused() bool {
	return t.State() == StatePaused
}

// tick handles one scheduler delivery for the registration of generation gen.
func (t *Timer) tick(gen uint64) {
	t.mu.Lock()

	if t.state != StateRunning || t.gen != gen {
		events := []log.Event{t.tickEvent(true)}
		t.mu.Unlock()
		t.emit(events...)
		return
	}

	if t.remaining > 0 {
		t.remaining--
	}
	events := []log.Event{t.tickEvent(false)}

	if t.remaining == 0 {
		t.stopLocked()
		events = append(events, t.stateEvent(StateRunning, StateIdle, reasonComplete))
	}

	t.mu.Unlock()
	t.emit(events...)
}

// registerTick creates the single live registration and enters StateRunning.
// Caller must hold t.mu and must have cancelled any previous registration.
func (t *Timer) registerTick() {
	t.gen++
	gen := t.gen
	t.handle = t.sched.RegisterPeriodic(func() { t.tick(gen) }, TickPeriod)
	t.state = StateRunning
}

// cancelTick releases the live registration, if any.
// Caller must hold t.mu.
func (t *Timer) cancelTick() {
	if t.handle != 0 {
		t.sched.CancelPeriodic(t.handle)
		t.handle = 0
	}
}

// stopLocked cancels ticking and enters StateIdle. Caller must hold t.mu.
func (t *Timer) stopLocked() {
	t.cancelTick()
	t.state = StateIdle
}

// transition records a state change that the caller has already applied.
func (t *Timer) transition(from, to State, reason string) log.Event {
	t.state = to
	return t.stateEvent(from, to, reason)
}

func (t *Timer) controlEvent(op log.Operation, duration int, ignored bool) log.Event {
	return log.Event{
		Category: log.CategoryControl,
		Control:  &log.ControlEvent{Op: op, Duration: duration, Ignored: ignored},
	}
}

func (t *Timer) stateEvent(from, to State, reason string) log.Event {
	return log.Event{
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState:  from.String(),
			NewState:  to.String(),
			Reason:    reason,
			Remaining: t.remaining,
		},
	}
}

func (t *Timer) tickEvent(stale bool) log.Event {
	return log.Event{
		Category: log.CategoryTick,
		Tick:     &log.TickEvent{Remaining: t.remaining, Stale: stale},
	}
}

// emit stamps and forwards events. Must be called without t.mu held.
func (t *Timer) emit(events ...log.Event) {
	now := time.Now()
	for _, e := range events {
		e.Timestamp = now
		e.TimerID = t.id
		t.logger.Log(e)
	}
}
