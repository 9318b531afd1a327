package scheduler

import (
	"sync"
	"time"
)

// Manual is a deterministic Scheduler. Nothing runs until the owner calls
// Tick, Advance, or Fire, and callbacks run on the caller's goroutine.
//
// Callbacks are invoked without the scheduler's lock held, so a callback may
// register or cancel registrations (including its own).
type Manual struct {
	mu     sync.Mutex
	nextID Handle
	regs   []*registration
	byID   map[Handle]*registration
}

type registration struct {
	handle    Handle
	callback  func()
	period    time.Duration
	elapsed   time.Duration
	cancelled bool
}

// NewManual creates a Manual scheduler with no registrations.
func NewManual() *Manual {
	return &Manual{
		byID: make(map[Handle]*registration),
	}
}

// RegisterPeriodic records callback. It is never invoked until the owner
// delivers ticks.
func (m *Manual) RegisterPeriodic(callback func(), period time.Duration) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	reg := &registration{
		handle:   m.nextID,
		callback: callback,
		period:   period,
	}
	m.regs = append(m.regs, reg)
	m.byID[reg.handle] = reg
	return reg.handle
}

// CancelPeriodic marks the registration cancelled. Tick and Advance skip it
// from then on.
func (m *Manual) CancelPeriodic(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reg, ok := m.byID[h]; ok {
		reg.cancelled = true
	}
}

// Tick invokes every live registration once, in registration order, and
// returns the number of callbacks invoked. A registration cancelled by an
// earlier callback in the same Tick is skipped.
func (m *Manual) Tick() int {
	invoked := 0
	for _, reg := range m.liveSnapshot() {
		if m.invokeIfLive(reg) {
			invoked++
		}
	}
	return invoked
}

// Advance moves time forward by d. Each live registration is invoked once per
// whole period that elapsed for it; remainders carry over to the next call.
// Returns the number of callbacks invoked.
func (m *Manual) Advance(d time.Duration) int {
	type due struct {
		reg *registration
		n   int
	}

	m.mu.Lock()
	var pending []due
	for _, reg := range m.regs {
		if reg.cancelled || reg.period <= 0 {
			continue
		}
		reg.elapsed += d
		n := int(reg.elapsed / reg.period)
		reg.elapsed %= reg.period
		if n > 0 {
			pending = append(pending, due{reg: reg, n: n})
		}
	}
	m.mu.Unlock()

	invoked := 0
	for _, p := range pending {
		for i := 0; i < p.n; i++ {
			if !m.invokeIfLive(p.reg) {
				break
			}
			invoked++
		}
	}
	return invoked
}

// Fire invokes the callback registered under h even if the registration was
// cancelled, simulating a delivery that raced with cancellation.
// Returns false if h was never registered.
func (m *Manual) Fire(h Handle) bool {
	m.mu.Lock()
	reg, ok := m.byID[h]
	m.mu.Unlock()

	if !ok {
		return false
	}
	reg.callback()
	return true
}

// Live returns the number of registrations that have not been cancelled.
func (m *Manual) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, reg := range m.regs {
		if !reg.cancelled {
			n++
		}
	}
	return n
}

// Registered returns the total number of registrations ever made.
func (m *Manual) Registered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regs)
}

// LastHandle returns the most recently issued handle, or 0 if none.
func (m *Manual) LastHandle() Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextID
}

// Period returns the period h was registered with, or 0 if unknown.
func (m *Manual) Period(h Handle) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reg, ok := m.byID[h]; ok {
		return reg.period
	}
	return 0
}

func (m *Manual) liveSnapshot() []*registration {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := make([]*registration, 0, len(m.regs))
	for _, reg := range m.regs {
		if !reg.cancelled {
			live = append(live, reg)
		}
	}
	return live
}

func (m *Manual) invokeIfLive(reg *registration) bool {
	m.mu.Lock()
	cancelled := reg.cancelled
	m.mu.Unlock()

	if cancelled {
		return false
	}
	reg.callback()
	return true
}

// Compile-time interface satisfaction check.
var _ Scheduler = (*Manual)(nil)
