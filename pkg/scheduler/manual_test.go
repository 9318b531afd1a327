package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualNothingRunsUntilTicked(t *testing.T) {
	m := NewManual()
	calls := 0
	h := m.RegisterPeriodic(func() { calls++ }, time.Second)

	require.NotZero(t, h)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, m.Live())
	assert.Equal(t, time.Second, m.Period(h))
}

func TestManualTickInvokesLiveRegistrationsInOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.RegisterPeriodic(func() { order = append(order, "a") }, time.Second)
	h := m.RegisterPeriodic(func() { order = append(order, "b") }, time.Second)
	m.RegisterPeriodic(func() { order = append(order, "c") }, time.Second)

	assert.Equal(t, 3, m.Tick())
	assert.Equal(t, []string{"a", "b", "c"}, order)

	m.CancelPeriodic(h)
	order = nil
	assert.Equal(t, 2, m.Tick())
	assert.Equal(t, []string{"a", "c"}, order)
}

func TestManualCancelIsIdempotent(t *testing.T) {
	m := NewManual()
	h := m.RegisterPeriodic(func() {}, time.Second)

	m.CancelPeriodic(h)
	m.CancelPeriodic(h)
	m.CancelPeriodic(0)
	m.CancelPeriodic(Handle(999))

	assert.Equal(t, 0, m.Live())
	assert.Equal(t, 1, m.Registered())
	assert.Equal(t, 0, m.Tick())
}

func TestManualCallbackMayCancelItself(t *testing.T) {
	m := NewManual()
	calls := 0
	var h Handle
	h = m.RegisterPeriodic(func() {
		calls++
		m.CancelPeriodic(h)
	}, time.Second)

	m.Tick()
	m.Tick()
	assert.Equal(t, 1, calls)
}

func TestManualCallbackCancellingLaterRegistration(t *testing.T) {
	m := NewManual()
	var second Handle
	secondCalls := 0
	m.RegisterPeriodic(func() { m.CancelPeriodic(second) }, time.Second)
	second = m.RegisterPeriodic(func() { secondCalls++ }, time.Second)

	assert.Equal(t, 1, m.Tick())
	assert.Equal(t, 0, secondCalls)
}

func TestManualCallbackMayRegister(t *testing.T) {
	m := NewManual()
	var inner int
	m.RegisterPeriodic(func() {
		m.RegisterPeriodic(func() { inner++ }, time.Second)
	}, time.Second)

	m.Tick()
	assert.Equal(t, 0, inner, "registration made during a tick is not invoked by that tick")
	assert.Equal(t, 2, m.Live())

	m.Tick()
	assert.Equal(t, 1, inner)
}

func TestManualAdvance(t *testing.T) {
	tests := []struct {
		name   string
		steps  []time.Duration
		period time.Duration
		want   int
	}{
		{"LessThanPeriod", []time.Duration{500 * time.Millisecond}, time.Second, 0},
		{"ExactPeriod", []time.Duration{time.Second}, time.Second, 1},
		{"SeveralPeriods", []time.Duration{3500 * time.Millisecond}, time.Second, 3},
		{"RemainderCarries", []time.Duration{700 * time.Millisecond, 700 * time.Millisecond}, time.Second, 1},
		{"ShortPeriod", []time.Duration{time.Second}, 250 * time.Millisecond, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManual()
			calls := 0
			m.RegisterPeriodic(func() { calls++ }, tt.period)

			for _, d := range tt.steps {
				m.Advance(d)
			}
			assert.Equal(t, tt.want, calls)
		})
	}
}

func TestManualAdvanceStopsWhenCancelledMidway(t *testing.T) {
	m := NewManual()
	calls := 0
	var h Handle
	h = m.RegisterPeriodic(func() {
		calls++
		if calls == 2 {
			m.CancelPeriodic(h)
		}
	}, time.Second)

	assert.Equal(t, 2, m.Advance(10*time.Second))
	assert.Equal(t, 2, calls)
}

func TestManualFireDeliversToCancelledRegistration(t *testing.T) {
	m := NewManual()
	calls := 0
	h := m.RegisterPeriodic(func() { calls++ }, time.Second)
	m.CancelPeriodic(h)

	assert.True(t, m.Fire(h))
	assert.Equal(t, 1, calls)
	assert.False(t, m.Fire(Handle(42)))
}

func TestManualLastHandle(t *testing.T) {
	m := NewManual()
	assert.Equal(t, Handle(0), m.LastHandle())

	h1 := m.RegisterPeriodic(func() {}, time.Second)
	h2 := m.RegisterPeriodic(func() {}, time.Second)

	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h2, m.LastHandle())
}
