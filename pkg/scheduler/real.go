package scheduler

import (
	"sync"
	"time"
)

// Real is a Scheduler backed by time.Ticker. Each registration runs on its own
// goroutine, and invocations for one registration never overlap.
// It is safe for concurrent use.
type Real struct {
	mu     sync.Mutex
	nextID Handle
	stops  map[Handle]chan struct{}
	wg     sync.WaitGroup
}

// NewReal creates a Real scheduler.
func NewReal() *Real {
	return &Real{
		stops: make(map[Handle]chan struct{}),
	}
}

// RegisterPeriodic starts a goroutine that calls callback every period.
// Panics if period <= 0, as time.NewTicker does.
func (r *Real) RegisterPeriodic(callback func(), period time.Duration) Handle {
	ticker := time.NewTicker(period)
	stop := make(chan struct{})

	r.mu.Lock()
	r.nextID++
	h := r.nextID
	r.stops[h] = stop
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Both channels can be ready at once; cancellation wins.
				select {
				case <-stop:
					return
				default:
				}
				callback()
			}
		}
	}()

	return h
}

// CancelPeriodic stops the registration's goroutine. It does not wait for an
// in-flight callback, so it may be called from inside the callback itself.
func (r *Real) CancelPeriodic(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stop, ok := r.stops[h]
	if !ok {
		return
	}
	close(stop)
	delete(r.stops, h)
}

// Live returns the number of registrations that have not been cancelled.
func (r *Real) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stops)
}

// Close cancels every live registration and waits for their goroutines to exit.
// Must not be called from inside a callback.
func (r *Real) Close() {
	r.mu.Lock()
	for h, stop := range r.stops {
		close(stop)
		delete(r.stops, h)
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Compile-time interface satisfaction check.
var _ Scheduler = (*Real)(nil)
