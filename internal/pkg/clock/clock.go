package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// After waits for d on this clock. Non-positive durations fire immediately.
	After(d time.Duration) <-chan time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

type waiter struct {
	deadline time.Time
	ch       chan time.Time
}

// MockClock only moves when Set or Add is called. Pending After channels fire
// once the clock reaches their deadline.
type MockClock struct {
	mu          sync.Mutex
	cond        *sync.Cond
	currentTime time.Time
	waiters     []waiter
}

func NewMockClock(t time.Time) *MockClock {
	c := &MockClock{currentTime: t}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.currentTime
		return ch
	}
	c.waiters = append(c.waiters, waiter{deadline: c.currentTime.Add(d), ch: ch})
	c.cond.Broadcast()
	return ch
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
	c.fireLocked()
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
	c.fireLocked()
}

// BlockUntil returns once at least n After calls are pending.
func (c *MockClock) BlockUntil(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.waiters) < n {
		c.cond.Wait()
	}
}

func (c *MockClock) fireLocked() {
	pending := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.deadline.After(c.currentTime) {
			w.ch <- c.currentTime
			continue
		}
		pending = append(pending, w)
	}
	c.waiters = pending
}
