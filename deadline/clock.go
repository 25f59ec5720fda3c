// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package deadline

import (
	"sort"
	"sync"
	"time"
)

// Clock represents the timer interface used by Guard.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// After returns a channel receiving the time once d elapses.
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// System is the wall clock.
var System Clock = systemClock{}

type waiter struct {
	at time.Time
	ch chan time.Time
}

// ManualClock is a Clock which only advances when told to.
type ManualClock struct {
	sync.Mutex

	now     time.Time
	waiters []waiter
}

// NewManualClock returns a ManualClock set to the argument time.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()

	return c.now
}

// After implements Clock, non-positive durations fire immediately.
func (c *ManualClock) After(d time.Duration) <-chan time.Time {
	c.Lock()
	defer c.Unlock()

	ch := make(chan time.Time, 1)

	if d <= 0 {
		ch <- c.now
		return ch
	}

	c.waiters = append(c.waiters, waiter{at: c.now.Add(d), ch: ch})

	return ch
}

// Waiters returns the number of pending timers.
func (c *ManualClock) Waiters() int {
	c.Lock()
	defer c.Unlock()

	return len(c.waiters)
}

// Advance moves the clock forward, firing the timers which are due.
func (c *ManualClock) Advance(d time.Duration) {
	c.Lock()
	defer c.Unlock()

	c.now = c.now.Add(d)

	sort.SliceStable(c.waiters, func(i, j int) bool {
		return c.waiters[i].at.Before(c.waiters[j].at)
	})

	var pending []waiter

	for _, w := range c.waiters {
		if w.at.After(c.now) {
			pending = append(pending, w)
			continue
		}

		w.ch <- c.now
	}

	c.waiters = pending
}
