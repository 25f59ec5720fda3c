// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package irq

import (
	"sync"
)

type line struct {
	isr      func()
	priority uint8
	enabled  bool
	pending  bool
	count    int
}

// LineState represents the state of an emulated interrupt line.
type LineState struct {
	Installed bool
	Enabled   bool
	Pending   bool
	Priority  uint8
	// Count is the number of serviced interrupts
	Count int
}

// Emulator is an emulated interrupt controller, handlers are serviced on a
// dedicated goroutine which stands for the interrupt context.
//
// A line raised while masked stays pending until unmasked, pending lines are
// serviced in priority order.
type Emulator struct {
	sync.Mutex

	lines [NumLines]line

	kick chan struct{}
	done chan struct{}
	once sync.Once
}

// NewEmulator returns a running emulated interrupt controller.
func NewEmulator() (e *Emulator) {
	e = &Emulator{
		kick: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	go e.service()

	return
}

func (e *Emulator) signal() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

func (e *Emulator) service() {
	for {
		select {
		case <-e.kick:
			e.dispatch()
		case <-e.done:
			return
		}
	}
}

func (e *Emulator) next() (isr func()) {
	e.Lock()
	defer e.Unlock()

	var l *line

	for i := range e.lines {
		c := &e.lines[i]

		if !c.enabled || !c.pending || c.isr == nil {
			continue
		}

		if l == nil || c.priority < l.priority {
			l = c
		}
	}

	if l == nil {
		return nil
	}

	l.pending = false
	l.count++

	return l.isr
}

func (e *Emulator) dispatch() {
	for isr := e.next(); isr != nil; isr = e.next() {
		isr()
	}
}

// Install implements Controller.
func (e *Emulator) Install(n int, isr func()) {
	e.Lock()
	defer e.Unlock()

	if n >= 0 && n < NumLines {
		e.lines[n].isr = isr
	}
}

// SetPriority implements Controller.
func (e *Emulator) SetPriority(n int, prio uint8) {
	e.Lock()
	defer e.Unlock()

	if n >= 0 && n < NumLines {
		e.lines[n].priority = prio
	}
}

// Unmask implements Controller.
func (e *Emulator) Unmask(n int) {
	e.Lock()

	if n >= 0 && n < NumLines {
		e.lines[n].enabled = true
	}

	e.Unlock()
	e.signal()
}

// Raise sets an interrupt line as pending.
func (e *Emulator) Raise(n int) {
	e.Lock()

	if n >= 0 && n < NumLines {
		e.lines[n].pending = true
	}

	e.Unlock()
	e.signal()
}

// State returns the state of an interrupt line.
func (e *Emulator) State(n int) (s LineState) {
	e.Lock()
	defer e.Unlock()

	if n < 0 || n >= NumLines {
		return
	}

	l := e.lines[n]

	return LineState{
		Installed: l.isr != nil,
		Enabled:   l.enabled,
		Pending:   l.pending,
		Priority:  l.priority,
		Count:     l.count,
	}
}

// Close stops servicing interrupts.
func (e *Emulator) Close() {
	e.once.Do(func() {
		close(e.done)
	})
}
