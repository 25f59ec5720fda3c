// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package irq binds the modem IPC interrupt line to the modem driver
// forwarding entry point.
package irq

import (
	"errors"
	"fmt"
	"sync"

	"github.com/usbarmory/tamago/bits"

	"github.com/usbarmory/modem-bringup/mem"
	"github.com/usbarmory/modem-bringup/spu"
)

// NumLines is the number of external interrupt lines.
const NumLines = 65

var (
	ErrArmed      = errors.New("interrupt already armed")
	ErrHandler    = errors.New("missing interrupt handler")
	ErrLine       = errors.New("invalid interrupt line")
	ErrNotGranted = errors.New("handler peripheral is not Non-secure")
	ErrPriority   = errors.New("invalid interrupt priority")
)

// Controller represents an interrupt controller.
type Controller interface {
	// Install sets the handler for an interrupt line.
	Install(line int, isr func())
	// SetPriority sets the priority of an interrupt line (lower values
	// pre-empt higher ones).
	SetPriority(line int, prio uint8)
	// Unmask enables delivery of an interrupt line.
	Unmask(line int)
}

// Bridge represents the binding of one interrupt line to one handler.
type Bridge struct {
	sync.Mutex

	// Line is the interrupt line
	Line int
	// Priority is the interrupt priority
	Priority uint8
	// Peripheral is the SPU peripheral ID accessed by the handler callee
	Peripheral int

	armed bool
}

// IPC returns the bridge for the modem IPC interrupt.
func IPC() *Bridge {
	return &Bridge{
		Line:       mem.IPCIRQ,
		Priority:   mem.IPCPriority,
		Peripheral: mem.PeriphIPC,
	}
}

// Arm installs the handler, sets its priority and unmasks the line, in this
// order. The receipt must cover the handler peripheral, the handler must be
// non-blocking as it runs in interrupt context.
func (b *Bridge) Arm(ctl Controller, grants *spu.Receipt, isr func()) (err error) {
	b.Lock()
	defer b.Unlock()

	switch {
	case b.armed:
		return ErrArmed
	case isr == nil:
		return ErrHandler
	case b.Line < 0 || b.Line >= NumLines:
		return fmt.Errorf("%w (%d)", ErrLine, b.Line)
	case b.Priority >= 1<<mem.PriorityBits:
		return fmt.Errorf("%w (%d), %d bits implemented", ErrPriority, b.Priority, mem.PriorityBits)
	case b.Priority < mem.SchedulerPriority:
		return fmt.Errorf("%w (%d), would pre-empt scheduler (%d)", ErrPriority, b.Priority, mem.SchedulerPriority)
	case !grants.Covers(spu.Peripheral, b.Peripheral):
		return fmt.Errorf("%w (%d)", ErrNotGranted, b.Peripheral)
	}

	ctl.Install(b.Line, isr)
	ctl.SetPriority(b.Line, b.Priority)
	ctl.Unmask(b.Line)

	b.armed = true

	return
}

// Armed returns whether the line has been unmasked.
func (b *Bridge) Armed() bool {
	b.Lock()
	defer b.Unlock()

	return b.armed
}

// Encode returns the NVIC priority register value for a priority level.
func Encode(prio uint8) uint8 {
	var ipr uint32
	bits.SetN(&ipr, 8-mem.PriorityBits, 1<<mem.PriorityBits-1, uint32(prio))

	return uint8(ipr)
}
