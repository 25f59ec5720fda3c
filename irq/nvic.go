// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package irq

import (
	"sync/atomic"
	"unsafe"

	"github.com/usbarmory/tamago/bits"
)

// NVIC registers
const (
	NVIC_ISER = 0xe000e100
	NVIC_IPR  = 0xe000e400
)

// NVIC represents the Cortex-M Nested Vectored Interrupt Controller.
//
// Handlers are kept in a fixed table, the exception vector of each external
// interrupt is expected to call Service with its line number.
type NVIC struct {
	isr [NumLines]func()
}

// ISERAddress returns the set-enable register and bit for an interrupt line.
func ISERAddress(n int) (addr uint32, pos int) {
	return NVIC_ISER + uint32(n/32)*4, n % 32
}

// IPRAddress returns the priority register and bit offset for an interrupt
// line.
func IPRAddress(n int) (addr uint32, pos int) {
	return NVIC_IPR + uint32(n/4)*4, (n % 4) * 8
}

func reg(addr uint32) *uint32 {
	return (*uint32)(unsafe.Pointer(uintptr(addr)))
}

// Install implements Controller.
func (n *NVIC) Install(line int, isr func()) {
	n.isr[line] = isr
}

// SetPriority implements Controller.
func (n *NVIC) SetPriority(line int, prio uint8) {
	addr, pos := IPRAddress(line)

	ipr := atomic.LoadUint32(reg(addr))
	bits.SetN(&ipr, pos, 0xff, uint32(Encode(prio)))
	atomic.StoreUint32(reg(addr), ipr)
}

// Unmask implements Controller.
func (n *NVIC) Unmask(line int) {
	addr, pos := ISERAddress(line)
	// ISER is write-one-to-set
	atomic.StoreUint32(reg(addr), 1<<pos)
}

// Service calls the handler installed for an interrupt line.
func (n *NVIC) Service(line int) {
	if isr := n.isr[line]; isr != nil {
		isr()
	}
}
