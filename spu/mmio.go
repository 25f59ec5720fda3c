// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package spu

import (
	"sync/atomic"
	"unsafe"
)

// MMIO represents the memory mapped SPU instance.
type MMIO struct {
	// Base register
	Base uint32
}

// Address returns the address of register n in bank t.
func (m *MMIO) Address(t Target, n int) uint32 {
	switch t {
	case RAMRegion:
		return m.Base + SPU_RAMREGION_PERM + uint32(n)*4
	case Peripheral:
		return m.Base + SPU_PERIPHID_PERM + uint32(n)*4
	}

	panic("invalid SPU register bank")
}

// Read implements Registers.
func (m *MMIO) Read(t Target, n int) uint32 {
	reg := (*uint32)(unsafe.Pointer(uintptr(m.Address(t, n))))
	return atomic.LoadUint32(reg)
}

// Write implements Registers.
func (m *MMIO) Write(t Target, n int, val uint32) {
	reg := (*uint32)(unsafe.Pointer(uintptr(m.Address(t, n))))
	atomic.StoreUint32(reg, val)
}
