// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package spu

import (
	"sync"

	"github.com/usbarmory/tamago/bits"
)

// RegFile is an emulated SPU register file, writes to locked registers are
// ignored as on hardware.
type RegFile struct {
	sync.Mutex

	ram    [NumRAMRegions]uint32
	periph [NumPeripherals]uint32

	writes int
}

// NewRegFile returns a register file set to reset values: every RAM region
// and peripheral is Secure.
func NewRegFile() (r *RegFile) {
	r = &RegFile{}
	r.Reset()

	return
}

// Reset restores reset values.
func (r *RegFile) Reset() {
	r.Lock()
	defer r.Unlock()

	for i := range r.ram {
		r.ram[i] = RAMPerm(true, true, true, true, false)
	}

	for i := range r.periph {
		var perm uint32

		bits.Set(&perm, PERIPH_PRESENT)
		bits.Set(&perm, PERIPH_SECATTR)
		bits.SetN(&perm, PERIPH_SECUREMAPPING, 0b11, MAPPING_USER_SELECTABLE)
		bits.SetN(&perm, PERIPH_DMA, 0b11, 1)

		r.periph[i] = perm
	}

	r.writes = 0
}

func (r *RegFile) reg(t Target, n int) *uint32 {
	switch {
	case t == RAMRegion && n >= 0 && n < len(r.ram):
		return &r.ram[n]
	case t == Peripheral && n >= 0 && n < len(r.periph):
		return &r.periph[n]
	default:
		return nil
	}
}

// Read implements Registers, invalid registers read as zero.
func (r *RegFile) Read(t Target, n int) uint32 {
	r.Lock()
	defer r.Unlock()

	if reg := r.reg(t, n); reg != nil {
		return *reg
	}

	return 0
}

// Write implements Registers.
func (r *RegFile) Write(t Target, n int, val uint32) {
	r.Lock()
	defer r.Unlock()

	reg := r.reg(t, n)

	if reg == nil || Locked(t, *reg) {
		return
	}

	// PRESENT and SECUREMAPPING are read-only
	if t == Peripheral {
		val = (val &^ (1<<PERIPH_PRESENT | 0b11<<PERIPH_SECUREMAPPING)) |
			(*reg & (1<<PERIPH_PRESENT | 0b11<<PERIPH_SECUREMAPPING))
	}

	*reg = val
	r.writes++
}

// Writes returns the number of effective register writes since reset.
func (r *RegFile) Writes() int {
	r.Lock()
	defer r.Unlock()

	return r.writes
}
