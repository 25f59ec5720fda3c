// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package spu implements the System Protection Unit domain grants required
// to hand RAM regions and peripherals over to the Non-secure modem library.
//
// The grants are computed by Plan, a pure function of the memory layout, and
// written once by a Configurator on any Registers implementation (the
// memory mapped SPU or an emulated register file).
package spu

import (
	"strings"

	"github.com/usbarmory/tamago/bits"
)

// SPU registers
const (
	SPU_BASE = 0x50003000

	SPU_RAMREGION_PERM = 0x700
	SPU_PERIPHID_PERM  = 0x800

	NumRAMRegions  = 32
	NumPeripherals = 67
)

// RAMREGION[n].PERM bits
const (
	RAM_EXECUTE = 0
	RAM_WRITE   = 1
	RAM_READ    = 2
	RAM_SECATTR = 4
	RAM_LOCK    = 8
)

// PERIPHID[n].PERM bits
const (
	PERIPH_SECUREMAPPING = 0
	PERIPH_DMA           = 2
	PERIPH_SECATTR       = 4
	PERIPH_DMASEC        = 5
	PERIPH_LOCK          = 8
	PERIPH_PRESENT       = 31
)

// PERIPHID[n].PERM SECUREMAPPING values
const (
	MAPPING_NONSECURE = iota
	MAPPING_SECURE
	MAPPING_USER_SELECTABLE
	MAPPING_SPLIT
)

// Target selects a permission register bank.
type Target int

const (
	// RAMRegion selects RAMREGION[n].PERM
	RAMRegion Target = iota
	// Peripheral selects PERIPHID[n].PERM
	Peripheral
)

func (t Target) String() string {
	switch t {
	case RAMRegion:
		return "ram"
	case Peripheral:
		return "periph"
	default:
		return "invalid"
	}
}

// Count returns the number of registers in the bank.
func (t Target) Count() int {
	switch t {
	case RAMRegion:
		return NumRAMRegions
	case Peripheral:
		return NumPeripherals
	default:
		return 0
	}
}

func (t Target) secattr() int {
	if t == RAMRegion {
		return RAM_SECATTR
	}

	return PERIPH_SECATTR
}

func (t Target) lock() int {
	if t == RAMRegion {
		return RAM_LOCK
	}

	return PERIPH_LOCK
}

// Registers represents access to the SPU permission registers.
type Registers interface {
	// Read returns the permission word of register n in bank t.
	Read(t Target, n int) uint32
	// Write sets the permission word of register n in bank t.
	Write(t Target, n int, val uint32)
}

// RAMPerm returns a RAMREGION[n].PERM word.
func RAMPerm(execute, write, read, secure, lock bool) (perm uint32) {
	set := func(pos int, on bool) {
		if on {
			bits.Set(&perm, pos)
		} else {
			bits.Clear(&perm, pos)
		}
	}

	set(RAM_EXECUTE, execute)
	set(RAM_WRITE, write)
	set(RAM_READ, read)
	set(RAM_SECATTR, secure)
	set(RAM_LOCK, lock)

	return
}

// Secure returns whether a permission word marks its target as Secure.
func Secure(t Target, perm uint32) bool {
	return bits.Get(&perm, t.secattr(), 1) == 1
}

// Locked returns whether a permission word is locked until the next reset.
func Locked(t Target, perm uint32) bool {
	return bits.Get(&perm, t.lock(), 1) == 1
}

// Describe returns a compact representation of a permission word.
func Describe(t Target, perm uint32) string {
	var s []string

	flag := func(pos int, on string, off string) {
		if bits.Get(&perm, pos, 1) == 1 {
			s = append(s, on)
		} else {
			s = append(s, off)
		}
	}

	switch t {
	case RAMRegion:
		flag(RAM_READ, "r", "-")
		flag(RAM_WRITE, "w", "-")
		flag(RAM_EXECUTE, "x", "-")
	case Peripheral:
		flag(PERIPH_PRESENT, "present", "absent")

		switch bits.Get(&perm, PERIPH_SECUREMAPPING, 0b11) {
		case MAPPING_NONSECURE:
			s = append(s, "ns-only")
		case MAPPING_SECURE:
			s = append(s, "s-only")
		case MAPPING_USER_SELECTABLE:
			s = append(s, "selectable")
		case MAPPING_SPLIT:
			s = append(s, "split")
		}
	}

	if Secure(t, perm) {
		s = append(s, "secure")
	} else {
		s = append(s, "nonsecure")
	}

	if Locked(t, perm) {
		s = append(s, "locked")
	}

	return strings.Join(s, " ")
}
