// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mem

import (
	"fmt"
)

// Layout describes the memory and peripherals which must be granted to the
// Non-secure domain.
type Layout struct {
	// RAMStart is the base address of SPU RAM region 0
	RAMStart uint32
	// RegionSize is the SPU RAM region size
	RegionSize uint32
	// SharedStart is the first shared RAM address
	SharedStart uint32
	// SharedEnd is the first address past the shared RAM extent
	SharedEnd uint32
	// Peripherals lists the peripheral IDs to grant
	Peripherals []int
}

// Default returns the modem layout defined by this package constants.
func Default() Layout {
	return Layout{
		RAMStart:    RAMStart,
		RegionSize:  RegionSize,
		SharedStart: SharedStart,
		SharedEnd:   SharedEnd,
		Peripherals: append([]int(nil), Peripherals...),
	}
}

// Regions returns the inclusive range of RAM region indices overlapping the
// shared extent, an empty extent returns last < first.
func (l Layout) Regions() (first int, last int) {
	if l.RegionSize == 0 || l.SharedEnd <= l.SharedStart || l.SharedStart < l.RAMStart {
		return 0, -1
	}

	first = int((l.SharedStart - l.RAMStart) / l.RegionSize)
	last = int((l.SharedEnd - 1 - l.RAMStart) / l.RegionSize)

	return
}

// RegionAddress returns the start address of a RAM region.
func (l Layout) RegionAddress(n int) uint32 {
	return l.RAMStart + uint32(n)*l.RegionSize
}

func (l Layout) String() string {
	first, last := l.Regions()
	return fmt.Sprintf("ram:%#.8x-%#.8x regions:%d-%d periph:%v", l.SharedStart, l.SharedEnd, first, last, l.Peripherals)
}
