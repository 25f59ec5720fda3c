// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package spu

import (
	"fmt"

	"github.com/usbarmory/modem-bringup/mem"
)

// Grant represents a single permission register write, only the bits
// selected by Mask are changed.
type Grant struct {
	Target Target
	Index  int

	Mask  uint32
	Value uint32
}

// Apply returns the permission word resulting from the grant.
func (g Grant) Apply(perm uint32) uint32 {
	return (perm &^ g.Mask) | (g.Value & g.Mask)
}

func (g Grant) String() string {
	return fmt.Sprintf("%s[%d] mask:%#.8x val:%#.8x", g.Target, g.Index, g.Mask, g.Value)
}

// Non-secure RWX, unlocked: the grant must stay revisable by later boot
// stages.
var (
	ramMask  = RAMPerm(true, true, true, true, true)
	ramGrant = RAMPerm(true, true, true, false, false)

	periphMask  = uint32(1 << PERIPH_SECATTR)
	periphGrant = uint32(0)
)

// Plan returns the register writes granting Non-secure access to every RAM
// region overlapping the layout shared extent and to each listed
// peripheral.
func Plan(l mem.Layout) (grants []Grant) {
	first, last := l.Regions()

	for n := first; n <= last; n++ {
		grants = append(grants, Grant{
			Target: RAMRegion,
			Index:  n,
			Mask:   ramMask,
			Value:  ramGrant,
		})
	}

	for _, id := range l.Peripherals {
		grants = append(grants, Grant{
			Target: Peripheral,
			Index:  id,
			Mask:   periphMask,
			Value:  periphGrant,
		})
	}

	return
}
