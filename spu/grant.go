// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package spu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/usbarmory/modem-bringup/mem"
)

var (
	ErrAlreadyGranted = errors.New("domain grants already applied")
	ErrIndex          = errors.New("invalid register index")
	ErrLocked         = errors.New("register is locked")
)

// Receipt records the grants applied by a Configurator, it is required to
// arm interrupts whose handlers depend on them.
type Receipt struct {
	Grants []Grant
}

// Covers returns whether register n in bank t has been granted.
func (r *Receipt) Covers(t Target, n int) bool {
	if r == nil {
		return false
	}

	for _, g := range r.Grants {
		if g.Target == t && g.Index == n {
			return true
		}
	}

	return false
}

// Configurator applies domain grants, exactly once, before any Non-secure
// code runs.
type Configurator struct {
	sync.Mutex

	// Registers is the SPU register interface
	Registers Registers

	receipt *Receipt
}

// Grant applies the grants computed by Plan for the argument layout.
//
// All grants are validated before the first register write, so that an
// invalid index or a locked register leaves the SPU untouched.
func (c *Configurator) Grant(l mem.Layout) (r *Receipt, err error) {
	c.Lock()
	defer c.Unlock()

	if c.receipt != nil {
		return nil, ErrAlreadyGranted
	}

	grants := Plan(l)

	if len(grants) == 0 {
		return nil, fmt.Errorf("empty layout (%s)", l)
	}

	for _, g := range grants {
		if err = c.check(g); err != nil {
			return
		}
	}

	for _, g := range grants {
		perm := c.Registers.Read(g.Target, g.Index)

		// locked registers already match the grant (see check)
		if Locked(g.Target, perm) {
			continue
		}

		c.Registers.Write(g.Target, g.Index, g.Apply(perm))
	}

	c.receipt = &Receipt{Grants: grants}

	return c.receipt, nil
}

// Receipt returns the applied grants, or nil if Grant did not succeed yet.
func (c *Configurator) Receipt() *Receipt {
	c.Lock()
	defer c.Unlock()

	return c.receipt
}

func (c *Configurator) check(g Grant) error {
	if g.Index < 0 || g.Index >= g.Target.Count() {
		return fmt.Errorf("%w, %s", ErrIndex, g)
	}

	perm := c.Registers.Read(g.Target, g.Index)
	lock := uint32(1) << g.Target.lock()

	if Locked(g.Target, perm) && g.Apply(perm)&^lock != perm&^lock {
		return fmt.Errorf("%w, %s perm:%#.8x", ErrLocked, g, perm)
	}

	return nil
}
