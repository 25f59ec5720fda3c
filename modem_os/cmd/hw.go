// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/term"

	"github.com/usbarmory/tamago/bits"

	"github.com/usbarmory/modem-bringup/irq"
	"github.com/usbarmory/modem-bringup/spu"
)

func init() {
	Add(Cmd{
		Name: "spu",
		Help: "show shared RAM regions and peripherals security attributes",
		Fn:   spuCmd,
	})

	Add(Cmd{
		Name:    "spu ",
		Args:    2,
		Pattern: regexp.MustCompile(`^spu (ram|periph) (\d+)$`),
		Syntax:  "<ram|periph> <n>",
		Help:    "show SPU permission register",
		Fn:      spuCmd,
	})

	Add(Cmd{
		Name: "nvic",
		Help: "show modem IPC interrupt state",
		Fn:   nvicCmd,
	})
}

func spuCmd(_ *term.Terminal, arg []string) (res string, err error) {
	var buf bytes.Buffer

	sys, err := system()

	if err != nil {
		return
	}

	if len(arg) == 2 {
		t := spu.RAMRegion

		if arg[0] == "periph" {
			t = spu.Peripheral
		}

		n, err := strconv.Atoi(arg[1])

		if err != nil || n >= t.Count() {
			return "", fmt.Errorf("invalid %s index", t)
		}

		perm := sys.SPU.Read(t, n)

		fmt.Fprintf(&buf, "%s[%d].PERM %#.8x %s", t, n, perm, spu.Describe(t, perm))

		if t == spu.Peripheral {
			fmt.Fprintf(&buf, " dma:%d dmasec:%d",
				bits.Get(&perm, spu.PERIPH_DMA, 0b11),
				bits.Get(&perm, spu.PERIPH_DMASEC, 1),
			)
		}

		return buf.String(), nil
	}

	first, last := sys.Layout.Regions()

	for n := first; n <= last; n++ {
		perm := sys.SPU.Read(spu.RAMRegion, n)
		fmt.Fprintf(&buf, "RAMREGION%.2d %#.8x %#.8x %s\n", n, sys.Layout.RegionAddress(n), perm, spu.Describe(spu.RAMRegion, perm))
	}

	for _, id := range sys.Layout.Peripherals {
		perm := sys.SPU.Read(spu.Peripheral, id)
		fmt.Fprintf(&buf, "PERIPHID%.2d %#.8x %s\n", id, perm, spu.Describe(spu.Peripheral, perm))
	}

	return buf.String(), nil
}

func nvicCmd(_ *term.Terminal, _ []string) (res string, err error) {
	sys, err := system()

	if err != nil {
		return
	}

	ctl, ok := sys.NVIC.(interface{ State(int) irq.LineState })

	if !ok {
		return "", errors.New("unsupported interrupt controller")
	}

	b := sys.Bridge
	s := ctl.State(b.Line)

	return fmt.Sprintf("IRQ%d armed:%v installed:%v enabled:%v pending:%v priority:%d (%#.2x) serviced:%d",
		b.Line, b.Armed(), s.Installed, s.Enabled, s.Pending, s.Priority, irq.Encode(s.Priority), s.Count), nil
}
