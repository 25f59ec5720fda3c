// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bringup

import (
	"fmt"

	"github.com/usbarmory/modem-bringup/config"
	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/irq"
	"github.com/usbarmory/modem-bringup/mem"
	"github.com/usbarmory/modem-bringup/modem/emul"
	"github.com/usbarmory/modem-bringup/spu"
)

// Emulation represents the emulated SoC: SPU register file, interrupt
// controller and modem coprocessor.
type Emulation struct {
	SPU   *spu.RegFile
	NVIC  *irq.Emulator
	Modem *emul.Modem
}

// NewEmulation returns a running emulated SoC.
func NewEmulation(cfg config.Emulation, clk deadline.Clock) (e *Emulation, err error) {
	var network emul.Network

	switch cfg.Network {
	case config.NetworkHost:
		network = &emul.Host{}
	case config.NetworkLoopback:
		network = emul.DefaultLoopback(cfg.Hosts, cfg.Answer)
	default:
		return nil, fmt.Errorf("invalid emulated network %q", cfg.Network)
	}

	e = &Emulation{
		SPU:  spu.NewRegFile(),
		NVIC: irq.NewEmulator(),
	}

	e.Modem = emul.NewModem(e.SPU, network, func() {
		e.NVIC.Raise(mem.IPCIRQ)
	})

	e.Modem.Clock = clk
	e.Modem.AttachDelay = cfg.AttachDelay
	e.Modem.NoAttach = !cfg.Attach

	return
}

// Hardware returns the emulated register interfaces.
func (e *Emulation) Hardware() Hardware {
	return Hardware{
		SPU:    e.SPU,
		NVIC:   e.NVIC,
		Layout: mem.Default(),
	}
}

// Close stops the emulated coprocessor and interrupt controller.
func (e *Emulation) Close() {
	e.Modem.Close()
	e.NVIC.Close()
}
