// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bringup implements the startup routine: domain grants, interrupt
// arming and the probe sequence, in this order.
package bringup

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/irq"
	"github.com/usbarmory/modem-bringup/mem"
	"github.com/usbarmory/modem-bringup/modem"
	"github.com/usbarmory/modem-bringup/probe"
	"github.com/usbarmory/modem-bringup/spu"
)

// Hardware represents the register interfaces touched by the bring-up.
type Hardware struct {
	// SPU is the security domain register interface
	SPU spu.Registers
	// NVIC is the interrupt controller
	NVIC irq.Controller
	// Layout is the shared memory and peripheral layout
	Layout mem.Layout
}

// System represents a brought up system, ready to probe.
type System struct {
	Hardware

	// Driver is the modem driver
	Driver modem.Driver
	// Grants records the applied domain grants
	Grants *spu.Receipt
	// Bridge is the armed IPC interrupt binding
	Bridge *irq.Bridge
	// Sequencer drives the probe sequence
	Sequencer *probe.Sequencer

	log zerolog.Logger
}

// Boot applies the domain grants and arms the IPC interrupt on the modem
// driver forwarding entry point. Failures leave the system halted with a
// hardware fault.
func Boot(hw Hardware, drv modem.Driver, cfg probe.Config, clk deadline.Clock, log zerolog.Logger) (sys *System, err error) {
	switch {
	case hw.SPU == nil || hw.NVIC == nil:
		return nil, &probe.StageError{Stage: probe.Uninit, Err: errors.New("missing hardware interface")}
	case drv == nil:
		return nil, &probe.StageError{Stage: probe.Uninit, Err: errors.New("missing modem driver")}
	}

	sys = &System{
		Hardware: hw,
		Driver:   drv,
		Bridge:   irq.IPC(),
		log:      log,
	}

	log.Info().Str("layout", hw.Layout.String()).Msg("applying domain grants")

	c := &spu.Configurator{Registers: hw.SPU}

	if sys.Grants, err = c.Grant(hw.Layout); err != nil {
		return nil, &probe.StageError{Stage: probe.Uninit, Err: fmt.Errorf("domain grants, %w", err)}
	}

	for _, g := range sys.Grants.Grants {
		log.Debug().Str("grant", g.String()).Msg("granted")
	}

	log.Info().
		Int("line", sys.Bridge.Line).
		Uint8("priority", sys.Bridge.Priority).
		Msg("arming modem IPC interrupt")

	if err = sys.Bridge.Arm(hw.NVIC, sys.Grants, drv.IRQ); err != nil {
		return nil, &probe.StageError{Stage: probe.Uninit, Err: fmt.Errorf("interrupt bridge, %w", err)}
	}

	sys.Sequencer = probe.NewSequencer(drv, log)
	sys.Sequencer.Clock = clk
	sys.Sequencer.Config = cfg

	return
}

// Probe runs the probe sequence.
func (sys *System) Probe() (*probe.Report, error) {
	return sys.Sequencer.Run()
}

var (
	osExit = os.Exit
	exit   = osExit
)

// Halt terminates the program, with status 0 when the sequence reached Done
// and 1 on any fault.
func Halt(log zerolog.Logger, err error) {
	if err != nil {
		log.Error().
			Err(err).
			Str("outcome", probe.Classify(err).String()).
			Msg("halted with fault")

		exit(1)
		return
	}

	log.Info().Msg("halted")
	exit(0)
}
