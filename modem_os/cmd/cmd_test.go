// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"io"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/usbarmory/modem-bringup/config"
	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/modem_os/internal"
	"github.com/usbarmory/modem-bringup/probe"
)

type rw struct {
	io.Reader
	io.Writer
}

func newTerm() (*term.Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	return term.NewTerminal(rw{strings.NewReader(""), &out}, ""), &out
}

func loopbackConfig() config.Config {
	cfg := config.Default()
	cfg.Emulation.Network = config.NetworkLoopback
	cfg.Emulation.AttachDelay = 0
	cfg.Emulation.Hosts = map[string]netip.Addr{"google.com": netip.MustParseAddr("93.184.216.34")}

	return cfg
}

func boot(t *testing.T) {
	bootWith(t, loopbackConfig())
}

func bootWith(t *testing.T, cfg config.Config) {
	e, err := bringup.NewEmulation(cfg.Emulation, deadline.System)
	require.NoError(t, err)

	sys, err := bringup.Boot(e.Hardware(), e.Modem, cfg.Probe, deadline.System, zerolog.Nop())
	require.NoError(t, err)

	System = sys

	t.Cleanup(func() {
		System = nil
		e.Close()
	})
}

func TestHandleUnknown(t *testing.T) {
	tm, _ := newTerm()

	assert.ErrorContains(t, Handle(tm, "reboot now"), "unknown command")
	assert.NoError(t, Handle(tm, "  "))
}

func TestHelp(t *testing.T) {
	help := Help(nil)

	for _, name := range []string{"help", "exit", "spu", "nvic", "probe", "report", "stack"} {
		assert.Contains(t, help, name)
	}

	assert.Contains(t, help, "<ram|periph> <n>")
}

func TestExit(t *testing.T) {
	tm, _ := newTerm()
	assert.Equal(t, io.EOF, Handle(tm, "exit"))
}

func TestNotBroughtUp(t *testing.T) {
	tm, _ := newTerm()

	for _, line := range []string{"spu", "nvic", "probe", "report", "stage"} {
		assert.ErrorContains(t, Handle(tm, line), "not brought up", line)
	}
}

func TestSPU(t *testing.T) {
	boot(t)
	tm, out := newTerm()

	require.NoError(t, Handle(tm, "spu"))

	s := out.String()
	assert.Contains(t, s, "RAMREGION00 0x20000000 0x00000007 r w x nonsecure")
	assert.Contains(t, s, "RAMREGION03 0x20006000 0x00000007 r w x nonsecure")
	assert.NotContains(t, s, "RAMREGION04")
	assert.Contains(t, s, "PERIPHID42")

	out.Reset()
	require.NoError(t, Handle(tm, "spu periph 42"))
	assert.Contains(t, out.String(), "periph[42].PERM")
	assert.Contains(t, out.String(), "nonsecure")
	assert.Regexp(t, `dma:\d dmasec:[01]`, out.String())

	out.Reset()
	require.NoError(t, Handle(tm, "spu ram 8"))
	assert.Contains(t, out.String(), "r w x secure")

	assert.Error(t, Handle(tm, "spu ram 99"))
}

func TestNVIC(t *testing.T) {
	boot(t)
	tm, out := newTerm()

	require.NoError(t, Handle(tm, "nvic"))
	assert.Contains(t, out.String(), "IRQ42 armed:true installed:true enabled:true")
	assert.Contains(t, out.String(), "priority:2 (0x40)")
}

func TestProbeAndReport(t *testing.T) {
	boot(t)
	tm, out := newTerm()

	assert.ErrorContains(t, Handle(tm, "report"), "no probe run")

	require.NoError(t, Handle(tm, "probe"))
	assert.Contains(t, out.String(), "done")
	assert.Contains(t, out.String(), "93.184.216.34")

	out.Reset()
	require.NoError(t, Handle(tm, "report"))
	assert.Contains(t, out.String(), "HTTP/1.0 200 OK")

	out.Reset()
	require.NoError(t, Handle(tm, "stage"))
	assert.Contains(t, out.String(), "stage:done link:attached")
}

func TestFailedRunHalts(t *testing.T) {
	cfg := loopbackConfig()
	cfg.Emulation.Attach = false
	cfg.Probe.AttachTimeout = 10 * time.Millisecond

	bootWith(t, cfg)

	var halted []error

	Halt = func(err error) { halted = append(halted, err) }
	defer func() { Halt = nil }()

	tm, out := newTerm()

	assert.Equal(t, io.EOF, Handle(tm, "probe"))
	assert.Contains(t, out.String(), "link-establishing")

	require.Len(t, halted, 1)
	assert.ErrorIs(t, halted[0], deadline.ErrTimeout)

	// no run on top of the abandoned one
	out.Reset()
	assert.ErrorIs(t, Handle(tm, "probe"), probe.ErrHalted)
	assert.Empty(t, out.String())
	assert.Len(t, halted, 1)
}
