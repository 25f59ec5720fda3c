// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/usbarmory/modem-bringup/config"
	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/modem_os/cmd"
	"github.com/usbarmory/modem-bringup/modem_os/internal"
	"github.com/usbarmory/modem-bringup/util"
)

const app = "modem_os"

var (
	configPath  string
	consoleAddr string
)

var (
	halt     = make(chan struct{})
	haltOnce sync.Once
)

func init() {
	flag.StringVar(&configPath, "config", "", "TOML configuration file")
	flag.StringVar(&consoleAddr, "console", "", "SSH console address (overrides configuration)")

	cmd.Add(cmd.Cmd{
		Name: "halt",
		Help: "close session and halt",
		Fn:   haltCmd,
	})
}

func stop() {
	haltOnce.Do(func() { close(halt) })
}

func haltCmd(_ *term.Terminal, _ []string) (string, error) {
	stop()
	return "", io.EOF
}

func banner() string {
	return fmt.Sprintf("%s/%s (%s) • cellular modem bring-up (emulated nRF9160)", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func load() (cfg config.Config, err error) {
	cfg = config.Default()

	if len(configPath) > 0 {
		if cfg, err = config.Load(configPath); err != nil {
			return
		}
	}

	if len(consoleAddr) > 0 {
		cfg.Console = consoleAddr
	}

	err = cfg.Validate()

	return
}

func console(addr string, out *util.Output, log zerolog.Logger) (err error) {
	listener, err := net.Listen("tcp", addr)

	if err != nil {
		return
	}

	ssh := &util.Console{
		Banner:  banner(),
		Help:    cmd.Help(nil),
		Handler: cmd.Handle,
		Log:     log,
		Output:  out,
	}

	if err = ssh.Start(listener); err != nil {
		return
	}

	<-halt

	return listener.Close()
}

func main() {
	flag.Parse()

	out := &util.Output{Out: os.Stdout}

	cfg, err := load()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app, err)
		os.Exit(2)
	}

	logCfg := util.LogConfig{Level: cfg.LogLevel, NoColor: cfg.NoColor}
	logCfg.ApplyEnv()

	log, err := util.NewLogger(out, app, logCfg)

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app, err)
		os.Exit(2)
	}

	log.Info().Msg(banner())

	e, err := bringup.NewEmulation(cfg.Emulation, deadline.System)

	if err != nil {
		bringup.Halt(log, err)
		return
	}

	err = run(cfg, e, out, log)
	e.Close()

	bringup.Halt(log, err)
}

// run brings up the system, probes once and serves the console until halted,
// it returns the failure of the last probe run.
func run(cfg config.Config, e *bringup.Emulation, out *util.Output, log zerolog.Logger) (err error) {
	sys, err := bringup.Boot(e.Hardware(), e.Modem, cfg.Probe, deadline.System, log)

	if err != nil {
		return
	}

	cmd.System = sys
	cmd.Halt = func(error) { stop() }

	if _, err = sys.Probe(); err != nil || len(cfg.Console) == 0 {
		return
	}

	log.Info().Msg("probe complete, serving console")

	if err = console(cfg.Console, out, log); err != nil {
		return
	}

	return sys.Sequencer.Last().Err
}
