// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package config loads the run parameters from an optional TOML file.
//
// Keys absent from the file keep their default value, hardware layout
// constants are not configurable (see package mem).
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/usbarmory/modem-bringup/modem"
	"github.com/usbarmory/modem-bringup/probe"
)

const (
	// NetworkHost selects the host sockets as emulated packet data network.
	NetworkHost = "host"
	// NetworkLoopback selects an in-memory packet data network.
	NetworkLoopback = "loopback"
)

var ErrInvalid = errors.New("invalid configuration")

// Emulation represents the emulated coprocessor parameters.
type Emulation struct {
	// Network is the packet data network (host or loopback)
	Network string
	// AttachDelay is the radio attach latency
	AttachDelay time.Duration
	// Attach is false to never attach
	Attach bool
	// Hosts is the loopback name table
	Hosts map[string]netip.Addr
	// Answer is the address returned by the loopback DNS server
	Answer netip.Addr
}

// Config represents the run parameters.
type Config struct {
	Probe     probe.Config
	Emulation Emulation

	// Console is the SSH console listening address, empty disables it
	Console string
	// LogLevel is the zerolog level name
	LogLevel string
	// NoColor disables colored log output
	NoColor bool
}

// Default returns the default run parameters.
func Default() Config {
	return Config{
		Probe: probe.DefaultConfig(),
		Emulation: Emulation{
			Network:     NetworkHost,
			AttachDelay: 2 * time.Second,
			Attach:      true,
			Hosts: map[string]netip.Addr{
				"google.com": netip.MustParseAddr("142.250.74.46"),
			},
			Answer: netip.MustParseAddr("155.33.17.68"),
		},
		LogLevel: zerolog.LevelInfoValue,
	}
}

type modeConfig struct {
	LTE        bool   `toml:"lte"`
	LTEPSM     bool   `toml:"lte_psm"`
	NBIoT      bool   `toml:"nbiot"`
	GNSS       bool   `toml:"gnss"`
	Preference string `toml:"preference"`
}

type emulationConfig struct {
	Network     string            `toml:"network"`
	AttachDelay string            `toml:"attach_delay"`
	Attach      bool              `toml:"attach"`
	Hosts       map[string]string `toml:"hosts"`
	Answer      string            `toml:"answer"`
}

type logConfig struct {
	Level   string `toml:"level"`
	NoColor bool   `toml:"nocolor"`
}

type fileConfig struct {
	Hostname       string `toml:"hostname"`
	TCPPort        int    `toml:"tcp_port"`
	Request        string `toml:"request"`
	BufferSize     int    `toml:"buffer_size"`
	AttachTimeout  string `toml:"attach_timeout"`
	ResolveTimeout string `toml:"resolve_timeout"`
	ConnectTimeout string `toml:"connect_timeout"`
	UDPLocal       string `toml:"udp_local"`
	UDPRemote      string `toml:"udp_remote"`
	Query          string `toml:"query"`
	Console        string `toml:"console"`

	Mode      modeConfig      `toml:"mode"`
	Emulation emulationConfig `toml:"emulation"`
	Log       logConfig       `toml:"log"`
}

func parsePreference(s string) (p modem.ConnectionPreference, err error) {
	for p = modem.PreferNone; p <= modem.PreferNetworkNBIoT; p++ {
		if p.String() == s {
			return
		}
	}

	return 0, fmt.Errorf("invalid preference %q", s)
}

func duration(meta toml.MetaData, raw string, d *time.Duration, key ...string) (err error) {
	if !meta.IsDefined(key...) {
		return
	}

	v, err := time.ParseDuration(strings.TrimSpace(raw))

	if err != nil {
		return fmt.Errorf("parse %s: %w", strings.Join(key, "."), err)
	}

	*d = v

	return
}

func addrPort(meta toml.MetaData, raw string, ap *netip.AddrPort, key string) (err error) {
	if !meta.IsDefined(key) {
		return
	}

	v, err := netip.ParseAddrPort(strings.TrimSpace(raw))

	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}

	*ap = v

	return
}

// Load reads a TOML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	var raw fileConfig

	meta, err := toml.DecodeFile(path, &raw)

	return decode(meta, &raw, err)
}

// Parse reads a TOML configuration on top of the defaults.
func Parse(data string) (Config, error) {
	var raw fileConfig

	meta, err := toml.Decode(data, &raw)

	return decode(meta, &raw, err)
}

func decode(meta toml.MetaData, raw *fileConfig, err error) (cfg Config, _ error) {
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w, unknown key %s", ErrInvalid, undecoded[0])
	}

	return apply(Default(), meta, raw)
}

func apply(cfg Config, meta toml.MetaData, raw *fileConfig) (Config, error) {
	p := &cfg.Probe

	if meta.IsDefined("hostname") {
		p.Hostname = strings.TrimSpace(raw.Hostname)
	}

	if meta.IsDefined("tcp_port") {
		if raw.TCPPort <= 0 || raw.TCPPort > 0xffff {
			return cfg, fmt.Errorf("%w, tcp_port %d", ErrInvalid, raw.TCPPort)
		}

		p.TCPPort = uint16(raw.TCPPort)
	}

	if meta.IsDefined("request") {
		p.Request = []byte(raw.Request)
	}

	if meta.IsDefined("buffer_size") {
		p.BufferSize = raw.BufferSize
	}

	if meta.IsDefined("query") {
		q, err := hex.DecodeString(strings.Join(strings.Fields(raw.Query), ""))

		if err != nil {
			return cfg, fmt.Errorf("parse query: %w", err)
		}

		p.Query = q
	}

	for _, f := range []func() error{
		func() error { return duration(meta, raw.AttachTimeout, &p.AttachTimeout, "attach_timeout") },
		func() error { return duration(meta, raw.ResolveTimeout, &p.ResolveTimeout, "resolve_timeout") },
		func() error { return duration(meta, raw.ConnectTimeout, &p.ConnectTimeout, "connect_timeout") },
		func() error { return addrPort(meta, raw.UDPLocal, &p.UDPLocal, "udp_local") },
		func() error { return addrPort(meta, raw.UDPRemote, &p.UDPRemote, "udp_remote") },
		func() error {
			return duration(meta, raw.Emulation.AttachDelay, &cfg.Emulation.AttachDelay, "emulation", "attach_delay")
		},
	} {
		if err := f(); err != nil {
			return cfg, err
		}
	}

	if meta.IsDefined("console") {
		cfg.Console = strings.TrimSpace(raw.Console)
	}

	m := &p.Mode

	if meta.IsDefined("mode", "lte") {
		m.LTE = raw.Mode.LTE
	}

	if meta.IsDefined("mode", "lte_psm") {
		m.LTEPSM = raw.Mode.LTEPSM
	}

	if meta.IsDefined("mode", "nbiot") {
		m.NBIoT = raw.Mode.NBIoT
	}

	if meta.IsDefined("mode", "gnss") {
		m.GNSS = raw.Mode.GNSS
	}

	if meta.IsDefined("mode", "preference") {
		pref, err := parsePreference(strings.TrimSpace(raw.Mode.Preference))

		if err != nil {
			return cfg, err
		}

		m.Preference = pref
	}

	e := &cfg.Emulation

	if meta.IsDefined("emulation", "network") {
		e.Network = strings.TrimSpace(raw.Emulation.Network)
	}

	if meta.IsDefined("emulation", "attach") {
		e.Attach = raw.Emulation.Attach
	}

	if meta.IsDefined("emulation", "hosts") {
		e.Hosts = make(map[string]netip.Addr, len(raw.Emulation.Hosts))

		for host, s := range raw.Emulation.Hosts {
			addr, err := netip.ParseAddr(strings.TrimSpace(s))

			if err != nil {
				return cfg, fmt.Errorf("parse emulation.hosts.%s: %w", host, err)
			}

			e.Hosts[host] = addr
		}
	}

	if meta.IsDefined("emulation", "answer") {
		addr, err := netip.ParseAddr(strings.TrimSpace(raw.Emulation.Answer))

		if err != nil {
			return cfg, fmt.Errorf("parse emulation.answer: %w", err)
		}

		e.Answer = addr
	}

	if meta.IsDefined("log", "level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.Log.Level))
	}

	if meta.IsDefined("log", "nocolor") {
		cfg.NoColor = raw.Log.NoColor
	}

	return cfg, nil
}

// Validate checks the run parameters.
func (c *Config) Validate() (err error) {
	if err = c.Probe.Validate(); err != nil {
		return
	}

	switch c.Emulation.Network {
	case NetworkHost, NetworkLoopback:
	default:
		return fmt.Errorf("%w, emulation network %q", ErrInvalid, c.Emulation.Network)
	}

	if c.Emulation.AttachDelay < 0 {
		return fmt.Errorf("%w, attach delay %v", ErrInvalid, c.Emulation.AttachDelay)
	}

	if _, err = zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w, %v", ErrInvalid, err)
	}

	return
}
