// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package probe

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/usbarmory/modem-bringup/modem"
)

const (
	// AttachTimeout is the default radio attach deadline.
	AttachTimeout = 30 * time.Second
	// ConnectTimeout is the default TCP connect deadline.
	ConnectTimeout = 2 * time.Second
	// BufferSize is the default receive buffer size.
	BufferSize = 1024
)

var ErrConfig = errors.New("invalid probe configuration")

// Config represents the probe parameters.
type Config struct {
	// Mode is the modem feature set requested at Init
	Mode modem.SystemMode

	// AttachTimeout guards the radio attach
	AttachTimeout time.Duration
	// ResolveTimeout guards name resolution, zero leaves it unguarded
	ResolveTimeout time.Duration
	// ConnectTimeout guards the TCP connect
	ConnectTimeout time.Duration

	// Hostname is the TCP probe host
	Hostname string
	// TCPPort is the TCP probe port
	TCPPort uint16
	// Request is the TCP probe payload
	Request []byte

	// BufferSize is the size of the single receive buffer
	BufferSize int

	// UDPLocal is the UDP socket local address
	UDPLocal netip.AddrPort
	// UDPRemote is the UDP probe destination
	UDPRemote netip.AddrPort
	// Query is the UDP probe payload
	Query []byte
}

// DefaultConfig returns the default probe parameters.
func DefaultConfig() Config {
	return Config{
		Mode:           modem.DefaultMode(),
		AttachTimeout:  AttachTimeout,
		ConnectTimeout: ConnectTimeout,
		Hostname:       "google.com",
		TCPPort:        80,
		Request:        []byte(HTTPRequest),
		BufferSize:     BufferSize,
		UDPLocal:       netip.AddrPortFrom(netip.IPv4Unspecified(), 53),
		UDPRemote:      netip.MustParseAddrPort("8.8.8.8:53"),
		Query:          append([]byte{}, DNSQuery[:]...),
	}
}

// Validate checks the probe parameters.
func (c *Config) Validate() error {
	switch {
	case c.AttachTimeout <= 0:
		return fmt.Errorf("%w, attach timeout %v", ErrConfig, c.AttachTimeout)
	case c.ConnectTimeout <= 0:
		return fmt.Errorf("%w, connect timeout %v", ErrConfig, c.ConnectTimeout)
	case c.ResolveTimeout < 0:
		return fmt.Errorf("%w, resolve timeout %v", ErrConfig, c.ResolveTimeout)
	case len(c.Hostname) == 0:
		return fmt.Errorf("%w, missing hostname", ErrConfig)
	case c.TCPPort == 0:
		return fmt.Errorf("%w, missing TCP port", ErrConfig)
	case len(c.Request) == 0:
		return fmt.Errorf("%w, missing request", ErrConfig)
	case c.BufferSize <= 0:
		return fmt.Errorf("%w, buffer size %d", ErrConfig, c.BufferSize)
	case !c.UDPLocal.IsValid():
		return fmt.Errorf("%w, invalid UDP local address", ErrConfig)
	case !c.UDPRemote.IsValid() || c.UDPRemote.Port() == 0:
		return fmt.Errorf("%w, invalid UDP remote address", ErrConfig)
	case len(c.Query) == 0:
		return fmt.Errorf("%w, missing query", ErrConfig)
	}

	return nil
}
