// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package modem defines the interface to the cellular modem driver.
//
// The driver is an external collaborator: it owns the cellular and IP
// stacks, the orchestrator only calls into it. Driver operations block until
// the coprocessor signals completion through the IPC interrupt, which must be
// forwarded to IRQ.
package modem

import (
	"errors"
	"fmt"
	"net/netip"
)

var (
	// ErrSecureFault is returned when the coprocessor cannot reach its
	// shared memory or peripherals (domain grants missing).
	ErrSecureFault = errors.New("coprocessor secure fault")
	// ErrEndpointState is returned on I/O with an endpoint which is not
	// open, it denotes a programming error.
	ErrEndpointState = errors.New("invalid endpoint state")
	// ErrNotInitialized is returned by operations issued before Init.
	ErrNotInitialized = errors.New("modem not initialized")
)

// ConnectionPreference selects the preferred network type.
type ConnectionPreference int

const (
	// PreferNone leaves network type selection to the modem.
	PreferNone ConnectionPreference = iota
	PreferLTE
	PreferNBIoT
	PreferNetworkLTE
	PreferNetworkNBIoT
)

func (p ConnectionPreference) String() string {
	switch p {
	case PreferNone:
		return "none"
	case PreferLTE:
		return "lte"
	case PreferNBIoT:
		return "nbiot"
	case PreferNetworkLTE:
		return "network-lte"
	case PreferNetworkNBIoT:
		return "network-nbiot"
	default:
		return fmt.Sprintf("preference(%d)", int(p))
	}
}

// SystemMode represents the modem feature set requested at initialization.
type SystemMode struct {
	LTE        bool
	LTEPSM     bool
	NBIoT      bool
	GNSS       bool
	Preference ConnectionPreference
}

// DefaultMode returns the full feature set with automatic network type
// selection.
func DefaultMode() SystemMode {
	return SystemMode{
		LTE:        true,
		LTEPSM:     true,
		NBIoT:      true,
		GNSS:       true,
		Preference: PreferNone,
	}
}

// Error represents a driver operation failure.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("modem %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Driver represents the modem driver.
type Driver interface {
	// Init initializes the modem subsystem.
	Init(mode SystemMode) error
	// NewLink returns a handle to the cellular attachment.
	NewLink() (Link, error)
	// GetHostByName resolves a hostname through the modem resolver.
	GetHostByName(host string) (netip.Addr, error)
	// DialTCP opens a TCP connection.
	DialTCP(addr netip.AddrPort) (TCPStream, error)
	// BindUDP opens a UDP socket bound to a local address.
	BindUDP(addr netip.AddrPort) (UDPSocket, error)
	// IRQ is the IPC interrupt forwarding entry point, it must not block.
	IRQ()
}

// Link represents the cellular attachment.
type Link interface {
	// WaitForLink blocks until the modem is attached.
	WaitForLink() error
	// Close releases the link handle.
	Close() error
}

// TCPStream represents a TCP connection.
type TCPStream interface {
	// Write sends a payload.
	Write(buf []byte) error
	// Receive performs a single receive into buf.
	Receive(buf []byte) (int, error)
	// Close closes the connection.
	Close() error
}

// UDPSocket represents a bound UDP socket.
type UDPSocket interface {
	// SendTo sends a datagram.
	SendTo(buf []byte, addr netip.AddrPort) error
	// ReceiveFrom performs a single receive into buf.
	ReceiveFrom(buf []byte) (int, netip.AddrPort, error)
	// Close closes the socket.
	Close() error
}
