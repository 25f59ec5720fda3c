// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package emul

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/netip"
)

// Network represents the packet data network reached by the emulated modem.
type Network interface {
	// LookupHost returns the first IPv4 address of a host.
	LookupHost(host string) (netip.Addr, error)
	// DialTCP opens a TCP connection.
	DialTCP(addr netip.AddrPort) (io.ReadWriteCloser, error)
	// ListenUDP opens a UDP socket bound to a local address.
	ListenUDP(addr netip.AddrPort) (PacketConn, error)
}

// PacketConn represents a bound UDP socket.
type PacketConn interface {
	WriteTo(buf []byte, addr netip.AddrPort) (int, error)
	ReadFrom(buf []byte) (int, netip.AddrPort, error)
	Close() error
}

// Host is a Network backed by the host sockets.
type Host struct {
	// Resolver is the host resolver, nil selects net.DefaultResolver
	Resolver *net.Resolver
}

// LookupHost implements Network.
func (h *Host) LookupHost(host string) (addr netip.Addr, err error) {
	r := h.Resolver

	if r == nil {
		r = net.DefaultResolver
	}

	addrs, err := r.LookupNetIP(context.Background(), "ip4", host)

	if err != nil {
		return
	}

	if len(addrs) == 0 {
		return addr, fmt.Errorf("no address for %s", host)
	}

	return addrs[0].Unmap(), nil
}

// DialTCP implements Network.
func (h *Host) DialTCP(addr netip.AddrPort) (io.ReadWriteCloser, error) {
	return net.DialTCP("tcp4", nil, net.TCPAddrFromAddrPort(addr))
}

// ListenUDP implements Network.
func (h *Host) ListenUDP(addr netip.AddrPort) (PacketConn, error) {
	conn, err := net.ListenUDP("udp4", net.UDPAddrFromAddrPort(addr))

	if err != nil {
		return nil, err
	}

	return &udpConn{conn}, nil
}

type udpConn struct {
	*net.UDPConn
}

func (c *udpConn) WriteTo(buf []byte, addr netip.AddrPort) (int, error) {
	return c.WriteToUDPAddrPort(buf, addr)
}

func (c *udpConn) ReadFrom(buf []byte) (n int, addr netip.AddrPort, err error) {
	n, addr, err = c.ReadFromUDPAddrPort(buf)
	addr = netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port())

	return
}
