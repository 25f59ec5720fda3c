// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package emul

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"sync"

	"github.com/miekg/dns"
)

var (
	ErrRefused = errors.New("connection refused")
	ErrNoHost  = errors.New("host not found")
)

// Loopback is an in-memory Network, requests are answered by its handlers.
type Loopback struct {
	sync.Mutex

	// Hosts maps host names to addresses
	Hosts map[string]netip.Addr
	// TCP answers a TCP request, nil refuses connections
	TCP func(addr netip.AddrPort, req []byte) []byte
	// UDP answers a datagram, nil drops it
	UDP func(addr netip.AddrPort, req []byte) []byte

	dials int
	binds map[netip.AddrPort]bool
}

// DefaultLoopback returns an in-memory network answering HTTP requests with
// a fixed page and DNS queries for A records with the argument address.
func DefaultLoopback(hosts map[string]netip.Addr, answer netip.Addr) *Loopback {
	return &Loopback{
		Hosts: hosts,
		TCP: func(_ netip.AddrPort, _ []byte) []byte {
			return []byte("HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nok\n")
		},
		UDP: func(_ netip.AddrPort, req []byte) []byte {
			return AnswerA(req, answer)
		},
	}
}

// AnswerA returns a DNS response to a query, A questions are answered with
// the argument address, malformed queries yield no response.
func AnswerA(query []byte, addr netip.Addr) []byte {
	req := new(dns.Msg)

	if err := req.Unpack(query); err != nil {
		return nil
	}

	res := new(dns.Msg)
	res.SetReply(req)

	for _, q := range req.Question {
		if q.Qtype != dns.TypeA || !addr.Is4() {
			continue
		}

		res.Answer = append(res.Answer, &dns.A{
			Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60},
			A:   net.IP(addr.AsSlice()),
		})
	}

	buf, err := res.Pack()

	if err != nil {
		return nil
	}

	return buf
}

// Dials returns the number of TCP connections opened.
func (l *Loopback) Dials() int {
	l.Lock()
	defer l.Unlock()

	return l.dials
}

// LookupHost implements Network.
func (l *Loopback) LookupHost(host string) (netip.Addr, error) {
	l.Lock()
	defer l.Unlock()

	if addr, ok := l.Hosts[host]; ok {
		return addr, nil
	}

	return netip.Addr{}, fmt.Errorf("%w, %s", ErrNoHost, host)
}

// DialTCP implements Network.
func (l *Loopback) DialTCP(addr netip.AddrPort) (io.ReadWriteCloser, error) {
	l.Lock()
	defer l.Unlock()

	if l.TCP == nil {
		return nil, fmt.Errorf("%w, %s", ErrRefused, addr)
	}

	l.dials++

	return &loopConn{
		addr:    addr,
		handler: l.TCP,
		ready:   make(chan struct{}),
		closed:  make(chan struct{}),
	}, nil
}

// ListenUDP implements Network.
func (l *Loopback) ListenUDP(addr netip.AddrPort) (PacketConn, error) {
	l.Lock()
	defer l.Unlock()

	if l.binds == nil {
		l.binds = make(map[netip.AddrPort]bool)
	}

	if l.binds[addr] {
		return nil, fmt.Errorf("address %s already in use", addr)
	}

	l.binds[addr] = true

	return &loopPacketConn{
		l:       l,
		local:   addr,
		replies: make(chan packet, 1),
		closed:  make(chan struct{}),
	}, nil
}

func (l *Loopback) release(addr netip.AddrPort) {
	l.Lock()
	defer l.Unlock()

	delete(l.binds, addr)
}

type loopConn struct {
	sync.Mutex

	addr    netip.AddrPort
	handler func(netip.AddrPort, []byte) []byte
	res     bytes.Buffer

	ready     chan struct{}
	readyOnce sync.Once
	closed    chan struct{}
	closeOnce sync.Once
}

func (c *loopConn) Write(buf []byte) (int, error) {
	select {
	case <-c.closed:
		return 0, net.ErrClosed
	default:
	}

	res := c.handler(c.addr, bytes.Clone(buf))

	c.Lock()
	c.res.Write(res)
	c.Unlock()

	c.readyOnce.Do(func() { close(c.ready) })

	return len(buf), nil
}

func (c *loopConn) Read(buf []byte) (int, error) {
	select {
	case <-c.ready:
	case <-c.closed:
		return 0, net.ErrClosed
	}

	c.Lock()
	defer c.Unlock()

	return c.res.Read(buf)
}

func (c *loopConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

type packet struct {
	buf  []byte
	from netip.AddrPort
}

type loopPacketConn struct {
	l     *Loopback
	local netip.AddrPort

	replies   chan packet
	closed    chan struct{}
	closeOnce sync.Once
}

func (c *loopPacketConn) WriteTo(buf []byte, addr netip.AddrPort) (int, error) {
	select {
	case <-c.closed:
		return 0, net.ErrClosed
	default:
	}

	c.l.Lock()
	handler := c.l.UDP
	c.l.Unlock()

	if handler == nil {
		return len(buf), nil
	}

	if res := handler(addr, bytes.Clone(buf)); res != nil {
		select {
		case c.replies <- packet{res, addr}:
		default:
		}
	}

	return len(buf), nil
}

func (c *loopPacketConn) ReadFrom(buf []byte) (int, netip.AddrPort, error) {
	select {
	case p := <-c.replies:
		return copy(buf, p.buf), p.from, nil
	case <-c.closed:
		return 0, netip.AddrPort{}, net.ErrClosed
	}
}

func (c *loopPacketConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.l.release(c.local)
	})

	return nil
}
