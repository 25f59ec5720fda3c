// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package emul implements an emulated modem coprocessor and its driver.
//
// The coprocessor only sees the shared RAM regions and peripherals granted
// to the Non-secure domain, it refuses to start otherwise. Every request
// completion is posted to the IPC mailbox and signalled through Raise, the
// waiting caller is released only once the interrupt is forwarded to IRQ.
package emul

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"sync"
	"time"

	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/mem"
	"github.com/usbarmory/modem-bringup/modem"
	"github.com/usbarmory/modem-bringup/spu"
)

// MailboxSize is the number of completions the IPC mailbox can hold.
const MailboxSize = 16

var (
	ErrClosed     = errors.New("coprocessor stopped")
	ErrSystemMode = errors.New("no radio access technology selected")
)

type completion struct {
	id  uint32
	val any
	err error
}

// Modem is an emulated modem coprocessor implementing modem.Driver.
type Modem struct {
	sync.Mutex

	// Registers is the SPU register interface checked at Init
	Registers spu.Registers
	// Layout is the expected shared memory and peripheral layout
	Layout mem.Layout
	// Network performs the network requests
	Network Network
	// Clock times the link attach
	Clock deadline.Clock
	// Raise asserts the IPC interrupt line
	Raise func()

	// AttachDelay is the link attach latency
	AttachDelay time.Duration
	// NoAttach prevents the link from ever attaching
	NoAttach bool

	mode    modem.SystemMode
	started bool
	seq     uint32
	pending map[uint32]chan completion

	mailbox chan completion
	stop    chan struct{}
	once    sync.Once
}

// NewModem returns an emulated modem coprocessor using the argument SPU
// registers and network.
func NewModem(regs spu.Registers, network Network, raise func()) *Modem {
	return &Modem{
		Registers: regs,
		Layout:    mem.Default(),
		Network:   network,
		Clock:     deadline.System,
		Raise:     raise,
		pending:   make(map[uint32]chan completion),
		mailbox:   make(chan completion, MailboxSize),
		stop:      make(chan struct{}),
	}
}

func (m *Modem) post(c completion) {
	select {
	case m.mailbox <- c:
	case <-m.stop:
		return
	}

	if m.Raise != nil {
		m.Raise()
	}
}

// request runs op on the coprocessor and waits for its completion to be
// delivered through IRQ.
func (m *Modem) request(op string, fn func() (any, error)) (val any, err error) {
	m.Lock()

	if m.pending == nil {
		m.Unlock()
		return nil, &modem.Error{Op: op, Err: ErrClosed}
	}

	m.seq++
	id := m.seq
	ch := make(chan completion, 1)
	m.pending[id] = ch

	m.Unlock()

	go func() {
		v, err := fn()
		m.post(completion{id: id, val: v, err: err})
	}()

	select {
	case c := <-ch:
		val, err = c.val, c.err
	case <-m.stop:
		err = ErrClosed
	}

	if err != nil {
		err = &modem.Error{Op: op, Err: err}
	}

	return
}

// IRQ implements modem.Driver, it drains the IPC mailbox without blocking.
func (m *Modem) IRQ() {
	for {
		select {
		case c := <-m.mailbox:
			m.deliver(c)
		default:
			return
		}
	}
}

func (m *Modem) deliver(c completion) {
	m.Lock()
	ch, ok := m.pending[c.id]
	delete(m.pending, c.id)
	m.Unlock()

	if ok {
		ch <- c
	}
}

// Pending returns the number of requests waiting for completion.
func (m *Modem) Pending() int {
	m.Lock()
	defer m.Unlock()

	return len(m.pending)
}

// Granted checks that the coprocessor can reach its shared memory and
// peripherals.
func (m *Modem) Granted() error {
	grants := spu.Plan(m.Layout)

	if len(grants) == 0 {
		return fmt.Errorf("%w, empty layout", modem.ErrSecureFault)
	}

	for _, g := range grants {
		perm := m.Registers.Read(g.Target, g.Index)

		if g.Apply(perm) != perm {
			return fmt.Errorf("%w, %s perm:%#.8x", modem.ErrSecureFault, g, perm)
		}
	}

	return nil
}

func (m *Modem) ready(op string) error {
	m.Lock()
	defer m.Unlock()

	if !m.started {
		return &modem.Error{Op: op, Err: modem.ErrNotInitialized}
	}

	return nil
}

// Init implements modem.Driver.
func (m *Modem) Init(mode modem.SystemMode) (err error) {
	if !mode.LTE && !mode.NBIoT {
		return &modem.Error{Op: "init", Err: ErrSystemMode}
	}

	_, err = m.request("init", func() (any, error) {
		return nil, m.Granted()
	})

	if err != nil {
		return
	}

	m.Lock()
	m.mode = mode
	m.started = true
	m.Unlock()

	return
}

// Mode returns the system mode set at Init.
func (m *Modem) Mode() modem.SystemMode {
	m.Lock()
	defer m.Unlock()

	return m.mode
}

// NewLink implements modem.Driver.
func (m *Modem) NewLink() (modem.Link, error) {
	if err := m.ready("link"); err != nil {
		return nil, err
	}

	return &link{m: m}, nil
}

// GetHostByName implements modem.Driver.
func (m *Modem) GetHostByName(host string) (addr netip.Addr, err error) {
	if err = m.ready("getaddrinfo"); err != nil {
		return
	}

	val, err := m.request("getaddrinfo", func() (any, error) {
		return m.Network.LookupHost(host)
	})

	if err != nil {
		return
	}

	return val.(netip.Addr), nil
}

// DialTCP implements modem.Driver.
func (m *Modem) DialTCP(addr netip.AddrPort) (modem.TCPStream, error) {
	if err := m.ready("connect"); err != nil {
		return nil, err
	}

	val, err := m.request("connect", func() (any, error) {
		return m.Network.DialTCP(addr)
	})

	if err != nil {
		return nil, err
	}

	s := &stream{m: m, conn: val.(io.ReadWriteCloser)}
	s.Open()

	return s, nil
}

// BindUDP implements modem.Driver.
func (m *Modem) BindUDP(addr netip.AddrPort) (modem.UDPSocket, error) {
	if err := m.ready("bind"); err != nil {
		return nil, err
	}

	val, err := m.request("bind", func() (any, error) {
		return m.Network.ListenUDP(addr)
	})

	if err != nil {
		return nil, err
	}

	s := &socket{m: m, conn: val.(PacketConn)}
	s.Open()

	return s, nil
}

// Close stops the coprocessor, waiting callers are released with ErrClosed.
func (m *Modem) Close() {
	m.once.Do(func() {
		m.Lock()
		m.pending = nil
		m.Unlock()

		close(m.stop)
	})
}

type link struct {
	m *Modem
}

func (l *link) WaitForLink() (err error) {
	_, err = l.m.request("link", func() (any, error) {
		if l.m.NoAttach {
			<-l.m.stop
			return nil, ErrClosed
		}

		select {
		case <-l.m.Clock.After(l.m.AttachDelay):
		case <-l.m.stop:
			return nil, ErrClosed
		}

		return nil, nil
	})

	return
}

func (l *link) Close() error {
	return nil
}

type stream struct {
	modem.Endpoint

	m    *Modem
	conn io.ReadWriteCloser
}

func (s *stream) Write(buf []byte) (err error) {
	if err = s.Use("send"); err != nil {
		return
	}

	_, err = s.m.request("send", func() (any, error) {
		_, err := s.conn.Write(buf)
		return nil, err
	})

	return s.Done(err)
}

func (s *stream) Receive(buf []byte) (n int, err error) {
	if err = s.Use("recv"); err != nil {
		return
	}

	val, err := s.m.request("recv", func() (any, error) {
		n, err := s.conn.Read(buf)

		if errors.Is(err, io.EOF) {
			err = nil
		}

		return n, err
	})

	if err = s.Done(err); err != nil {
		return
	}

	return val.(int), nil
}

func (s *stream) Close() (err error) {
	release, err := s.Closing()

	if err != nil || !release {
		return
	}

	return s.conn.Close()
}

type datagram struct {
	n    int
	from netip.AddrPort
}

type socket struct {
	modem.Endpoint

	m    *Modem
	conn PacketConn
}

func (s *socket) SendTo(buf []byte, addr netip.AddrPort) (err error) {
	if err = s.Use("sendto"); err != nil {
		return
	}

	_, err = s.m.request("sendto", func() (any, error) {
		_, err := s.conn.WriteTo(buf, addr)
		return nil, err
	})

	return s.Done(err)
}

func (s *socket) ReceiveFrom(buf []byte) (n int, from netip.AddrPort, err error) {
	if err = s.Use("recvfrom"); err != nil {
		return
	}

	val, err := s.m.request("recvfrom", func() (any, error) {
		n, from, err := s.conn.ReadFrom(buf)
		return datagram{n, from}, err
	})

	if err = s.Done(err); err != nil {
		return
	}

	d := val.(datagram)

	return d.n, d.from, nil
}

func (s *socket) Close() (err error) {
	release, err := s.Closing()

	if err != nil || !release {
		return
	}

	return s.conn.Close()
}
