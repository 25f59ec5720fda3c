// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package emul

import (
	"io"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/irq"
	"github.com/usbarmory/modem-bringup/mem"
	"github.com/usbarmory/modem-bringup/modem"
	"github.com/usbarmory/modem-bringup/spu"
)

var (
	testHost   = netip.MustParseAddr("93.184.216.34")
	testAnswer = netip.MustParseAddr("155.33.17.68")
	testDNS    = netip.MustParseAddrPort("8.8.8.8:53")
)

type rig struct {
	regs  *spu.RegFile
	nvic  *irq.Emulator
	modem *Modem
	net   *Loopback
}

func newRig(t *testing.T) *rig {
	r := &rig{
		regs: spu.NewRegFile(),
		nvic: irq.NewEmulator(),
		net:  DefaultLoopback(map[string]netip.Addr{"google.com": testHost}, testAnswer),
	}

	r.modem = NewModem(r.regs, r.net, func() { r.nvic.Raise(mem.IPCIRQ) })

	t.Cleanup(r.modem.Close)
	t.Cleanup(r.nvic.Close)

	return r
}

func (r *rig) grant(t *testing.T) *spu.Receipt {
	c := &spu.Configurator{Registers: r.regs}
	receipt, err := c.Grant(mem.Default())
	require.NoError(t, err)

	return receipt
}

func (r *rig) arm(t *testing.T, receipt *spu.Receipt) {
	require.NoError(t, irq.IPC().Arm(r.nvic, receipt, r.modem.IRQ))
}

func TestInitRequiresGrants(t *testing.T) {
	r := newRig(t)
	r.arm(t, r.grant(t))

	// back to reset values, everything Secure
	r.regs.Reset()

	err := r.modem.Init(modem.DefaultMode())
	require.ErrorIs(t, err, modem.ErrSecureFault)

	var merr *modem.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "init", merr.Op)

	_, err = r.modem.NewLink()
	assert.ErrorIs(t, err, modem.ErrNotInitialized)
}

func TestInitInvalidMode(t *testing.T) {
	r := newRig(t)
	r.arm(t, r.grant(t))

	err := r.modem.Init(modem.SystemMode{GNSS: true})
	assert.ErrorIs(t, err, ErrSystemMode)
}

func TestCompletionRequiresInterrupt(t *testing.T) {
	r := newRig(t)
	receipt := r.grant(t)

	_, err := deadline.Run(deadline.System, 50*time.Millisecond, func() (struct{}, error) {
		return struct{}{}, r.modem.Init(modem.DefaultMode())
	})

	require.ErrorIs(t, err, deadline.ErrTimeout)
	assert.Equal(t, 1, r.modem.Pending())
	assert.True(t, r.nvic.State(mem.IPCIRQ).Pending)

	// the pending line is serviced once unmasked
	r.arm(t, receipt)

	require.Eventually(t, func() bool { return r.modem.Pending() == 0 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, r.nvic.State(mem.IPCIRQ).Count)

	require.Eventually(t, func() bool {
		_, err := r.modem.NewLink()
		return err == nil
	}, time.Second, time.Millisecond)
	assert.Equal(t, modem.DefaultMode(), r.modem.Mode())
}

func TestNotInitialized(t *testing.T) {
	r := newRig(t)

	_, err := r.modem.GetHostByName("google.com")
	assert.ErrorIs(t, err, modem.ErrNotInitialized)

	_, err = r.modem.DialTCP(netip.AddrPortFrom(testHost, 80))
	assert.ErrorIs(t, err, modem.ErrNotInitialized)

	_, err = r.modem.BindUDP(netip.MustParseAddrPort("0.0.0.0:53"))
	assert.ErrorIs(t, err, modem.ErrNotInitialized)
}

func TestExchange(t *testing.T) {
	r := newRig(t)
	r.arm(t, r.grant(t))

	require.NoError(t, r.modem.Init(modem.DefaultMode()))

	link, err := r.modem.NewLink()
	require.NoError(t, err)
	require.NoError(t, link.WaitForLink())

	addr, err := r.modem.GetHostByName("google.com")
	require.NoError(t, err)
	assert.Equal(t, testHost, addr)

	_, err = r.modem.GetHostByName("example.invalid")
	assert.ErrorIs(t, err, ErrNoHost)

	stream, err := r.modem.DialTCP(netip.AddrPortFrom(addr, 80))
	require.NoError(t, err)

	require.NoError(t, stream.Write([]byte("GET / HTTP/1.0\r\n\r\n")))

	buf := make([]byte, 1024)
	n, err := stream.Receive(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "200 OK")

	require.NoError(t, stream.Close())
	assert.ErrorIs(t, stream.Write([]byte{0}), modem.ErrEndpointState)

	sock, err := r.modem.BindUDP(netip.MustParseAddrPort("0.0.0.0:53"))
	require.NoError(t, err)

	query := new(dns.Msg)
	query.SetQuestion("www.northeastern.edu.", dns.TypeA)
	q, err := query.Pack()
	require.NoError(t, err)

	require.NoError(t, sock.SendTo(q, testDNS))

	n, from, err := sock.ReceiveFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, testDNS, from)

	res := new(dns.Msg)
	require.NoError(t, res.Unpack(buf[:n]))
	require.Len(t, res.Answer, 1)
	assert.Equal(t, testAnswer.String(), res.Answer[0].(*dns.A).A.String())

	require.NoError(t, sock.Close())
	assert.Zero(t, r.modem.Pending())
}

func TestDialRefused(t *testing.T) {
	r := newRig(t)
	r.net.TCP = nil
	r.arm(t, r.grant(t))

	require.NoError(t, r.modem.Init(modem.DefaultMode()))

	_, err := r.modem.DialTCP(netip.AddrPortFrom(testHost, 80))
	assert.ErrorIs(t, err, ErrRefused)

	var merr *modem.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "connect", merr.Op)
}

func TestAttachDelay(t *testing.T) {
	clk := deadline.NewManualClock(time.Unix(0, 0))

	r := newRig(t)
	r.modem.Clock = clk
	r.modem.AttachDelay = 5 * time.Second
	r.arm(t, r.grant(t))

	require.NoError(t, r.modem.Init(modem.DefaultMode()))

	link, err := r.modem.NewLink()
	require.NoError(t, err)

	res := make(chan error, 1)
	go func() { res <- link.WaitForLink() }()

	require.Eventually(t, func() bool { return clk.Waiters() == 1 }, time.Second, time.Millisecond)

	clk.Advance(5 * time.Second)
	require.NoError(t, <-res)
}

func TestNoAttach(t *testing.T) {
	r := newRig(t)
	r.modem.NoAttach = true
	r.arm(t, r.grant(t))

	require.NoError(t, r.modem.Init(modem.DefaultMode()))

	link, err := r.modem.NewLink()
	require.NoError(t, err)

	res := make(chan error, 1)
	go func() { res <- link.WaitForLink() }()

	select {
	case err := <-res:
		t.Fatalf("link attached: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	r.modem.Close()
	assert.ErrorIs(t, <-res, ErrClosed)
}

func TestAnswerA(t *testing.T) {
	assert.Nil(t, AnswerA([]byte{0x01}, testAnswer))

	query := new(dns.Msg)
	query.SetQuestion("example.com.", dns.TypeAAAA)
	q, err := query.Pack()
	require.NoError(t, err)

	res := new(dns.Msg)
	require.NoError(t, res.Unpack(AnswerA(q, testAnswer)))
	assert.Empty(t, res.Answer)
	assert.Equal(t, query.Id, res.Id)
	assert.True(t, res.Response)
}

type countingConn struct {
	io.ReadWriteCloser
	closes *atomic.Int32
}

func (c *countingConn) Close() error {
	c.closes.Add(1)
	return c.ReadWriteCloser.Close()
}

type countingPacketConn struct {
	PacketConn
	closes *atomic.Int32
}

func (c *countingPacketConn) Close() error {
	c.closes.Add(1)
	return c.PacketConn.Close()
}

// countingNetwork counts the releases of the connections it hands out.
type countingNetwork struct {
	*Loopback
	closes atomic.Int32
}

func (n *countingNetwork) DialTCP(addr netip.AddrPort) (io.ReadWriteCloser, error) {
	conn, err := n.Loopback.DialTCP(addr)

	if err != nil {
		return nil, err
	}

	return &countingConn{conn, &n.closes}, nil
}

func (n *countingNetwork) ListenUDP(addr netip.AddrPort) (PacketConn, error) {
	conn, err := n.Loopback.ListenUDP(addr)

	if err != nil {
		return nil, err
	}

	return &countingPacketConn{conn, &n.closes}, nil
}

func TestCloseReleasesOnce(t *testing.T) {
	r := newRig(t)
	network := &countingNetwork{Loopback: r.net}

	m := NewModem(r.regs, network, func() { r.nvic.Raise(mem.IPCIRQ) })
	t.Cleanup(m.Close)

	require.NoError(t, irq.IPC().Arm(r.nvic, r.grant(t), m.IRQ))
	require.NoError(t, m.Init(modem.DefaultMode()))

	stream, err := m.DialTCP(netip.AddrPortFrom(testHost, 80))
	require.NoError(t, err)

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())
	assert.Equal(t, int32(1), network.closes.Load())

	sock, err := m.BindUDP(netip.MustParseAddrPort("0.0.0.0:53"))
	require.NoError(t, err)

	require.NoError(t, sock.Close())
	require.NoError(t, sock.Close())
	assert.Equal(t, int32(2), network.closes.Load())
}

func TestRequestAfterClose(t *testing.T) {
	r := newRig(t)
	r.arm(t, r.grant(t))

	require.NoError(t, r.modem.Init(modem.DefaultMode()))

	r.modem.Close()

	_, err := r.modem.GetHostByName("google.com")
	assert.ErrorIs(t, err, ErrClosed)
	assert.Zero(t, r.modem.Pending())
}
