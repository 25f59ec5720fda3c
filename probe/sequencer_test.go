// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package probe

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/modem"
	"github.com/usbarmory/modem-bringup/modem/emul"
	"github.com/usbarmory/modem-bringup/modem/mocks"
)

var (
	testAddr   = netip.MustParseAddr("93.184.216.34")
	testAnswer = netip.MustParseAddr("155.33.17.68")
	testDNS    = netip.MustParseAddrPort("8.8.8.8:53")
	testLocal  = netip.MustParseAddrPort("0.0.0.0:53")

	testResponse = []byte("HTTP/1.0 200 OK\r\nContent-Length: 5\r\n\r\nhello")
)

type runResult struct {
	report *Report
	err    error
}

func newSequencer(drv modem.Driver, clk deadline.Clock) *Sequencer {
	s := NewSequencer(drv, zerolog.Nop())
	s.Clock = clk

	return s
}

func start(s *Sequencer) <-chan runResult {
	ch := make(chan runResult, 1)

	go func() {
		r, err := s.Run()
		ch <- runResult{r, err}
	}()

	return ch
}

func waitTimer(t *testing.T, clk *deadline.ManualClock, n int) {
	require.Eventually(t, func() bool { return clk.Waiters() == n }, time.Second, time.Millisecond)
}

func expectAttach(drv *mocks.MockDriver, link *mocks.MockLink) {
	drv.EXPECT().Init(modem.DefaultMode()).Return(nil).Once()
	drv.EXPECT().NewLink().Return(link, nil).Once()
}

func TestSequenceComplete(t *testing.T) {
	clk := deadline.NewManualClock(time.Unix(0, 0))

	drv := mocks.NewMockDriver(t)
	link := mocks.NewMockLink(t)
	stream := mocks.NewMockTCPStream(t)
	sock := mocks.NewMockUDPSocket(t)

	expectAttach(drv, link)
	link.EXPECT().WaitForLink().Return(nil).Once()

	drv.EXPECT().GetHostByName("google.com").Return(testAddr, nil).Once()
	drv.EXPECT().DialTCP(netip.AddrPortFrom(testAddr, 80)).Return(stream, nil).Once()

	stream.EXPECT().Write([]byte("GET / HTTP/1.0\nHost: google.com\r\n\r\n")).Return(nil).Once()
	stream.EXPECT().Receive(mock.MatchedBy(func(buf []byte) bool { return len(buf) == 1024 })).
		RunAndReturn(func(buf []byte) (int, error) {
			return copy(buf, testResponse), nil
		}).Once()
	stream.EXPECT().Close().Return(nil).Once()

	var sent []byte

	drv.EXPECT().BindUDP(testLocal).Return(sock, nil).Once()
	sock.EXPECT().SendTo(mock.Anything, testDNS).
		Run(func(buf []byte, _ netip.AddrPort) {
			sent = append([]byte{}, buf...)
		}).Return(nil).Once()
	sock.EXPECT().ReceiveFrom(mock.Anything).
		RunAndReturn(func(buf []byte) (int, netip.AddrPort, error) {
			return copy(buf, emul.AnswerA(DNSQuery[:], testAnswer)), testDNS, nil
		}).Once()
	sock.EXPECT().Close().Return(nil).Once()

	s := newSequencer(drv, clk)
	r, err := s.Run()
	require.NoError(t, err)

	assert.Equal(t, Done, r.Stage)
	assert.Equal(t, Success, r.Outcome)
	assert.Equal(t, LinkAttached, r.Link)
	assert.Equal(t, testAddr, r.Address)
	assert.Equal(t, testResponse, r.Response)
	assert.False(t, r.Truncated)
	assert.Equal(t, "HTTP/1.0 200 OK", r.StatusLine())
	assert.Equal(t, testDNS, r.Source)
	require.Len(t, r.Answers, 1)
	assert.Contains(t, r.Answers[0], "155.33.17.68")
	assert.Len(t, r.Timings, 7)

	// exact UDP payload
	require.Len(t, sent, 38)
	assert.Equal(t, DNSQuery[:], sent)

	// single receive, no retry loop
	stream.AssertNumberOfCalls(t, "Receive", 1)
	sock.AssertNumberOfCalls(t, "ReceiveFrom", 1)

	st, l := s.Stage()
	assert.Equal(t, Done, st)
	assert.Equal(t, LinkAttached, l)
	assert.Same(t, r, s.Last())
}

func TestLinkNeverAttaches(t *testing.T) {
	clk := deadline.NewManualClock(time.Unix(0, 0))
	release := make(chan struct{})
	defer close(release)

	drv := mocks.NewMockDriver(t)
	link := mocks.NewMockLink(t)

	expectAttach(drv, link)
	link.EXPECT().WaitForLink().RunAndReturn(func() error {
		<-release
		return nil
	}).Once()

	res := start(newSequencer(drv, clk))
	waitTimer(t, clk, 1)

	clk.Advance(AttachTimeout - time.Nanosecond)

	select {
	case r := <-res:
		t.Fatalf("sequence ended before deadline: %v", r.err)
	case <-time.After(20 * time.Millisecond):
	}

	clk.Advance(time.Nanosecond)

	r := <-res
	require.ErrorIs(t, r.err, deadline.ErrTimeout)

	var serr *StageError
	require.ErrorAs(t, r.err, &serr)
	assert.Equal(t, LinkEstablishing, serr.Stage)

	assert.Equal(t, Failed, r.report.Stage)
	assert.Equal(t, LinkEstablishing, r.report.FailedStage)
	assert.Equal(t, Timeout, r.report.Outcome)
	assert.Equal(t, LinkFailed, r.report.Link)
	assert.Equal(t, AttachTimeout, r.report.Elapsed)

	last := r.report.Timings[len(r.report.Timings)-1]
	assert.Equal(t, Timing{LinkEstablishing, AttachTimeout}, last)

	drv.AssertNotCalled(t, "GetHostByName", mock.Anything)
}

func TestConnectTimeout(t *testing.T) {
	clk := deadline.NewManualClock(time.Unix(0, 0))
	release := make(chan struct{})
	defer close(release)

	drv := mocks.NewMockDriver(t)
	link := mocks.NewMockLink(t)
	stream := mocks.NewMockTCPStream(t)

	expectAttach(drv, link)
	link.EXPECT().WaitForLink().Return(nil).Once()
	drv.EXPECT().GetHostByName("google.com").Return(testAddr, nil).Once()
	drv.EXPECT().DialTCP(netip.AddrPortFrom(testAddr, 80)).RunAndReturn(func(netip.AddrPort) (modem.TCPStream, error) {
		<-release
		return stream, nil
	}).Once()

	res := start(newSequencer(drv, clk))

	// the attach timer is left pending by the completed guard
	waitTimer(t, clk, 2)
	clk.Advance(ConnectTimeout)

	r := <-res
	require.ErrorIs(t, r.err, deadline.ErrTimeout)
	assert.Equal(t, TCPConnecting, r.report.FailedStage)

	// abandoned, never closed nor written
	stream.AssertNotCalled(t, "Close")
	stream.AssertNotCalled(t, "Write", mock.Anything)
}

func TestResolveTimeout(t *testing.T) {
	clk := deadline.NewManualClock(time.Unix(0, 0))
	release := make(chan struct{})
	defer close(release)

	drv := mocks.NewMockDriver(t)
	link := mocks.NewMockLink(t)

	expectAttach(drv, link)
	link.EXPECT().WaitForLink().Return(nil).Once()
	drv.EXPECT().GetHostByName("google.com").RunAndReturn(func(string) (netip.Addr, error) {
		<-release
		return testAddr, nil
	}).Once()

	s := newSequencer(drv, clk)
	s.Config.ResolveTimeout = 5 * time.Second

	res := start(s)
	waitTimer(t, clk, 2)
	clk.Advance(5 * time.Second)

	r := <-res
	require.ErrorIs(t, r.err, deadline.ErrTimeout)
	assert.Equal(t, NameResolving, r.report.FailedStage)
	drv.AssertNotCalled(t, "DialTCP", mock.Anything)
}

func TestInitFailure(t *testing.T) {
	drv := mocks.NewMockDriver(t)
	drv.EXPECT().Init(modem.DefaultMode()).Return(&modem.Error{Op: "init", Err: modem.ErrSecureFault}).Once()

	r, err := newSequencer(drv, deadline.System).Run()
	require.ErrorIs(t, err, modem.ErrSecureFault)

	assert.Equal(t, ModemInitializing, r.FailedStage)
	assert.Equal(t, HardwareFault, r.Outcome)
	assert.Equal(t, LinkFailed, r.Link)
	assert.Len(t, r.Timings, 1)

	drv.AssertNotCalled(t, "NewLink")
}

func TestDriverErrorIsFatal(t *testing.T) {
	errReset := &modem.Error{Op: "recv", Err: errors.New("connection reset")}

	drv := mocks.NewMockDriver(t)
	link := mocks.NewMockLink(t)
	stream := mocks.NewMockTCPStream(t)

	expectAttach(drv, link)
	link.EXPECT().WaitForLink().Return(nil).Once()
	drv.EXPECT().GetHostByName("google.com").Return(testAddr, nil).Once()
	drv.EXPECT().DialTCP(netip.AddrPortFrom(testAddr, 80)).Return(stream, nil).Once()
	stream.EXPECT().Write(mock.Anything).Return(nil).Once()
	stream.EXPECT().Receive(mock.Anything).Return(0, errReset).Once()

	r, err := newSequencer(drv, deadline.NewManualClock(time.Unix(0, 0))).Run()
	require.ErrorIs(t, err, errReset)

	assert.Equal(t, TCPExchanging, r.FailedStage)
	assert.Equal(t, DriverError, r.Outcome)

	// no unwind of previous stages
	stream.AssertNotCalled(t, "Close")
	drv.AssertNotCalled(t, "BindUDP", mock.Anything)
}

func TestTruncatedResponse(t *testing.T) {
	drv := mocks.NewMockDriver(t)
	link := mocks.NewMockLink(t)
	stream := mocks.NewMockTCPStream(t)
	sock := mocks.NewMockUDPSocket(t)

	expectAttach(drv, link)
	link.EXPECT().WaitForLink().Return(nil).Once()
	drv.EXPECT().GetHostByName("google.com").Return(testAddr, nil).Once()
	drv.EXPECT().DialTCP(mock.Anything).Return(stream, nil).Once()
	stream.EXPECT().Write(mock.Anything).Return(nil).Once()
	stream.EXPECT().Receive(mock.Anything).RunAndReturn(func(buf []byte) (int, error) {
		return copy(buf, testResponse), nil
	}).Once()
	stream.EXPECT().Close().Return(nil).Once()
	drv.EXPECT().BindUDP(testLocal).Return(sock, nil).Once()
	sock.EXPECT().SendTo(mock.Anything, testDNS).Return(nil).Once()
	sock.EXPECT().ReceiveFrom(mock.Anything).Return(4, testDNS, nil).Once()
	sock.EXPECT().Close().Return(nil).Once()

	s := newSequencer(drv, deadline.NewManualClock(time.Unix(0, 0)))
	s.Config.BufferSize = 8

	r, err := s.Run()
	require.NoError(t, err)

	assert.Equal(t, testResponse[:8], r.Response)
	assert.True(t, r.Truncated)

	// undecodable replies do not fail the run
	assert.Len(t, r.Reply, 4)
	assert.Empty(t, r.Answers)
	assert.Equal(t, Done, r.Stage)
}

func TestInvalidConfig(t *testing.T) {
	drv := mocks.NewMockDriver(t)

	s := newSequencer(drv, deadline.System)
	s.Config.AttachTimeout = 0

	r, err := s.Run()
	require.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, Uninit, r.FailedStage)
	assert.Equal(t, Failed, r.Stage)

	drv.AssertNotCalled(t, "Init", mock.Anything)
}

func TestRunExclusive(t *testing.T) {
	clk := deadline.NewManualClock(time.Unix(0, 0))
	release := make(chan struct{})
	defer close(release)

	drv := mocks.NewMockDriver(t)
	link := mocks.NewMockLink(t)

	expectAttach(drv, link)
	link.EXPECT().WaitForLink().RunAndReturn(func() error {
		<-release
		return nil
	}).Once()

	s := newSequencer(drv, clk)
	res := start(s)
	waitTimer(t, clk, 1)

	// a second run while the first waits for attach
	r, err := s.Run()
	assert.ErrorIs(t, err, ErrRunning)
	assert.Nil(t, r)

	stage, _ := s.Stage()
	assert.Equal(t, LinkEstablishing, stage)

	clk.Advance(AttachTimeout)

	first := <-res
	require.ErrorIs(t, first.err, deadline.ErrTimeout)

	// a failed run is final
	r, err = s.Run()
	assert.ErrorIs(t, err, ErrHalted)
	assert.ErrorIs(t, err, deadline.ErrTimeout)
	assert.Nil(t, r)
	assert.Same(t, first.report, s.Last())
}
