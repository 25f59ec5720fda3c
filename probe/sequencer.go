// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package probe implements the bring-up sequence: modem initialization,
// radio attach, name resolution, a TCP exchange and a UDP round trip.
//
// Stages run strictly in order, each gated on the success of the previous
// one. Every failure is fatal to the run, nothing is retried or unwound.
// Indeterminate waits are bounded by the deadline guard, an operation whose
// deadline expired is abandoned and never observed again.
package probe

import (
	"bytes"
	"errors"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/modem"
)

var (
	// ErrRunning is returned by Run while another run is in progress.
	ErrRunning = errors.New("probe sequence already running")
	// ErrHalted is returned by Run once a run has failed, abandoned
	// operations may still hold driver resources.
	ErrHalted = errors.New("probe sequence halted")
)

// Sequencer drives the bring-up sequence over a modem driver.
type Sequencer struct {
	sync.Mutex

	// Driver is the modem driver
	Driver modem.Driver
	// Clock times the guarded stages, nil selects the wall clock
	Clock deadline.Clock
	// Config holds the probe parameters
	Config Config
	// Log receives one line per stage transition
	Log zerolog.Logger

	stage   Stage
	link    LinkState
	last    *Report
	running bool
}

// NewSequencer returns a sequencer with default probe parameters.
func NewSequencer(drv modem.Driver, log zerolog.Logger) *Sequencer {
	return &Sequencer{
		Driver: drv,
		Clock:  deadline.System,
		Config: DefaultConfig(),
		Log:    log,
	}
}

// Stage returns the current stage and link state.
func (s *Sequencer) Stage() (Stage, LinkState) {
	s.Lock()
	defer s.Unlock()

	return s.stage, s.link
}

// Last returns the report of the last completed run.
func (s *Sequencer) Last() *Report {
	s.Lock()
	defer s.Unlock()

	return s.last
}

func (s *Sequencer) clock() deadline.Clock {
	if s.Clock == nil {
		return deadline.System
	}

	return s.Clock
}

func (s *Sequencer) set(r *Report, st Stage, l LinkState) {
	s.Lock()
	defer s.Unlock()

	if st >= 0 {
		s.stage = st
		r.Stage = st
	}

	if l >= 0 {
		s.link = l
		r.Link = l
	}
}

// guarded runs op under deadline d, a zero deadline runs it unguarded.
func guarded[T any](clk deadline.Clock, d time.Duration, op func() (T, error)) (T, error) {
	if d == 0 {
		return op()
	}

	return deadline.Run(clk, d, op)
}

// step runs one stage, recording its timing and turning its failure into a
// StageError.
func (s *Sequencer) step(r *Report, log zerolog.Logger, st Stage, fn func() error) (err error) {
	clk := s.clock()

	s.set(r, st, -1)
	log.Info().Str("stage", st.String()).Msg("enter")

	start := clk.Now()
	err = fn()
	elapsed := clk.Now().Sub(start)

	r.Timings = append(r.Timings, Timing{Stage: st, Elapsed: elapsed})

	if err == nil {
		log.Debug().Str("stage", st.String()).Dur("elapsed", elapsed).Msg("complete")
		return
	}

	err = &StageError{Stage: st, Err: err}

	r.FailedStage = st
	r.Outcome = Classify(err)
	r.Err = err

	s.set(r, Failed, -1)

	log.Error().
		Err(err).
		Str("stage", st.String()).
		Str("outcome", r.Outcome.String()).
		Dur("elapsed", elapsed).
		Msg("failed")

	return
}

// acquire reserves the sequencer for a run: only one run at a time, and
// none after a failed one.
func (s *Sequencer) acquire() (err error) {
	s.Lock()
	defer s.Unlock()

	switch {
	case s.running:
		return ErrRunning
	case s.last != nil && s.last.Err != nil:
		return fmt.Errorf("%w, %w", ErrHalted, s.last.Err)
	}

	s.running = true

	return
}

// Run executes the sequence once. The returned report is partially filled
// when the sequence fails, it is nil only when the run is refused with
// ErrRunning or ErrHalted.
func (s *Sequencer) Run() (r *Report, err error) {
	if err = s.acquire(); err != nil {
		return
	}

	cfg := s.Config
	clk := s.clock()

	r = &Report{
		ID:      uuid.New(),
		Started: clk.Now(),
	}

	log := s.Log.With().Str("run", r.ID.String()).Logger()

	s.set(r, Uninit, LinkUninitialized)

	defer func() {
		r.Elapsed = clk.Now().Sub(r.Started)

		if err != nil {
			s.set(r, -1, LinkFailed)
		}

		s.Lock()
		s.last = r
		s.running = false
		s.Unlock()
	}()

	if err = cfg.Validate(); err != nil {
		return r, s.step(r, log, Uninit, func() error { return err })
	}

	err = s.step(r, log, ModemInitializing, func() error {
		s.set(r, -1, LinkInitializing)
		return s.Driver.Init(cfg.Mode)
	})

	if err != nil {
		return
	}

	err = s.step(r, log, LinkEstablishing, func() error {
		link, err := s.Driver.NewLink()

		if err != nil {
			return err
		}

		s.set(r, -1, LinkWaitingForAttach)

		_, err = deadline.Run(clk, cfg.AttachTimeout, func() (struct{}, error) {
			return struct{}{}, link.WaitForLink()
		})

		return err
	})

	if err != nil {
		return
	}

	s.set(r, -1, LinkAttached)

	err = s.step(r, log, NameResolving, func() (err error) {
		r.Address, err = guarded(clk, cfg.ResolveTimeout, func() (netip.Addr, error) {
			return s.Driver.GetHostByName(cfg.Hostname)
		})

		return
	})

	if err != nil {
		return
	}

	log.Info().Str("host", cfg.Hostname).Str("addr", r.Address.String()).Msg("resolved")

	var stream modem.TCPStream

	err = s.step(r, log, TCPConnecting, func() (err error) {
		addr := netip.AddrPortFrom(r.Address, cfg.TCPPort)

		stream, err = deadline.Run(clk, cfg.ConnectTimeout, func() (modem.TCPStream, error) {
			return s.Driver.DialTCP(addr)
		})

		return
	})

	if err != nil {
		return
	}

	buf := make([]byte, cfg.BufferSize)

	err = s.step(r, log, TCPExchanging, func() (err error) {
		if err = stream.Write(cfg.Request); err != nil {
			return
		}

		n, err := stream.Receive(buf)

		if err != nil {
			return
		}

		r.Response = bytes.Clone(buf[:n])
		r.Truncated = n == len(buf)

		return
	})

	if err != nil {
		return
	}

	log.Info().
		Int("len", len(r.Response)).
		Bool("truncated", r.Truncated).
		Str("status", r.StatusLine()).
		Msg("tcp response")

	var sock modem.UDPSocket

	err = s.step(r, log, UDPBinding, func() (err error) {
		sock, err = s.Driver.BindUDP(cfg.UDPLocal)
		return
	})

	if err != nil {
		return
	}

	err = s.step(r, log, UDPQuerying, func() (err error) {
		if err = sock.SendTo(cfg.Query, cfg.UDPRemote); err != nil {
			return
		}

		n, from, err := sock.ReceiveFrom(buf)

		if err != nil {
			return
		}

		r.Reply = bytes.Clone(buf[:n])
		r.Source = from

		return
	})

	if err != nil {
		return
	}

	log.Info().Int("len", len(r.Reply)).Str("from", r.Source.String()).Msg("udp reply")

	if len(cfg.Query) >= 2 {
		id := uint16(cfg.Query[0])<<8 | uint16(cfg.Query[1])

		if answers, derr := DecodeReply(r.Reply, id); derr != nil {
			log.Warn().Err(derr).Msg("undecodable udp reply")
		} else {
			r.Answers = answers
		}
	}

	s.set(r, Done, -1)
	r.Outcome = Success

	log.Info().Str("stage", Done.String()).Dur("elapsed", clk.Now().Sub(r.Started)).Msg("sequence complete")

	s.release(log, stream, sock)

	return
}

type closer interface {
	Close() error
}

// release closes the endpoints of a completed run.
func (s *Sequencer) release(log zerolog.Logger, endpoints ...closer) {
	for _, e := range endpoints {
		if err := e.Close(); err != nil {
			log.Warn().Err(err).Msg("could not release endpoint")
		}
	}
}
