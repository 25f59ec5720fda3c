// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package modem

import (
	"fmt"
	"sync"
)

// EndpointState represents the lifecycle of a TCP stream or UDP socket.
type EndpointState int

const (
	Unopened EndpointState = iota
	Open
	ClosedOK
	ClosedError
)

func (s EndpointState) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Open:
		return "open"
	case ClosedOK:
		return "closed"
	case ClosedError:
		return "closed-error"
	default:
		return "invalid"
	}
}

// Endpoint tracks an endpoint state: I/O is only allowed while open and an
// I/O failure closes it for good.
type Endpoint struct {
	sync.Mutex

	state    EndpointState
	released bool
}

// State returns the endpoint state.
func (e *Endpoint) State() EndpointState {
	e.Lock()
	defer e.Unlock()

	return e.state
}

// Open marks the endpoint as open, only an unopened endpoint can be opened.
func (e *Endpoint) Open() error {
	e.Lock()
	defer e.Unlock()

	if e.state != Unopened {
		return fmt.Errorf("%w, open on %s endpoint", ErrEndpointState, e.state)
	}

	e.state = Open

	return nil
}

// Use checks that the endpoint can perform I/O.
func (e *Endpoint) Use(op string) error {
	e.Lock()
	defer e.Unlock()

	if e.state != Open {
		return fmt.Errorf("%w, %s on %s endpoint", ErrEndpointState, op, e.state)
	}

	return nil
}

// Done records an I/O outcome, a failure moves the endpoint to ClosedError.
func (e *Endpoint) Done(err error) error {
	if err == nil {
		return nil
	}

	e.Lock()
	defer e.Unlock()

	if e.state == Open {
		e.state = ClosedError
	}

	return err
}

// Close moves an open endpoint to ClosedOK, closing twice is a no-op.
func (e *Endpoint) Close() (err error) {
	_, err = e.Closing()
	return
}

// Closing moves an open endpoint to ClosedOK and reports whether the
// resource behind it must be released, which is true exactly once per
// opened endpoint.
func (e *Endpoint) Closing() (release bool, err error) {
	e.Lock()
	defer e.Unlock()

	switch e.state {
	case Unopened:
		return false, fmt.Errorf("%w, close on %s endpoint", ErrEndpointState, e.state)
	case Open:
		e.state = ClosedOK
	}

	release = !e.released
	e.released = true

	return
}
