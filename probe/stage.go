// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package probe

import (
	"errors"
	"fmt"

	"github.com/usbarmory/modem-bringup/deadline"
	"github.com/usbarmory/modem-bringup/irq"
	"github.com/usbarmory/modem-bringup/modem"
	"github.com/usbarmory/modem-bringup/spu"
)

// Stage represents a bring-up sequence state.
type Stage int

const (
	Uninit Stage = iota
	ModemInitializing
	LinkEstablishing
	NameResolving
	TCPConnecting
	TCPExchanging
	UDPBinding
	UDPQuerying
	Done
	Failed
)

var stageNames = []string{
	"uninit",
	"modem-initializing",
	"link-establishing",
	"name-resolving",
	"tcp-connecting",
	"tcp-exchanging",
	"udp-binding",
	"udp-querying",
	"done",
	"failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}

	return stageNames[s]
}

// LinkState represents the radio link state.
type LinkState int

const (
	LinkUninitialized LinkState = iota
	LinkInitializing
	LinkWaitingForAttach
	LinkAttached
	LinkFailed
)

func (l LinkState) String() string {
	switch l {
	case LinkUninitialized:
		return "uninitialized"
	case LinkInitializing:
		return "initializing"
	case LinkWaitingForAttach:
		return "waiting-for-attach"
	case LinkAttached:
		return "attached"
	case LinkFailed:
		return "failed"
	default:
		return fmt.Sprintf("link(%d)", int(l))
	}
}

// Outcome represents the class of a stage result.
type Outcome int

const (
	Success Outcome = iota
	Timeout
	DriverError
	HardwareFault
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case DriverError:
		return "driver-error"
	case HardwareFault:
		return "hardware-fault"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var hardwareFaults = []error{
	modem.ErrSecureFault,
	spu.ErrAlreadyGranted,
	spu.ErrIndex,
	spu.ErrLocked,
	irq.ErrArmed,
	irq.ErrHandler,
	irq.ErrLine,
	irq.ErrNotGranted,
	irq.ErrPriority,
}

// Classify returns the outcome class of an error: deadline expiry is a
// Timeout, register and interrupt configuration failures (including any
// failure before the sequence starts) are a HardwareFault, anything else
// comes from the driver.
func Classify(err error) Outcome {
	if err == nil {
		return Success
	}

	if errors.Is(err, deadline.ErrTimeout) {
		return Timeout
	}

	for _, fault := range hardwareFaults {
		if errors.Is(err, fault) {
			return HardwareFault
		}
	}

	var serr *StageError

	if errors.As(err, &serr) && serr.Stage == Uninit {
		return HardwareFault
	}

	return DriverError
}

// StageError represents a fatal failure of a sequence stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
