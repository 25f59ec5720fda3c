// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"io"

	"golang.org/x/term"
)

func init() {
	Add(Cmd{
		Name: "probe",
		Help: "run the modem probe sequence",
		Fn:   probeCmd,
	})

	Add(Cmd{
		Name: "report",
		Help: "show last probe report",
		Fn:   reportCmd,
	})

	Add(Cmd{
		Name: "stage",
		Help: "show sequence stage and link state",
		Fn:   stageCmd,
	})
}

func probeCmd(_ *term.Terminal, _ []string) (res string, err error) {
	sys, err := system()

	if err != nil {
		return
	}

	r, err := sys.Probe()

	if r == nil {
		return
	}

	if err != nil {
		// the failed run is final, close the session
		if Halt != nil {
			Halt(err)
		}

		return r.String(), io.EOF
	}

	return r.String(), nil
}

func reportCmd(_ *term.Terminal, _ []string) (res string, err error) {
	sys, err := system()

	if err != nil {
		return
	}

	r := sys.Sequencer.Last()

	if r == nil {
		return "", errors.New("no probe run yet")
	}

	return r.String(), nil
}

func stageCmd(_ *term.Terminal, _ []string) (res string, err error) {
	sys, err := system()

	if err != nil {
		return
	}

	stage, link := sys.Sequencer.Stage()

	return "stage:" + stage.String() + " link:" + link.String(), nil
}
