// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cmd implements the diagnostic console commands.
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/usbarmory/modem-bringup/modem_os/internal"
)

// CmdFn represents a command handler.
type CmdFn func(term *term.Terminal, arg []string) (res string, err error)

// Cmd represents a console command.
type Cmd struct {
	Name    string
	Args    int
	Pattern *regexp.Regexp
	Syntax  string
	Help    string
	Fn      CmdFn
}

var cmds = make(map[string]*Cmd)

// System is the brought up system inspected by the commands.
var System *bringup.System

// Halt, when set, is invoked when a probe run fails.
var Halt func(err error)

// Add registers a console command.
func Add(cmd Cmd) {
	cmds[cmd.Name] = &cmd
}

// Help returns the command list.
func Help(term *term.Terminal) string {
	var help bytes.Buffer
	var names []string

	t := tabwriter.NewWriter(&help, 16, 8, 0, '\t', tabwriter.TabIndent)

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		_, _ = fmt.Fprintf(t, "%s\t%s\t # %s\n", cmds[name].Name, cmds[name].Syntax, cmds[name].Help)
	}

	_ = t.Flush()

	if term == nil {
		return help.String()
	}

	return string(term.Escape.Cyan) + help.String() + string(term.Escape.Reset)
}

func match(line string) (cmd *Cmd, arg []string) {
	for _, c := range cmds {
		if c.Name == line {
			return c, nil
		}
	}

	for _, c := range cmds {
		if c.Pattern == nil || !strings.HasPrefix(line, c.Name) {
			continue
		}

		if m := c.Pattern.FindStringSubmatch(line); len(m) > 0 && len(m)-1 == c.Args {
			return c, m[1:]
		}
	}

	return
}

// Handle executes a console command line.
func Handle(term *term.Terminal, line string) (err error) {
	var res string

	line = strings.TrimSpace(line)

	if len(line) == 0 {
		return
	}

	cmd, arg := match(line)

	if cmd == nil {
		return errors.New("unknown command, type `help`")
	}

	res, err = cmd.Fn(term, arg)

	if len(res) > 0 {
		fmt.Fprintln(term, res)
	}

	return
}

func system() (*bringup.System, error) {
	if System == nil {
		return nil, errors.New("system not brought up")
	}

	return System, nil
}
