// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const (
	EnvLogLevel   = "MODEM_LOG_LEVEL"
	EnvLogNoColor = "MODEM_LOG_NOCOLOR"
)

const outputLimit = 1024
const flushChr = 0x0a // \n

// LogConfig represents the logger settings.
type LogConfig struct {
	// Level is the zerolog level name
	Level string
	// NoColor disables colored output
	NoColor bool
}

func parseBool(raw string) (bool, bool) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return v, err == nil
}

// ApplyEnv overrides the settings with the MODEM_LOG_* environment variables.
func (c *LogConfig) ApplyEnv() {
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		c.Level = strings.ToLower(lvl)
	}

	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		c.NoColor = v
	}
}

// NewLogger returns a console formatted logger with time of day stamps.
func NewLogger(out io.Writer, app string, cfg LogConfig) (logger zerolog.Logger, err error) {
	level, err := zerolog.ParseLevel(cfg.Level)

	if err != nil {
		return
	}

	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: "15:04:05",
	}

	logger = zerolog.New(w).Level(level).With().Timestamp().Str("app", app).Logger()

	return
}

// Output is a log destination which can be mirrored to a terminal session.
type Output struct {
	sync.Mutex

	// Out is the main destination
	Out io.Writer

	mirrors []*mirror
}

type mirror struct {
	w io.Writer
}

func (o *Output) Write(p []byte) (n int, err error) {
	o.Lock()
	defer o.Unlock()

	for _, m := range o.mirrors {
		_, _ = m.w.Write(p)
	}

	if o.Out == nil {
		return len(p), nil
	}

	return o.Out.Write(p)
}

// Mirror copies output to w until the returned function is invoked, any
// number of mirrors can be active at once.
func (o *Output) Mirror(w io.Writer) (restore func()) {
	m := &mirror{w: w}

	o.Lock()
	o.mirrors = append(o.mirrors, m)
	o.Unlock()

	return func() {
		o.Lock()
		defer o.Unlock()

		o.mirrors = slices.DeleteFunc(o.mirrors, func(e *mirror) bool { return e == m })
	}
}

// TermLog is a line buffered log writer for a terminal, lines are flushed in
// color.
type TermLog struct {
	sync.Mutex

	// Term is the destination terminal
	Term *term.Terminal
	// Error selects red over green, for command errors
	Error bool

	buf bytes.Buffer
}

func (l *TermLog) Write(p []byte) (int, error) {
	l.Lock()
	defer l.Unlock()

	for _, c := range p {
		l.buf.WriteByte(c)

		if c == flushChr || l.buf.Len() > outputLimit {
			l.flush()
		}
	}

	return len(p), nil
}

func (l *TermLog) flush() {
	t := l.Term
	color := t.Escape.Green

	if l.Error {
		color = t.Escape.Red
	}

	t.Write(color)
	t.Write(l.buf.Bytes())
	t.Write(t.Escape.Reset)

	l.buf.Reset()
}
