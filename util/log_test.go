// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

type rw struct {
	io.Reader
	io.Writer
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, "modem_os", LogConfig{Level: "warn", NoColor: true})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("stage", "done").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "app=modem_os")
	assert.Contains(t, out, "stage=done")

	_, err = NewLogger(&buf, "modem_os", LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestLogConfigEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, " DEBUG ")
	t.Setenv(EnvLogNoColor, "true")

	cfg := LogConfig{Level: "info"}
	cfg.ApplyEnv()

	assert.Equal(t, LogConfig{Level: "debug", NoColor: true}, cfg)

	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogNoColor, "maybe")

	cfg = LogConfig{Level: "info"}
	cfg.ApplyEnv()

	assert.Equal(t, LogConfig{Level: "info"}, cfg)
}

func TestOutputMirror(t *testing.T) {
	var out, mirror bytes.Buffer

	o := &Output{Out: &out}
	restore := o.Mirror(&mirror)

	_, err := o.Write([]byte("one\n"))
	require.NoError(t, err)

	restore()

	_, err = o.Write([]byte("two\n"))
	require.NoError(t, err)

	assert.Equal(t, "one\ntwo\n", out.String())
	assert.Equal(t, "one\n", mirror.String())
}

func TestTermLog(t *testing.T) {
	var out bytes.Buffer

	tm := term.NewTerminal(rw{strings.NewReader(""), &out}, "")
	l := &TermLog{Term: tm}

	_, _ = l.Write([]byte("abc"))
	assert.Zero(t, out.Len())

	_, _ = l.Write([]byte("def\n"))

	var exp bytes.Buffer
	exp.Write(tm.Escape.Green)
	exp.WriteString("abcdef\r\n")
	exp.Write(tm.Escape.Reset)

	assert.Equal(t, exp.String(), out.String())

	// long lines are flushed at the output limit
	out.Reset()
	l.Error = true
	_, _ = l.Write(bytes.Repeat([]byte{'x'}, outputLimit+1))

	assert.True(t, bytes.HasPrefix(out.Bytes(), tm.Escape.Red))
	assert.Equal(t, outputLimit+1, bytes.Count(out.Bytes(), []byte{'x'}))
}

func TestOutputMirrorOverlapping(t *testing.T) {
	var a, b, c bytes.Buffer

	o := &Output{}
	restoreA := o.Mirror(&a)
	restoreB := o.Mirror(&b)

	_, _ = o.Write([]byte("one\n"))

	// the first session ends while the second is active
	restoreA()
	_, _ = o.Write([]byte("two\n"))

	restoreC := o.Mirror(&c)
	restoreB()
	restoreB()
	_, _ = o.Write([]byte("three\n"))
	restoreC()
	_, _ = o.Write([]byte("four\n"))

	assert.Equal(t, "one\n", a.String())
	assert.Equal(t, "one\ntwo\n", b.String())
	assert.Equal(t, "three\n", c.String())
}
