// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package modem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointLifecycle(t *testing.T) {
	var e Endpoint

	assert.ErrorIs(t, e.Use("write"), ErrEndpointState)
	assert.ErrorIs(t, e.Close(), ErrEndpointState)

	require.NoError(t, e.Open())
	assert.Equal(t, Open, e.State())
	assert.NoError(t, e.Use("write"))
	assert.NoError(t, e.Done(nil))

	require.NoError(t, e.Close())
	assert.Equal(t, ClosedOK, e.State())
	assert.NoError(t, e.Close())
	assert.ErrorIs(t, e.Use("receive"), ErrEndpointState)
	assert.ErrorIs(t, e.Open(), ErrEndpointState)
}

func TestEndpointErrorIsTerminal(t *testing.T) {
	var e Endpoint
	require.NoError(t, e.Open())

	errIO := errors.New("reset by peer")
	assert.Same(t, errIO, e.Done(errIO))
	assert.Equal(t, ClosedError, e.State())

	assert.ErrorIs(t, e.Use("write"), ErrEndpointState)
	assert.NoError(t, e.Close())
	assert.Equal(t, ClosedError, e.State())
}

func TestErrorUnwrap(t *testing.T) {
	err := &Error{Op: "connect", Err: ErrSecureFault}

	assert.ErrorIs(t, err, ErrSecureFault)
	assert.Equal(t, "modem connect: coprocessor secure fault", err.Error())
}

func TestDefaultMode(t *testing.T) {
	m := DefaultMode()

	assert.True(t, m.LTE && m.LTEPSM && m.NBIoT && m.GNSS)
	assert.Equal(t, "none", m.Preference.String())
}

func TestEndpointClosingReleasesOnce(t *testing.T) {
	var e Endpoint

	_, err := e.Closing()
	assert.ErrorIs(t, err, ErrEndpointState)

	require.NoError(t, e.Open())

	release, err := e.Closing()
	require.NoError(t, err)
	assert.True(t, release)

	release, err = e.Closing()
	require.NoError(t, err)
	assert.False(t, release)

	var failed Endpoint
	require.NoError(t, failed.Open())
	_ = failed.Done(errors.New("reset by peer"))

	release, err = failed.Closing()
	require.NoError(t, err)
	assert.True(t, release)
	assert.Equal(t, ClosedError, failed.State())

	release, _ = failed.Closing()
	assert.False(t, release)
}
