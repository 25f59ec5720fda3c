// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"
)

// Console represents an SSH console instance.
type Console struct {
	// Banner is the login welcome banner
	Banner string
	// Help is the `help` command output
	Help string
	// Handler is the terminal command handler
	Handler func(*term.Terminal, string) error
	// Log is the console logger
	Log zerolog.Logger
	// Output, when set, is mirrored to the session terminal
	Output *Output
}

func (c *Console) session(conn io.ReadWriteCloser, t *term.Terminal) {
	defer conn.Close()

	if c.Output != nil {
		restore := c.Output.Mirror(&TermLog{Term: t})
		defer restore()
	}

	fmt.Fprintf(t, "%s\n", c.Banner)
	fmt.Fprintf(t, "%s\n", string(t.Escape.Cyan)+c.Help+string(t.Escape.Reset))

	errLog := &TermLog{Term: t, Error: true}

	for {
		cmd, err := t.ReadLine()

		if err == io.EOF {
			break
		}

		if err != nil {
			c.Log.Error().Err(err).Msg("readline error")
			continue
		}

		err = c.Handler(t, cmd)

		if err == io.EOF {
			break
		}

		if err != nil {
			fmt.Fprintf(errLog, "error: %v\n", err)
		}
	}

	c.Log.Info().Msg("closing ssh connection")
}

func (c *Console) handleChannel(newChannel ssh.NewChannel) {
	if t := newChannel.ChannelType(); t != "session" {
		_ = newChannel.Reject(ssh.UnknownChannelType, fmt.Sprintf("unknown channel type: %s", t))
		return
	}

	conn, requests, err := newChannel.Accept()

	if err != nil {
		c.Log.Error().Err(err).Msg("error accepting channel")
		return
	}

	t := term.NewTerminal(conn, "")
	t.SetPrompt(string(t.Escape.Red) + "> " + string(t.Escape.Reset))

	go c.session(conn, t)

	go func() {
		for req := range requests {
			reqSize := len(req.Payload)

			switch req.Type {
			case "shell":
				// do not accept payload commands
				if len(req.Payload) == 0 {
					_ = req.Reply(true, nil)
				}
			case "pty-req":
				// p10, 6.2.  Requesting a Pseudo-Terminal, RFC4254
				if reqSize < 4 {
					c.Log.Warn().Msg("malformed pty-req request")
					continue
				}

				termVariableSize := int(req.Payload[3])

				if reqSize < 4+termVariableSize+8 {
					c.Log.Warn().Msg("malformed pty-req request")
					continue
				}

				w := binary.BigEndian.Uint32(req.Payload[4+termVariableSize:])
				h := binary.BigEndian.Uint32(req.Payload[4+termVariableSize+4:])

				_ = t.SetSize(int(w), int(h))
				_ = req.Reply(true, nil)
			case "window-change":
				// p10, 6.7.  Window Dimension Change Message, RFC4254
				if reqSize < 8 {
					c.Log.Warn().Msg("malformed window-change request")
					continue
				}

				w := binary.BigEndian.Uint32(req.Payload)
				h := binary.BigEndian.Uint32(req.Payload[4:])

				_ = t.SetSize(int(w), int(h))
			default:
				if req.WantReply {
					_ = req.Reply(false, nil)
				}
			}
		}
	}()
}

func (c *Console) handleChannels(chans <-chan ssh.NewChannel) {
	for newChannel := range chans {
		go c.handleChannel(newChannel)
	}
}

func (c *Console) listen(listener net.Listener, srv *ssh.ServerConfig) {
	for {
		conn, err := listener.Accept()

		if errors.Is(err, net.ErrClosed) {
			return
		}

		if err != nil {
			c.Log.Error().Err(err).Msg("error accepting connection")
			continue
		}

		sshConn, chans, reqs, err := ssh.NewServerConn(conn, srv)

		if err != nil {
			c.Log.Error().Err(err).Msg("error accepting handshake")
			continue
		}

		c.Log.Info().
			Str("remote", sshConn.RemoteAddr().String()).
			Str("client", string(sshConn.ClientVersion())).
			Msg("new ssh connection")

		go ssh.DiscardRequests(reqs)
		go c.handleChannels(chans)
	}
}

// Start instantiates an SSH console on the given listener, it returns once
// the listener is serviced.
func (c *Console) Start(listener net.Listener) (err error) {
	if c.Handler == nil {
		return errors.New("missing console handler")
	}

	srv := &ssh.ServerConfig{
		NoClientAuth: true,
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)

	if err != nil {
		return fmt.Errorf("private key generation error: %v", err)
	}

	signer, err := ssh.NewSignerFromKey(key)

	if err != nil {
		return fmt.Errorf("key conversion error: %v", err)
	}

	c.Log.Info().
		Str("addr", listener.Addr().String()).
		Str("fingerprint", ssh.FingerprintSHA256(signer.PublicKey())).
		Msg("starting ssh server")

	srv.AddHostKey(signer)

	go c.listen(listener, srv)

	return
}
