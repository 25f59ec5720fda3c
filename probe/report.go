// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package probe

import (
	"bytes"
	"fmt"
	"net/netip"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/miekg/dns"
)

// Timing represents the duration of a sequence stage.
type Timing struct {
	Stage   Stage
	Elapsed time.Duration
}

// Report represents the result of a probe run, partially filled on failure.
type Report struct {
	// ID identifies the run in log lines
	ID      uuid.UUID
	Started time.Time
	Elapsed time.Duration

	// Stage is the final stage (Done or Failed)
	Stage Stage
	// FailedStage is the stage which failed
	FailedStage Stage
	Outcome     Outcome
	Err         error

	Link    LinkState
	Address netip.Addr

	// Response holds the single TCP receive
	Response []byte
	// Truncated is set when the TCP response filled the buffer
	Truncated bool

	// Reply holds the single UDP receive
	Reply  []byte
	Source netip.AddrPort
	// Answers holds the DNS answer records decoded from Reply
	Answers []string

	Timings []Timing
}

// DecodeReply parses a DNS response to the argument query identifier.
func DecodeReply(buf []byte, id uint16) (answers []string, err error) {
	msg := new(dns.Msg)

	if err = msg.Unpack(buf); err != nil {
		return
	}

	if !msg.Response || msg.Id != id {
		return nil, fmt.Errorf("unexpected message (id:%#.4x response:%v)", msg.Id, msg.Response)
	}

	if msg.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("query failed (%s)", dns.RcodeToString[msg.Rcode])
	}

	for _, rr := range msg.Answer {
		answers = append(answers, strings.ReplaceAll(rr.String(), "\t", " "))
	}

	return
}

// StatusLine returns the first line of the TCP response.
func (r *Report) StatusLine() string {
	line, _, _ := bytes.Cut(r.Response, []byte("\n"))
	return strings.TrimSpace(string(line))
}

func (r *Report) String() string {
	var buf bytes.Buffer

	w := tabwriter.NewWriter(&buf, 0, 8, 1, ' ', 0)

	fmt.Fprintf(w, "run\t%s\n", r.ID)
	fmt.Fprintf(w, "stage\t%s\n", r.Stage)

	if r.Stage == Failed {
		fmt.Fprintf(w, "failed\t%s (%s): %v\n", r.FailedStage, r.Outcome, r.Err)
	}

	fmt.Fprintf(w, "link\t%s\n", r.Link)

	if r.Address.IsValid() {
		fmt.Fprintf(w, "address\t%s\n", r.Address)
	}

	if len(r.Response) > 0 {
		fmt.Fprintf(w, "response\t%d bytes, %q", len(r.Response), r.StatusLine())

		if r.Truncated {
			fmt.Fprint(w, " (possibly truncated)")
		}

		fmt.Fprintln(w)
	}

	if r.Source.IsValid() {
		fmt.Fprintf(w, "reply\t%d bytes from %s\n", len(r.Reply), r.Source)
	}

	for _, a := range r.Answers {
		fmt.Fprintf(w, "answer\t%s\n", a)
	}

	for _, t := range r.Timings {
		fmt.Fprintf(w, "%s\t%v\n", t.Stage, t.Elapsed)
	}

	fmt.Fprintf(w, "elapsed\t%v\n", r.Elapsed)

	w.Flush()

	return buf.String()
}
