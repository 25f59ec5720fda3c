// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package probe

// HTTPRequest is the TCP probe request.
const HTTPRequest = "GET / HTTP/1.0\nHost: google.com\r\n\r\n"

// DNSQuery is the UDP probe payload, a standard query (id 0xdb42, recursion
// desired) for the www.northeastern.edu A record.
var DNSQuery = [...]byte{
	// header
	0xdb, 0x42, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	// question
	0x03, 0x77, 0x77, 0x77,
	0x0c, 0x6e, 0x6f, 0x72, 0x74, 0x68, 0x65, 0x61, 0x73, 0x74, 0x65, 0x72, 0x6e,
	0x03, 0x65, 0x64, 0x75,
	0x00,
	0x00, 0x01, 0x00, 0x01,
}
