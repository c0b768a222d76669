// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package framing splits a byte stream into newline-terminated
// records.
//
// Stream reads deliver chunks with no relation to record boundaries:
// one chunk may hold half a record, several records, or a single
// byte. A [Framer] accumulates chunks and releases each record once
// its terminating '\n' has arrived. Records have no length limit.
package framing

import "bytes"

// Framer holds bytes received but not yet terminated by a newline.
// The zero value is ready to use. A Framer is not safe for concurrent
// use; it belongs to the connection that feeds it.
type Framer struct {
	buffer []byte
}

// Feed appends chunk to the buffer and returns every complete record
// now available, in order, without the trailing newline. Empty
// records (consecutive newlines) are dropped. Bytes after the last
// newline stay buffered for the next call.
//
// Returned slices do not alias the Framer's buffer or chunk.
func (f *Framer) Feed(chunk []byte) [][]byte {
	f.buffer = append(f.buffer, chunk...)

	var records [][]byte
	for {
		index := bytes.IndexByte(f.buffer, '\n')
		if index < 0 {
			break
		}
		if index > 0 {
			records = append(records, bytes.Clone(f.buffer[:index]))
		}
		f.buffer = f.buffer[index+1:]
	}

	// Compact so a long-lived connection does not pin the backing
	// array of every record it has ever received.
	if len(f.buffer) == 0 {
		f.buffer = nil
	} else if cap(f.buffer) > 2*len(f.buffer)+4096 {
		f.buffer = bytes.Clone(f.buffer)
	}
	return records
}

// Buffered returns the number of bytes waiting for a newline.
func (f *Framer) Buffered() int {
	return len(f.buffer)
}

// Reset discards any partial record.
func (f *Framer) Reset() {
	f.buffer = nil
}
