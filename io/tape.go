package io

import (
	"io"
)

// Tape reads input bytes sequentially from an io.Reader.
// End of stream, or any read error, exhausts the tape.
type Tape struct {
	Input io.Reader

	err error
}

var _ Input = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive reads the next byte from the input stream.
func (tc *Tape) Receive() (value byte, ok bool) {
	if tc.Input == nil || tc.err != nil {
		return
	}

	var one [1]byte
	for {
		var n int
		n, tc.err = tc.Input.Read(one[:])
		if n == 1 {
			// A short read with an error still delivers the byte.
			value = one[0]
			ok = true
			return
		}
		if tc.err != nil {
			return
		}
	}
}

// Err returns the error that exhausted the tape, if it was not io.EOF.
func (tc *Tape) Err() error {
	if tc.err == io.EOF {
		return nil
	}
	return tc.err
}

// Interactive is always false; a tape at end of stream stays there.
func (tc *Tape) Interactive() bool {
	return false
}
