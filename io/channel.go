// Package io provides the input and output ports of the myVM machine.
//
// Inputs deliver single bytes to move instructions: a pre-supplied Buffered
// sequence, an Interactive queue fed between steps by another goroutine, or a
// Tape reading from an io.Reader. The Console output reassembles bytes into
// UTF-8 text before writing it.
package io

// Input is the interface of an input port.
type Input interface {
	// Rewind restores the input to its initial contents.
	Rewind()
	// Receive returns the next input byte, or ok == false if none is available.
	Receive() (value byte, ok bool)
	// Interactive returns true if an empty input may be refilled later.
	Interactive() bool
}

// Output is the interface of an output port.
type Output interface {
	// Rewind discards any pending output state.
	Rewind()
	// Send writes a single byte to the port.
	Send(value byte) error
}
