package io

import (
	"io"

	"github.com/ezrec/myvm/internal"
)

// Buffered is a finite, pre-supplied input. Bytes are delivered in the
// order they were supplied, and the input is never refilled.
type Buffered struct {
	Data []byte // Input as supplied.

	stack internal.Stack[byte] // Reversed copy of Data, consumed from the tail.
}

var _ Input = (*Buffered)(nil)

// Rewind restores the original input sequence.
func (bc *Buffered) Rewind() {
	bc.stack.Load(bc.Data)
}

// Unmarshal loads input data from a reader, replacing any existing data.
func (bc *Buffered) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	bc.Data = data
	bc.Rewind()

	return
}

// Receive pops the next byte.
func (bc *Buffered) Receive() (value byte, ok bool) {
	return bc.stack.Pop()
}

// Remaining returns the number of bytes not yet received.
func (bc *Buffered) Remaining() int {
	return bc.stack.Len()
}

// Interactive is always false; an exhausted Buffered input stays exhausted.
func (bc *Buffered) Interactive() bool {
	return false
}
