package io

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: bytes.NewBuffer([]byte{0x55, 0xAA, 0xFF})}
	tape.Rewind()

	assert.False(tape.Interactive())
	assert.Equal([]byte{0x55, 0xAA, 0xFF}, slices.Collect(ReceiveAll(tape)))

	_, ok := tape.Receive()
	assert.False(ok)
	assert.NoError(tape.Err())

	// Rewind is not possible on a tape.
	tape.Rewind()
	_, ok = tape.Receive()
	assert.False(ok)
}

type failReader struct{}

func (failReader) Read(p []byte) (int, error) {
	return 0, errors.New("boom")
}

func TestTape_Error(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: failReader{}}
	_, ok := tape.Receive()
	assert.False(ok)
	assert.EqualError(tape.Err(), "boom")

	tape = &Tape{}
	_, ok = tape.Receive()
	assert.False(ok)
}
