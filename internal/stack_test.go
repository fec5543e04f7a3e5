package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[byte]{}
	assert.True(s.Empty())

	s.Push(0x12)
	assert.False(s.Empty())
	assert.Equal(1, s.Len())
	assert.Equal(byte(0x12), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[byte]{}
	s.Push(0x12, 0xAB)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(byte(0xAB), val)
	assert.Equal(1, s.Len())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(byte(0x12), val)
	assert.True(s.Empty())

	val, ok = s.Pop()
	assert.False(ok)
	assert.Equal(byte(0), val)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[byte]{}
	_, ok := s.Peek()
	assert.False(ok)

	s.Push(0x12, 0xAB)
	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(byte(0xAB), val)
	assert.Equal(2, s.Len())
}

func TestStack_Load(t *testing.T) {
	assert := assert.New(t)

	input := []byte{1, 2, 3}

	s := &Stack[byte]{}
	s.Push(9)
	s.Load(input)
	assert.Equal([]byte{1, 2, 3}, input)

	var got []byte
	for v, ok := s.Pop(); ok; v, ok = s.Pop() {
		got = append(got, v)
	}
	assert.Equal(input, got)

	s.Push(4)
	s.Reset()
	assert.True(s.Empty())
}
