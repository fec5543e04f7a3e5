package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fragments records each Write as a separate fragment.
type fragments []string

func (fr *fragments) Write(p []byte) (int, error) {
	*fr = append(*fr, string(p))
	return len(p), nil
}

func TestConsole_Ascii(t *testing.T) {
	assert := assert.New(t)

	var out fragments
	cc := &Console{Output: &out}

	assert.NoError(SendAll(cc, []byte("Hi!")...))
	assert.Equal(fragments{"H", "i", "!"}, out)
	assert.Empty(cc.Pending())
}

func TestConsole_Emoji(t *testing.T) {
	assert := assert.New(t)

	var out fragments
	cc := &Console{Output: &out}

	lexeme := []byte{0xF0, 0x9F, 0x98, 0x80}
	for n, value := range lexeme[:3] {
		assert.NoError(cc.Send(value))
		assert.Empty(out, "after byte %d", n+1)
		assert.Equal(lexeme[:n+1], cc.Pending())
	}

	assert.NoError(cc.Send(lexeme[3]))
	assert.Equal(fragments{"\U0001F600"}, out)
	assert.Empty(cc.Pending())
}

func TestConsole_MultiByte(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	cc := &Console{Output: buf}

	text := "é€ ok"
	assert.NoError(SendAll(cc, []byte(text)...))
	assert.Equal(text, buf.String())
}

func TestConsole_Invalid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		input  []byte
		failAt int
	}){
		{"continuation_lead", []byte{0x80}, 0},
		{"bad_lead", []byte{0xF8}, 0},
		{"lead_in_sequence", []byte{0xC3, 'a'}, 1},
		{"short_4", []byte{0xF0, 0x9F, 0x41}, 2},
		{"overlong", []byte{0xC0, 0x80}, 1},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, 2},
		{"too_large", []byte{0xF4, 0x90, 0x80, 0x80}, 3},
	}

	for _, entry := range table {
		var out fragments
		cc := &Console{Output: &out}

		for n, value := range entry.input {
			err := cc.Send(value)
			if n == entry.failAt {
				assert.ErrorIs(err, ErrUtf8Lexeme, entry.name)
				assert.Equal(ErrLexeme(entry.input[:n+1]), err, entry.name)
				assert.Empty(cc.Pending(), entry.name)
				break
			}
			assert.NoError(err, entry.name)
		}
		assert.Empty(out, entry.name)

		// Stream continues after the error.
		assert.NoError(cc.Send('z'), entry.name)
		assert.Equal(fragments{"z"}, out, entry.name)
	}
}

func TestConsole_Rewind(t *testing.T) {
	assert := assert.New(t)

	var out fragments
	cc := &Console{Output: &out}

	assert.NoError(cc.Send(0xE2))
	assert.Len(cc.Pending(), 1)

	cc.Rewind()
	assert.Empty(cc.Pending())

	assert.NoError(cc.Send('k'))
	assert.Equal(fragments{"k"}, out)
}

func TestConsole_NoOutput(t *testing.T) {
	assert := assert.New(t)

	cc := &Console{}
	assert.NoError(cc.Send('a'))
}
