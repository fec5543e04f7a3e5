package io

import (
	"io"
	"unicode/utf8"
)

const (
	LEXEME_MAX = utf8.UTFMax // Longest UTF-8 sequence, in bytes.
)

// Console is an output port that reassembles single bytes into UTF-8
// encoded runes. Each complete rune is written to Output as one fragment.
//
// At most LEXEME_MAX bytes are ever pending. A sequence that cannot be
// completed into a valid rune is reported as ErrLexeme, and its bytes are
// discarded.
type Console struct {
	Output io.Writer

	pending [LEXEME_MAX]byte
	size    int
}

var _ Output = (*Console)(nil)

// Rewind discards any partially received rune.
func (cc *Console) Rewind() {
	cc.size = 0
}

// Pending returns the bytes of the partially received rune.
func (cc *Console) Pending() []byte {
	return cc.pending[:cc.size]
}

// lexemeLength returns the total length of the sequence started by lead,
// or 0 if lead cannot start one.
func lexemeLength(lead byte) int {
	switch {
	case lead&0b1000_0000 == 0b0000_0000:
		return 1
	case lead&0b1110_0000 == 0b1100_0000:
		return 2
	case lead&0b1111_0000 == 0b1110_0000:
		return 3
	case lead&0b1111_1000 == 0b1111_0000:
		return 4
	}

	return 0
}

// Send appends a byte to the pending rune, writing the rune to Output once
// it is complete.
func (cc *Console) Send(value byte) (err error) {
	cc.pending[cc.size] = value
	cc.size++

	lexeme := cc.pending[:cc.size]
	want := lexemeLength(lexeme[0])

	switch {
	case want == 0, cc.size > 1 && utf8.RuneStart(value):
		// Bad lead byte, or a new lead byte where a continuation belongs.
		err = ErrLexeme(append([]byte(nil), lexeme...))
		cc.size = 0
	case cc.size < want:
		// Wait for more.
	case !utf8.Valid(lexeme):
		// Overlong encodings, surrogates and out of range runes.
		err = ErrLexeme(append([]byte(nil), lexeme...))
		cc.size = 0
	default:
		cc.size = 0
		if cc.Output != nil {
			_, err = cc.Output.Write(lexeme)
		}
	}

	return
}
