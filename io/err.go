package io

import (
	"errors"

	"github.com/ezrec/myvm/translate"
)

var f = translate.From

var (
	// Port errors
	ErrChannelFull   = errors.New(f("channel full"))
	ErrChannelClosed = errors.New(f("channel closed"))
	ErrUtf8Lexeme    = errors.New(f("invalid utf-8 lexeme"))
)

// ErrLexeme reports the bytes discarded from a broken UTF-8 sequence.
type ErrLexeme []byte

func (err ErrLexeme) Error() string {
	return f("invalid utf-8 lexeme [% x]", []byte(err))
}

func (err ErrLexeme) Is(target error) bool {
	return target == ErrUtf8Lexeme
}
