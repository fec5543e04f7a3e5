package asm

import (
	"errors"

	"github.com/ezrec/myvm/translate"
)

var f = translate.From

var (
	ErrEquateSyntax       = errors.New(f("constant syntax"))
	ErrEquateDuplicate    = errors.New(f("constant duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f("macro syntax"))
	ErrMacroNesting       = errors.New(f("macro in macro prohibited"))
	ErrMacroDuplicate     = errors.New(f("macro duplicated"))
	ErrMacroLonely        = errors.New(f("macro without end_macro:"))
	ErrMacroLonelyEnd     = errors.New(f("end_macro: without macro"))
	ErrMacroArgs          = errors.New(f("macro argument count mismatch"))
	ErrMacroDepth         = errors.New(f("macro expansion too deep"))
	ErrSegmentOrder       = errors.New(f("input: must come before program:"))
	ErrSegmentDuplicate   = errors.New(f("segment duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrMacroMissing string

func (em ErrMacroMissing) Error() string {
	return f("macro %v is not defined", string(em))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrLiteralRange is a literal that does not fit in a load-literal instruction.
type ErrLiteralRange int

func (err ErrLiteralRange) Error() string {
	return f("literal %v is not between 0 and 63", int(err))
}

// ErrInputToken is a token in the input segment that is not a byte.
type ErrInputToken string

func (err ErrInputToken) Error() string {
	return f("'%v' is not an input byte", string(err))
}

type ErrMoveSource string

func (err ErrMoveSource) Error() string {
	return f("'%v' is not a move source", string(err))
}

type ErrMoveTarget string

func (err ErrMoveTarget) Error() string {
	return f("'%v' is not a move target", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
