package vm

import (
	"errors"

	"github.com/ezrec/myvm/translate"
)

var f = translate.From

// ErrKind is the kind of a machine error. Its String() is the stable kind name,
// its Error() the human readable message.
type ErrKind int

//go:generate go tool stringer -linecomment -type=ErrKind
const (
	ERR_NONE                    = ErrKind(0)  // none
	ERR_PROGRAM_EMPTY           = ErrKind(1)  // program-is-empty
	ERR_PROGRAM_TOO_LONG        = ErrKind(2)  // program-is-too-long
	ERR_INSTRUCTION_NOT_U8      = ErrKind(3)  // instruction-not-u8
	ERR_WRONG_REGISTER_AMOUNT   = ErrKind(4)  // wrong-register-amount
	ERR_INVALID_CONDITIONAL     = ErrKind(5)  // invalid-conditional
	ERR_INVALID_ARITHMETIC      = ErrKind(6)  // invalid-arithmetic
	ERR_INVALID_MOVE_FROM       = ErrKind(7)  // invalid-move-from
	ERR_INVALID_MOVE_TO         = ErrKind(8)  // invalid-move-to
	ERR_CONDITIONAL_UNREACHABLE = ErrKind(9)  // conditional-unreachable
	ERR_ARITHMETIC_UNREACHABLE  = ErrKind(10) // arithmetic-unreachable
	ERR_PREFIX_UNREACHABLE      = ErrKind(11) // prefix-unreachable
	ERR_NOT_ENOUGH_INPUT        = ErrKind(12) // not-enough-input
	ERR_INVALID_UTF8_LEXEME     = ErrKind(13) // invalid-utf8-lexeme
)

var _errKindMessage = map[ErrKind]string{
	ERR_NONE:                    "no error",
	ERR_PROGRAM_EMPTY:           "program must contain at least one instruction",
	ERR_PROGRAM_TOO_LONG:        "program cannot be longer than 255 instructions",
	ERR_INSTRUCTION_NOT_U8:      "every instruction must be an integer between 0 and 255",
	ERR_WRONG_REGISTER_AMOUNT:   "register file must have exactly 6 registers",
	ERR_INVALID_CONDITIONAL:     "bad conditional instruction, the middle three bits must be zero",
	ERR_INVALID_ARITHMETIC:      "bad arithmetic instruction, the middle three bits must be zero",
	ERR_INVALID_MOVE_FROM:       "0b111 is not a valid source for moving",
	ERR_INVALID_MOVE_TO:         "0b111 is not a valid target for moving",
	ERR_CONDITIONAL_UNREACHABLE: "conditional unreachable",
	ERR_ARITHMETIC_UNREACHABLE:  "arithmetic unreachable",
	ERR_PREFIX_UNREACHABLE:      "instruction prefix unreachable",
	ERR_NOT_ENOUGH_INPUT:        "there were not enough bytes in input to satisfy the program",
	ERR_INVALID_UTF8_LEXEME:     "output bytes are not a valid utf-8 sequence",
}

func (ek ErrKind) Error() string {
	msg, ok := _errKindMessage[ek]
	if !ok {
		return f("unknown error %v", int(ek))
	}
	return f(msg)
}

// Fatal is false only for the kinds a driver may choose to continue past.
func (ek ErrKind) Fatal() bool {
	return ek != ERR_INVALID_UTF8_LEXEME
}

var (
	// Structural errors
	ErrProgramEmpty        error = ERR_PROGRAM_EMPTY
	ErrProgramTooLong      error = ERR_PROGRAM_TOO_LONG
	ErrInstructionNotU8    error = ERR_INSTRUCTION_NOT_U8
	ErrWrongRegisterAmount error = ERR_WRONG_REGISTER_AMOUNT

	// Instruction decode errors
	ErrInvalidConditional     error = ERR_INVALID_CONDITIONAL
	ErrInvalidArithmetic      error = ERR_INVALID_ARITHMETIC
	ErrInvalidMoveFrom        error = ERR_INVALID_MOVE_FROM
	ErrInvalidMoveTo          error = ERR_INVALID_MOVE_TO
	ErrConditionalUnreachable error = ERR_CONDITIONAL_UNREACHABLE
	ErrArithmeticUnreachable  error = ERR_ARITHMETIC_UNREACHABLE
	ErrPrefixUnreachable      error = ERR_PREFIX_UNREACHABLE

	// Port errors
	ErrNotEnoughInput    error = ERR_NOT_ENOUGH_INPUT
	ErrInvalidUtf8Lexeme error = ERR_INVALID_UTF8_LEXEME
)

// KindOf returns the machine error kind wrapped by err, or ERR_NONE.
func KindOf(err error) (kind ErrKind) {
	if err == nil {
		return ERR_NONE
	}
	if !errors.As(err, &kind) {
		kind = ERR_NONE
	}
	return
}

// ErrOpcode marks an error as caused by decoding a specific instruction byte.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0b%08b", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrFault is an error raised while executing the instruction at Pc.
type ErrFault struct {
	Pc   int
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	return f("instruction %d (0b%08b) %v", err.Pc, uint8(err.Code), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
