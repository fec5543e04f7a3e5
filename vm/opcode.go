// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"
	"fmt"
)

// Code is a single myVM instruction byte.
type Code uint8

// CodeClass is the type of opcode class, selected by the top two bits.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_LITERAL = CodeClass(0) // literal
	OP_COND    = CodeClass(1) // cond
	OP_MOVE    = CodeClass(2) // mov
	OP_ALU     = CodeClass(3) // alu
)

// CodeCond is a conditional jump predicate, tested against r3.
type CodeCond int

//go:generate go tool stringer -linecomment -type=CodeCond
const (
	COND_NEVER  = CodeCond(0b000) // nop
	COND_EZ     = CodeCond(0b001) // jez
	COND_GZ     = CodeCond(0b010) // jgz
	COND_GEZ    = CodeCond(0b011) // jgez
	COND_ALWAYS = CodeCond(0b100) // j
	COND_NZ     = CodeCond(0b101) // jnz
	COND_LEZ    = CodeCond(0b110) // jlez
	COND_LZ     = CodeCond(0b111) // jlz
)

// CodeAluOp is an ALU operation over r1 and r2.
type CodeAluOp int

//go:generate go tool stringer -linecomment -type=CodeAluOp
const (
	ALU_OP_ADD  = CodeAluOp(0b000) // add
	ALU_OP_AND  = CodeAluOp(0b001) // and
	ALU_OP_OR   = CodeAluOp(0b010) // or
	ALU_OP_XOR  = CodeAluOp(0b011) // xor
	ALU_OP_SUB  = CodeAluOp(0b100) // sub
	ALU_OP_NAND = CodeAluOp(0b101) // nand
	ALU_OP_NOR  = CodeAluOp(0b110) // nor
	ALU_OP_XNOR = CodeAluOp(0b111) // xnor
)

// CodeFrom is the source selector of a move.
type CodeFrom int

//go:generate go tool stringer -linecomment -type=CodeFrom
const (
	FROM_REG_R0   = CodeFrom(0) // r0
	FROM_REG_R1   = CodeFrom(1) // r1
	FROM_REG_R2   = CodeFrom(2) // r2
	FROM_REG_R3   = CodeFrom(3) // r3
	FROM_REG_R4   = CodeFrom(4) // r4
	FROM_REG_R5   = CodeFrom(5) // r5
	FROM_INPUT    = CodeFrom(6) // in
	FROM_RESERVED = CodeFrom(7) // reserved
)

// CodeTo is the destination selector of a move.
type CodeTo int

//go:generate go tool stringer -linecomment -type=CodeTo
const (
	TO_REG_R0   = CodeTo(0) // r0
	TO_REG_R1   = CodeTo(1) // r1
	TO_REG_R2   = CodeTo(2) // r2
	TO_REG_R3   = CodeTo(3) // r3
	TO_REG_R4   = CodeTo(4) // r4
	TO_REG_R5   = CodeTo(5) // r5
	TO_OUTPUT   = CodeTo(6) // out
	TO_RESERVED = CodeTo(7) // reserved
)

const (
	LITERAL_MAX = 0b111111 // Largest literal a single instruction can load.
	MIDDLE_MASK = 0b111000 // Bits that must be clear for cond and alu.
	LOW_MASK    = 0b000111
)

// Instruction is a fully decoded Code. Only the fields for Class are meaningful.
type Instruction struct {
	Class   CodeClass
	Literal uint8
	Cond    CodeCond
	AluOp   CodeAluOp
	From    CodeFrom
	To      CodeTo
}

// MakeCodeLiteral creates a load-literal instruction.
func MakeCodeLiteral(literal uint8) Code {
	return Code((uint8(OP_LITERAL) << 6) | (literal & LITERAL_MAX))
}

// MakeCodeCond creates a conditional jump instruction.
func MakeCodeCond(cond CodeCond) Code {
	return Code((uint8(OP_COND) << 6) | (uint8(cond) & LOW_MASK))
}

// MakeCodeMove creates a move instruction.
func MakeCodeMove(from CodeFrom, to CodeTo) Code {
	return Code((uint8(OP_MOVE) << 6) | ((uint8(from) & LOW_MASK) << 3) | (uint8(to) & LOW_MASK))
}

// MakeCodeAlu creates an arithmetic instruction.
func MakeCodeAlu(op CodeAluOp) Code {
	return Code((uint8(OP_ALU) << 6) | (uint8(op) & LOW_MASK))
}

// Class returns the operation class from the instruction byte.
func (code Code) Class() CodeClass {
	return CodeClass((code >> 6) & 0b11)
}

// LiteralDecode returns the literal carried by a load-literal instruction.
func (code Code) LiteralDecode() uint8 {
	return uint8(code) & LITERAL_MAX
}

// CondDecode decodes the jump predicate. The middle bits must be zero.
func (code Code) CondDecode() (cond CodeCond, err error) {
	if (code & MIDDLE_MASK) != 0 {
		err = ErrInvalidConditional
		return
	}
	cond = CodeCond(code & LOW_MASK)
	return
}

// AluDecode decodes the ALU operation. The middle bits must be zero.
func (code Code) AluDecode() (op CodeAluOp, err error) {
	if (code & MIDDLE_MASK) != 0 {
		err = ErrInvalidArithmetic
		return
	}
	op = CodeAluOp(code & LOW_MASK)
	return
}

// MoveDecode decodes the move source and destination selectors.
func (code Code) MoveDecode() (from CodeFrom, to CodeTo, err error) {
	from = CodeFrom((code >> 3) & LOW_MASK)
	to = CodeTo(code & LOW_MASK)
	if from == FROM_RESERVED {
		err = ErrInvalidMoveFrom
		return
	}
	if to == TO_RESERVED {
		err = ErrInvalidMoveTo
		return
	}
	return
}

// Decode maps one instruction byte to its decoded form.
// It is pure: the same byte always gives the same result.
func Decode(code Code) (inst Instruction, err error) {
	inst.Class = code.Class()

	switch inst.Class {
	case OP_LITERAL:
		inst.Literal = code.LiteralDecode()
	case OP_COND:
		inst.Cond, err = code.CondDecode()
	case OP_MOVE:
		inst.From, inst.To, err = code.MoveDecode()
	case OP_ALU:
		inst.AluOp, err = code.AluDecode()
	default:
		err = ErrPrefixUnreachable
	}

	if err != nil {
		err = errors.Join(ErrOpcode(code), err)
	}

	return
}

// Encode returns the instruction byte for a decoded instruction.
func (inst Instruction) Encode() (code Code) {
	switch inst.Class {
	case OP_LITERAL:
		code = MakeCodeLiteral(inst.Literal)
	case OP_COND:
		code = MakeCodeCond(inst.Cond)
	case OP_MOVE:
		code = MakeCodeMove(inst.From, inst.To)
	case OP_ALU:
		code = MakeCodeAlu(inst.AluOp)
	}

	return
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() (out string) {
	switch inst.Class {
	case OP_LITERAL:
		out = fmt.Sprintf("%d", inst.Literal)
	case OP_COND:
		out = inst.Cond.String()
	case OP_MOVE:
		out = fmt.Sprintf("mov %v %v", inst.From.String(), inst.To.String())
	case OP_ALU:
		out = inst.AluOp.String()
	}

	return
}

// String returns the assembly language representation of the instruction byte,
// or its binary form if it does not decode.
func (code Code) String() string {
	inst, err := Decode(code)
	if err != nil {
		return fmt.Sprintf("0b%08b", uint8(code))
	}

	return inst.String()
}

// Register returns the register index of a register source.
func (from CodeFrom) Register() (index int, ok bool) {
	if from >= FROM_REG_R0 && from <= FROM_REG_R5 {
		index = int(from - FROM_REG_R0)
		ok = true
	}
	return
}

// Register returns the register index of a register destination.
func (to CodeTo) Register() (index int, ok bool) {
	if to >= TO_REG_R0 && to <= TO_REG_R5 {
		index = int(to - TO_REG_R0)
		ok = true
	}
	return
}
