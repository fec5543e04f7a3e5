// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"

	"github.com/ezrec/myvm/io"
)

// Input is the input port interface.
type Input io.Input

// Output is the output port interface.
type Output io.Output

// Result is the outcome of a single step.
type Result int

//go:generate go tool stringer -linecomment -type=Result
const (
	RESULT_CONTINUE  = Result(0) // continue
	RESULT_HALTED    = Result(1) // halted
	RESULT_SUSPENDED = Result(2) // suspended
	RESULT_ERROR     = Result(3) // error
)

// Step fetches and executes the instruction at st.Pc.
//
// Running past the end of the program is the only way to halt. A move from an
// empty interactive input suspends, leaving the state untouched so the same
// instruction is retried on the next step.
func Step(st *State, prog Program, in Input, out Output) (result Result, err error) {
	if len(st.Register) != REGISTER_COUNT {
		return RESULT_ERROR, ErrWrongRegisterAmount
	}

	err = prog.Validate()
	if err != nil {
		return RESULT_ERROR, err
	}

	code, ok := prog.Fetch(st.Pc)
	if !ok {
		return RESULT_HALTED, nil
	}

	return Execute(st, code, in, out)
}

// Execute executes a single instruction at st.Pc.
func Execute(st *State, code Code, in Input, out Output) (result Result, err error) {
	pc := st.Pc
	next_pc := pc + 1

	defer func() {
		if err != nil {
			result = RESULT_ERROR
			err = &ErrFault{Pc: pc, Code: code, Err: err}
		}
	}()

	if len(st.Register) != REGISTER_COUNT {
		err = ErrWrongRegisterAmount
		return
	}

	switch code.Class() {
	case OP_LITERAL:
		st.Register[REG_LITERAL] = code.LiteralDecode()
	case OP_COND:
		var cond CodeCond
		cond, err = code.CondDecode()
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
			return
		}
		var jump bool
		jump, err = testCond(cond, st.Register[REG_RESULT])
		if err != nil {
			return
		}
		if jump {
			next_pc = int(st.Register[REG_LITERAL])
		}
	case OP_MOVE:
		var from CodeFrom
		var to CodeTo
		from, to, err = code.MoveDecode()
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
			return
		}
		var value uint8
		if index, ok := from.Register(); ok {
			value = st.Register[index]
		} else {
			var got bool
			if in != nil {
				value, got = in.Receive()
			}
			if !got && in != nil && !in.Interactive() {
				// Input closed after the empty receive may have queued a final byte.
				value, got = in.Receive()
			} else if !got && in != nil {
				// Retry this instruction once more input arrives.
				return RESULT_SUSPENDED, nil
			}
			if !got {
				err = ErrNotEnoughInput
				return
			}
		}
		if index, ok := to.Register(); ok {
			st.Register[index] = value
		} else if out != nil {
			err = out.Send(value)
			if err != nil {
				// The byte was consumed; the move is complete.
				st.Pc = next_pc
				if errors.Is(err, io.ErrUtf8Lexeme) {
					err = errors.Join(ErrInvalidUtf8Lexeme, err)
				}
				return
			}
		}
	case OP_ALU:
		var op CodeAluOp
		op, err = code.AluDecode()
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
			return
		}
		var value uint8
		value, err = doAlu(op, st.Register[REG_ALU_A], st.Register[REG_ALU_B])
		if err != nil {
			return
		}
		st.Register[REG_RESULT] = value
	default:
		err = ErrPrefixUnreachable
		return
	}

	st.Pc = next_pc

	return RESULT_CONTINUE, nil
}

// testCond evaluates a jump predicate. The flag is signed two's-complement.
func testCond(cond CodeCond, flag uint8) (jump bool, err error) {
	value := int8(flag)

	switch cond {
	case COND_NEVER:
		jump = false
	case COND_EZ:
		jump = value == 0
	case COND_GZ:
		jump = value > 0
	case COND_GEZ:
		jump = value >= 0
	case COND_ALWAYS:
		jump = true
	case COND_NZ:
		jump = value != 0
	case COND_LEZ:
		jump = value <= 0
	case COND_LZ:
		jump = value < 0
	default:
		err = ErrConditionalUnreachable
	}

	return
}

// doAlu performs the requested ALU action, and returns the output value,
// normalized to a byte modulo 256.
func doAlu(op CodeAluOp, a, b uint8) (output uint8, err error) {
	r1 := int(a)
	r2 := int(b)

	var result int
	switch op {
	case ALU_OP_ADD:
		result = r1 + r2
	case ALU_OP_AND:
		result = r1 & r2
	case ALU_OP_OR:
		result = r1 | r2
	case ALU_OP_XOR:
		result = r1 ^ r2
	case ALU_OP_SUB:
		result = r1 - r2
	case ALU_OP_NAND:
		result = ^(r1 & r2)
	case ALU_OP_NOR:
		result = ^(r1 | r2)
	case ALU_OP_XNOR:
		result = ^(r1 ^ r2)
	default:
		err = ErrArithmeticUnreachable
		return
	}

	if result < 0 {
		result += 256
	}
	output = uint8(result % 256)

	return
}
