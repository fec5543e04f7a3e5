package vm

import (
	"iter"
	"maps"
	"strconv"
)

const (
	PROGRAM_MAX    = 255 // Maximum program length, in instructions.
	REGISTER_COUNT = 6   // Number of registers in the register file.
)

var _vm_defines = map[string]string{
	"LITERAL_MAX":    strconv.Itoa(LITERAL_MAX),
	"PROGRAM_MAX":    strconv.Itoa(PROGRAM_MAX),
	"REGISTER_COUNT": strconv.Itoa(REGISTER_COUNT),
}

// Defines returns the machine constants visible to assembled programs.
func Defines() iter.Seq2[string, string] {
	return maps.All(_vm_defines)
}

// Program is an assembled myVM program.
type Program []Code

// NewProgram validates a list of instruction values and returns the program.
func NewProgram(values ...int) (prog Program, err error) {
	prog = make(Program, 0, len(values))
	for _, value := range values {
		if value < 0 || value > 0xff {
			err = ErrInstructionNotU8
			return
		}
		prog = append(prog, Code(value))
	}

	err = prog.Validate()

	return
}

// Validate checks the structural requirements of a program.
func (prog Program) Validate() (err error) {
	switch {
	case len(prog) == 0:
		err = ErrProgramEmpty
	case len(prog) > PROGRAM_MAX:
		err = ErrProgramTooLong
	}

	return
}

// Fetch returns the instruction at pc. ok is false past the end of the program.
func (prog Program) Fetch(pc int) (code Code, ok bool) {
	if pc < 0 || pc >= len(prog) {
		return
	}

	return prog[pc], true
}

// Listing returns an iterator over the program's addresses and instructions.
func (prog Program) Listing() iter.Seq2[int, Code] {
	return func(yield func(pc int, code Code) bool) {
		for pc, code := range prog {
			if !yield(pc, code) {
				return
			}
		}
	}
}
