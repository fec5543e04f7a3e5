package vm

import (
	"fmt"
	"slices"
)

const (
	REG_LITERAL = 0 // Literal destination and jump target.
	REG_ALU_A   = 1
	REG_ALU_B   = 2
	REG_RESULT  = 3 // ALU result and jump condition.
)

// State is the register file and program counter of a machine.
type State struct {
	Register []uint8 // Register file, REGISTER_COUNT entries.
	Pc       int     // Index of the next instruction.
}

// NewState returns a zeroed machine state.
func NewState() State {
	return State{Register: make([]uint8, REGISTER_COUNT)}
}

// Reset zeros the registers and program counter.
func (st *State) Reset() {
	if len(st.Register) != REGISTER_COUNT {
		st.Register = make([]uint8, REGISTER_COUNT)
	}
	clear(st.Register)
	st.Pc = 0
}

// Clone returns a deep copy of the state.
func (st State) Clone() State {
	return State{Register: slices.Clone(st.Register), Pc: st.Pc}
}

// Equal returns true if both states hold the same registers and pc.
func (st State) Equal(other State) bool {
	return st.Pc == other.Pc && slices.Equal(st.Register, other.Register)
}

// String returns the current state as a string.
func (st State) String() (text string) {
	text = fmt.Sprintf("% 5s: %02X\n", "pc", st.Pc)
	for n, val := range st.Register {
		text += fmt.Sprintf("% 5s: %02X (%d)\n", fmt.Sprintf("r%d", n), val, int8(val))
	}

	return
}
