// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"

	"github.com/ezrec/myvm/asm"
	"github.com/ezrec/myvm/internal"
	"github.com/ezrec/myvm/io"
	"github.com/ezrec/myvm/vm"
)

// Mode is the state of the run driver.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IDLE = Mode(0) // idle
	MODE_STEP = Mode(1) // step
	MODE_RUN  = Mode(2) // run
)

// InputMode selects which input port the machine reads.
type InputMode int

//go:generate go tool stringer -linecomment -type=InputMode
const (
	INPUT_BUFFERED    = InputMode(0) // buffered
	INPUT_INTERACTIVE = InputMode(1) // interactive
	INPUT_TAPE        = InputMode(2) // tape
)

var _emulator_defines = map[string]string{
	"LEXEME_MAX": strconv.Itoa(io.LEXEME_MAX),
}

// Emulator state. Machine + program listing + IO ports.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Listing *asm.Listing // Reference to the currently loaded program listing.

	State vm.State // Registers and program counter.

	Buffered    io.Buffered    // Pre-supplied input.
	Interactive io.Interactive // Input appended by the host while running.
	Tape        io.Tape        // Streamed input.
	Console     io.Console     // UTF-8 output.

	InputMode      InputMode // Input port selection.
	Mode           Mode      // Current driver mode.
	Steps          int       // Instructions completed since a reset.
	StepLimit      int       // If non-zero, the most instructions allowed since a reset.
	LexemeTolerant bool      // If set, Run continues past invalid UTF-8 output.

	result vm.Result
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Listing: &asm.Listing{},
		State:   vm.NewState(),
	}

	emu.Interactive.Capacity = io.INTERACTIVE_DEFAULT_CAPACITY

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		vm.Defines(),
		emu.Interactive.Defines(),
	)
}

// Input returns the input port selected by InputMode.
func (emu *Emulator) Input() vm.Input {
	switch emu.InputMode {
	case INPUT_INTERACTIVE:
		return &emu.Interactive
	case INPUT_TAPE:
		return &emu.Tape
	default:
		return &emu.Buffered
	}
}

// Load sets the listing, uses its input segment as the initial input, and
// resets the emulator.
func (emu *Emulator) Load(listing *asm.Listing) (err error) {
	emu.Listing = listing
	emu.Buffered.Data = listing.Input
	emu.Interactive.Initial = listing.Input

	return emu.Reset()
}

// Reset the machine state, output, and input to their initial values.
func (emu *Emulator) Reset() (err error) {
	err = emu.Listing.Program.Validate()
	if err != nil {
		return
	}

	emu.State.Reset()
	emu.Console.Rewind()
	emu.Input().Rewind()
	emu.Steps = 0
	emu.Mode = MODE_IDLE
	emu.result = vm.RESULT_CONTINUE

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions, %v input", len(emu.Listing.Program), emu.InputMode)
	}

	return
}

// LineNo returns the current line number for the next instruction.
func (emu *Emulator) LineNo() int {
	return emu.Listing.LineNo(emu.State.Pc)
}

// Waiting is true if the last step suspended for more input.
func (emu *Emulator) Waiting() bool {
	return emu.result == vm.RESULT_SUSPENDED
}

// Halted is true if the last step ran past the end of the program.
func (emu *Emulator) Halted() bool {
	return emu.result == vm.RESULT_HALTED
}

// step executes one instruction, without changing the mode.
func (emu *Emulator) step() (result vm.Result, err error) {
	pc := emu.State.Pc
	lineno := emu.LineNo()

	defer func() {
		emu.result = result
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	if emu.StepLimit > 0 && emu.Steps >= emu.StepLimit {
		result = vm.RESULT_ERROR
		err = ErrStepLimit
		return
	}

	if emu.Verbose {
		code, ok := emu.Listing.Program.Fetch(pc)
		if ok {
			log.Printf("%02x: %v", pc, code)
		}
	}

	result, err = vm.Step(&emu.State, emu.Listing.Program, emu.Input(), &emu.Console)

	switch result {
	case vm.RESULT_CONTINUE:
		emu.Steps++
	case vm.RESULT_SUSPENDED:
		if emu.Verbose {
			log.Printf("emulator: waiting for input at %02x", pc)
		}
	case vm.RESULT_HALTED:
		if emu.Verbose {
			log.Printf("emulator: halted after %d steps", emu.Steps)
		}
	case vm.RESULT_ERROR:
		// A bad output lexeme still completes the move.
		if emu.State.Pc != pc {
			emu.Steps++
		}
	}

	return
}

// Step performs a single instruction, and returns to idle.
func (emu *Emulator) Step() (result vm.Result, err error) {
	emu.Mode = MODE_STEP
	defer func() { emu.Mode = MODE_IDLE }()

	return emu.step()
}

// Run executes instructions until the machine halts, suspends for input,
// fails, or ctx is done. A done ctx returns RESULT_CONTINUE with the context
// error; the run may be resumed.
func (emu *Emulator) Run(ctx context.Context) (result vm.Result, err error) {
	emu.Mode = MODE_RUN
	defer func() { emu.Mode = MODE_IDLE }()

	for {
		err = ctx.Err()
		if err != nil {
			result = vm.RESULT_CONTINUE
			return
		}

		result, err = emu.step()
		switch result {
		case vm.RESULT_CONTINUE:
			continue
		case vm.RESULT_ERROR:
			if emu.LexemeTolerant && !vm.KindOf(err).Fatal() {
				if emu.Verbose {
					log.Printf("emulator: %v", err)
				}
				continue
			}
		}

		return
	}
}

// RunWait runs until the machine halts or fails, waiting for interactive
// input whenever the machine suspends.
func (emu *Emulator) RunWait(ctx context.Context) (result vm.Result, err error) {
	for {
		result, err = emu.Run(ctx)
		if result != vm.RESULT_SUSPENDED {
			return
		}

		err = emu.Interactive.Wait(ctx)
		if err != nil {
			return
		}
	}
}

// String returns the current emulator state as a string.
func (emu *Emulator) String() (text string) {
	text = fmt.Sprintf("% 5s: %v\n", "mode", emu.Mode)
	text += fmt.Sprintf("% 5s: %v\n", "input", emu.InputMode)
	text += fmt.Sprintf("% 5s: %d\n", "steps", emu.Steps)
	text += fmt.Sprintf("% 5s: %d\n", "line", emu.LineNo())
	text += emu.State.String()

	return
}
