package emulator

import (
	"bytes"
	"context"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/myvm/asm"
	"github.com/ezrec/myvm/vm"
)

func loadSource(t *testing.T, emu *Emulator, source string) (output *bytes.Buffer) {
	assembler := &asm.Assembler{}
	for key, value := range emu.Defines() {
		assembler.Predefine(key, value)
	}

	listing, err := assembler.Parse(strings.NewReader(source))
	require.NoError(t, err)

	output = &bytes.Buffer{}
	emu.Console.Output = output

	require.NoError(t, emu.Load(listing))

	return
}

func loadFile(t *testing.T, emu *Emulator, name string) (output *bytes.Buffer) {
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return loadSource(t, emu, string(data))
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Equal(MODE_IDLE, emu.Mode)
	assert.Equal(INPUT_BUFFERED, emu.InputMode)
	assert.Equal(vm.REGISTER_COUNT, len(emu.State.Register))

	// Nothing is loaded yet.
	assert.ErrorIs(emu.Reset(), vm.ErrProgramEmpty)

	defines := maps.Collect(emu.Defines())
	assert.Equal("63", defines["LITERAL_MAX"])
	assert.Equal("4", defines["LEXEME_MAX"])
	assert.NotContains(defines, "INPUT_LENGTH")
	assert.Equal("4096", defines["INPUT_CAPACITY"])
}

func TestEmulator_Examples(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		file   string
		output string
		steps  int
	}){
		{"hello_world.myvm", "HELLO WORLD!", 52},
		{"print_emoji.myvm", "\U0001F600", 20},
		{"echo.myvm", "hi!", 3},
		{"countdown.myvm", "9876543210", 122},
	}

	for _, entry := range table {
		emu := NewEmulator()
		output := loadFile(t, emu, entry.file)

		result, err := emu.Run(context.Background())
		assert.NoError(err, entry.file)
		assert.Equal(vm.RESULT_HALTED, result, entry.file)
		assert.True(emu.Halted(), entry.file)
		assert.Equal(MODE_IDLE, emu.Mode, entry.file)
		assert.Equal(entry.output, output.String(), entry.file)
		assert.Equal(entry.steps, emu.Steps, entry.file)
	}
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := loadFile(t, emu, "echo.myvm")

	_, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal("hi!", output.String())

	assert.NoError(emu.Reset())
	assert.True(emu.State.Equal(vm.NewState()))
	assert.Equal(0, emu.Steps)
	assert.Equal(3, emu.Buffered.Remaining())
	assert.False(emu.Halted())

	output.Reset()
	result, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(vm.RESULT_HALTED, result)
	assert.Equal("hi!", output.String())
}

func TestEmulator_Step(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := loadSource(t, emu, "program:\n63\nmov 0 out\n")

	assert.Equal(2, emu.LineNo())

	result, err := emu.Step()
	assert.NoError(err)
	assert.Equal(vm.RESULT_CONTINUE, result)
	assert.Equal(MODE_IDLE, emu.Mode)
	assert.Equal(1, emu.State.Pc)
	assert.Equal(uint8(63), emu.State.Register[0])
	assert.Equal(3, emu.LineNo())
	assert.Equal("", output.String())

	result, err = emu.Step()
	assert.NoError(err)
	assert.Equal(vm.RESULT_CONTINUE, result)
	assert.Equal("?", output.String())

	result, err = emu.Step()
	assert.NoError(err)
	assert.Equal(vm.RESULT_HALTED, result)
	assert.Equal(2, emu.Steps)

	text := emu.String()
	assert.Contains(text, "mode: idle")
	assert.Contains(text, "steps: 2")
	assert.Contains(text, "r0: 3F (63)")
}

func TestEmulator_NotEnoughInput(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := loadSource(t, emu, "input:\n'a'\nprogram:\nmov in out\nmov in out\n")

	result, err := emu.Run(context.Background())
	assert.Equal(vm.RESULT_ERROR, result)
	assert.ErrorIs(err, vm.ErrNotEnoughInput)
	assert.Equal(MODE_IDLE, emu.Mode)
	assert.Equal(1, emu.State.Pc)
	assert.Equal("a", output.String())

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(5, runtime.LineNo)
	assert.Equal(1, runtime.Pc)
}

func TestEmulator_Interactive(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InputMode = INPUT_INTERACTIVE
	output := loadSource(t, emu, "input:\n'a'\nprogram:\nmov in out\nmov in 5\nmov in out\n")

	result, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(vm.RESULT_SUSPENDED, result)
	assert.True(emu.Waiting())
	assert.Equal(MODE_IDLE, emu.Mode)
	assert.Equal(1, emu.State.Pc)
	assert.Equal("a", output.String())

	// Suspension is stable until input arrives.
	before := emu.State.Clone()
	result, err = emu.Step()
	assert.NoError(err)
	assert.Equal(vm.RESULT_SUSPENDED, result)
	assert.True(before.Equal(emu.State))
	assert.Equal(1, emu.Steps)

	assert.NoError(emu.Interactive.Append('b', 'c'))
	result, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(vm.RESULT_HALTED, result)
	assert.False(emu.Waiting())
	assert.Equal(uint8('b'), emu.State.Register[5])
	assert.Equal("ac", output.String())

	// Reset restores the input segment.
	assert.NoError(emu.Reset())
	assert.Equal(1, emu.Interactive.Len())
}

func TestEmulator_InputLength(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	loadSource(t, emu, "input:\n1 2 3\nprogram:\nINPUT_LENGTH\n")

	assert.Equal(vm.Program{3}, emu.Listing.Program)
	assert.Equal(3, emu.Buffered.Remaining())
}

func TestEmulator_Interactive_LargeInput(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InputMode = INPUT_INTERACTIVE

	input := bytes.Repeat([]byte{'z'}, 5000)
	err := emu.Load(&asm.Listing{
		Program: vm.Program{vm.MakeCodeMove(vm.FROM_INPUT, vm.TO_REG_R1)},
		Input:   input,
		Lines:   []int{1},
	})
	assert.NoError(err)
	assert.Equal(len(input), emu.Interactive.Len())

	_, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(len(input)-1, emu.Interactive.Len())

	assert.NoError(emu.Reset())
	assert.Equal(len(input), emu.Interactive.Len())
}

func TestEmulator_RunWait(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InputMode = INPUT_INTERACTIVE
	output := loadSource(t, emu, "mov in out\nmov in out\nmov in out\n")

	go func() {
		for _, c := range []byte("xyz") {
			time.Sleep(5 * time.Millisecond)
			_ = emu.Interactive.Append(c)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := emu.RunWait(ctx)
	assert.NoError(err)
	assert.Equal(vm.RESULT_HALTED, result)
	assert.Equal("xyz", output.String())
}

func TestEmulator_RunWait_Closed(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InputMode = INPUT_INTERACTIVE
	loadSource(t, emu, "mov in out\nmov in out\n")

	assert.NoError(emu.Interactive.Append('x'))
	assert.NoError(emu.Interactive.Close())

	result, err := emu.RunWait(context.Background())
	assert.Equal(vm.RESULT_ERROR, result)
	assert.ErrorIs(err, vm.ErrNotEnoughInput)
	assert.Equal(1, emu.State.Pc)
}

func TestEmulator_Tape(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InputMode = INPUT_TAPE
	emu.Tape.Input = strings.NewReader("ok")
	output := loadSource(t, emu, "mov in out\nmov in out\nmov in out\n")

	result, err := emu.Run(context.Background())
	assert.Equal(vm.RESULT_ERROR, result)
	assert.ErrorIs(err, vm.ErrNotEnoughInput)
	assert.Equal("ok", output.String())
}

func TestEmulator_StepLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.StepLimit = 100
	loadSource(t, emu, "loop:\nloop\nj\n")

	result, err := emu.Run(context.Background())
	assert.Equal(vm.RESULT_ERROR, result)
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(100, emu.Steps)
	assert.Equal(MODE_IDLE, emu.Mode)
}

func TestEmulator_Cancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	loadSource(t, emu, "loop:\nloop\nj\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := emu.Run(ctx)
	assert.Equal(vm.RESULT_CONTINUE, result)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, emu.Steps)
}

// lexemeSource outputs a lone continuation byte (0x80), then '?'.
const lexemeSource = `
    32
    mov 0 1
    mov 0 2
    add
    mov 3 1
    mov 3 2
    add
    mov 3 out
    63
    mov 0 out
`

func TestEmulator_Lexeme(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := loadSource(t, emu, lexemeSource)

	result, err := emu.Run(context.Background())
	assert.Equal(vm.RESULT_ERROR, result)
	assert.ErrorIs(err, vm.ErrInvalidUtf8Lexeme)
	assert.False(vm.KindOf(err).Fatal())
	assert.Equal(8, emu.State.Pc)
	assert.Equal(8, emu.Steps)

	// The machine can be resumed past the bad lexeme.
	result, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(vm.RESULT_HALTED, result)
	assert.Equal("?", output.String())

	emu.LexemeTolerant = true
	output.Reset()
	assert.NoError(emu.Reset())
	result, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(vm.RESULT_HALTED, result)
	assert.Equal("?", output.String())
	assert.Equal(10, emu.Steps)
}

func TestEmulator_Decode(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Load(&asm.Listing{
		Program: vm.Program{0, 0b11_001_000},
		Lines:   []int{10, 20},
	})
	assert.NoError(err)

	result, err := emu.Run(context.Background())
	assert.Equal(vm.RESULT_ERROR, result)
	assert.ErrorIs(err, vm.ErrInvalidArithmetic)
	assert.Equal(vm.ERR_INVALID_ARITHMETIC, vm.KindOf(err))

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(20, runtime.LineNo)
	assert.Equal(1, runtime.Pc)
	assert.Contains(err.Error(), "line 20")

	// State is left as it was before the faulting instruction.
	assert.Equal(1, emu.State.Pc)
	assert.Equal(1, emu.Steps)
}
