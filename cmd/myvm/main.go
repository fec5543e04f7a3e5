// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/ezrec/myvm/asm"
	"github.com/ezrec/myvm/emulator"
	"github.com/ezrec/myvm/io"
	"github.com/ezrec/myvm/translate"
	"github.com/ezrec/myvm/vm"
)

var f = translate.From

var inputModes = []emulator.InputMode{
	emulator.INPUT_BUFFERED,
	emulator.INPUT_INTERACTIVE,
	emulator.INPUT_TAPE,
}

func parseInputMode(text string) (mode emulator.InputMode, err error) {
	for _, mode = range inputModes {
		if mode.String() == text {
			return
		}
	}

	err = errors.New(f("unknown input mode '%v'", text))
	return
}

// run drives the emulator until it halts or fails, waiting for interactive
// input whenever it suspends.
func run(ctx context.Context, emu *emulator.Emulator, trace bool) (err error) {
	for {
		var result vm.Result
		if trace {
			result, err = emu.Step()
			fmt.Fprint(os.Stderr, emu.String())
		} else {
			result, err = emu.Run(ctx)
		}

		switch result {
		case vm.RESULT_HALTED:
			return
		case vm.RESULT_SUSPENDED:
			err = emu.Interactive.Wait(ctx)
		case vm.RESULT_ERROR:
			if emu.LexemeTolerant && !vm.KindOf(err).Fatal() {
				log.Print(err)
				err = nil
			}
		case vm.RESULT_CONTINUE:
			if err == nil {
				err = ctx.Err()
			}
		}

		if err != nil {
			return
		}
	}
}

// readInput loads a buffered input from a file, or stdin for '-'.
func readInput(bc *io.Buffered, input string) (err error) {
	inf := os.Stdin
	if input != "-" {
		inf, err = os.Open(input)
		if err != nil {
			return
		}
		defer inf.Close()
	}

	err = bc.Unmarshal(inf)
	return
}

func main() {
	var compile string
	var input string
	var output string
	var mode string
	var lang string
	var limit int
	var verbose bool
	var trace bool
	var expand bool
	var tolerant bool

	defines := map[string]string{}

	log.SetFlags(0)
	log.SetPrefix("myvm: ")

	flag.StringVar(&compile, "c", "", ".myvm file to assemble and run")
	flag.StringVar(&input, "i", "", "Input file, replacing the input: segment ('-' for stdin)")
	flag.StringVar(&output, "o", "-", "Output file")
	flag.StringVar(&mode, "mode", "buffered", "Input mode: buffered, interactive, or tape")
	flag.StringVar(&lang, "lang", "", "Message language (default from the locale)")
	flag.IntVar(&limit, "limit", 0, "Maximum instructions to execute (0 is unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "trace", false, "Print the machine state after every instruction")
	flag.BoolVar(&expand, "E", false, "Print the assembled listing, do not execute")
	flag.BoolVar(&tolerant, "tolerant", false, "Continue past invalid UTF-8 output")
	flag.Func("D", "Predefine a constant as NAME=VALUE", func(text string) error {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			return errors.New(f("expected NAME=VALUE"))
		}
		defines[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("Unknown arguments: %v", flag.Args())
	}

	if len(lang) != 0 {
		err := translate.SetLanguage(lang)
		if err != nil {
			log.Fatalf("-lang %v: %v", lang, err)
		}
	}

	if len(compile) == 0 {
		log.Fatalf("%v", f("no program, use -c FILE"))
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.StepLimit = limit
	emu.LexemeTolerant = tolerant

	inputMode, err := parseInputMode(mode)
	if err != nil {
		log.Fatalf("-mode: %v", err)
	}
	emu.InputMode = inputMode

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		assembler.Predefine(key, value)
	}

	// Input file, replacing the input: segment.
	replaceInput := len(input) != 0 && emu.InputMode != emulator.INPUT_TAPE
	if replaceInput {
		err = readInput(&emu.Buffered, input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		assembler.Predefine("INPUT_LENGTH", strconv.Itoa(len(emu.Buffered.Data)))
	}

	for key, value := range defines {
		assembler.Predefine(key, value)
	}

	listing, err := assembler.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if replaceInput {
		listing.Input = emu.Buffered.Data
	}

	if expand {
		fmt.Print(listing.String())
		return
	}

	if emu.InputMode == emulator.INPUT_TAPE {
		emu.Tape.Input = os.Stdin
		if len(input) != 0 && input != "-" {
			inf, err := os.Open(input)
			if err != nil {
				log.Fatalf("%v: %v", input, err)
			}
			defer inf.Close()
			emu.Tape.Input = inf
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	err = emu.Load(listing)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	// The terminal starts after Load, so typed input is not rewound away.
	var host *terminal
	if emu.InputMode == emulator.INPUT_INTERACTIVE {
		host = startTerminal(&emu.Interactive, cancel, verbose)
		emu.Console.Output = host.Output(ouf)
	} else {
		emu.Console.Output = ouf
	}

	err = run(ctx, emu, trace)

	if host != nil {
		host.Stop()
	}

	if pending := emu.Console.Pending(); len(pending) != 0 {
		log.Printf("%v", f("incomplete utf-8 sequence at end of output: [% x]", pending))
	}

	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
}
