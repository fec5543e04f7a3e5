// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"text/scanner"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/myvm/vm"
)

const (
	MAX_DEPTH = 100 // Deepest allowed macro expansion.
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Parameter names, replaced textually by arguments.
	Lines  []string // Lines of macro text to expand.
}

// sourceLine is a comment stripped line of source text.
type sourceLine struct {
	LineNo int
	Text   string
}

// pending is an instruction awaiting label linking.
type pending struct {
	LineNo int
	Text   string
	Code   vm.Code
	Link   string // Label whose address is loaded as a literal.
}

// Assembler is a two pass macro assembler for myVM programs.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to instruction addresses.
	Equate    map[string]string // Map of constants.
	Macro     map[string]*Macro // Map of macros.
	pending   []pending         // Instructions in program order.
	expansion int               // Count of macro expansions, for local labels.
}

// Predefine defines a new constant or redefines an existing one.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reName       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reLabel      = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):(.*)$`)
	reEquate     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)
	reCall       = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)$`)
	reMacro      = regexp.MustCompile(`(?i)^macro\s+([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)\s*:$`)
)

var condMap = map[string]vm.CodeCond{
	"nop":  vm.COND_NEVER,
	"jez":  vm.COND_EZ,
	"jgz":  vm.COND_GZ,
	"jgez": vm.COND_GEZ,
	"j":    vm.COND_ALWAYS,
	"jnz":  vm.COND_NZ,
	"jlez": vm.COND_LEZ,
	"jlz":  vm.COND_LZ,
}

var aluMap = map[string]vm.CodeAluOp{
	"add":  vm.ALU_OP_ADD,
	"and":  vm.ALU_OP_AND,
	"or":   vm.ALU_OP_OR,
	"xor":  vm.ALU_OP_XOR,
	"sub":  vm.ALU_OP_SUB,
	"nand": vm.ALU_OP_NAND,
	"nor":  vm.ALU_OP_NOR,
	"xnor": vm.ALU_OP_XNOR,
	"nxor": vm.ALU_OP_XNOR,
}

var fromMap = map[string]vm.CodeFrom{
	"i":     vm.FROM_INPUT,
	"in":    vm.FROM_INPUT,
	"input": vm.FROM_INPUT,
}

var toMap = map[string]vm.CodeTo{
	"o":      vm.TO_OUTPUT,
	"out":    vm.TO_OUTPUT,
	"output": vm.TO_OUTPUT,
}

func init() {
	for n := range vm.REGISTER_COUNT {
		for _, prefix := range []string{"", "r", "reg"} {
			name := fmt.Sprintf("%v%d", prefix, n)
			fromMap[name] = vm.FROM_REG_R0 + vm.CodeFrom(n)
			toMap[name] = vm.TO_REG_R0 + vm.CodeTo(n)
		}
	}
}

// stripComment removes `//` and `;` comments that are outside of quotes.
func stripComment(line string) string {
	var quote byte
	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case quote != 0:
			if c == '\\' && quote != '`' {
				n++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == ';':
			return line[:n]
		case c == '/' && n+1 < len(line) && line[n+1] == '/':
			return line[:n]
		}
	}

	return line
}

// resolve follows constants until a number or an unknown name is found.
func (asm *Assembler) resolve(word string) string {
	for range MAX_DEPTH {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}

	return word
}

// valueOf returns the numeric value of a word, or the label it refers to.
func (asm *Assembler) valueOf(word string) (value int, label string, err error) {
	word = asm.resolve(word)

	v64, perr := strconv.ParseInt(word, 0, 64)
	if perr == nil {
		value = int(v64)
		return
	}

	address, ok := asm.Label[word]
	if ok {
		value = address
		return
	}

	if !reName.MatchString(word) {
		err = ErrParseNumber(word)
		return
	}

	label = word
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		v, label, _err := asm.valueOf(key)
		if _err != nil || len(label) != 0 {
			// Ignore constants that are not yet integers.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseInput converts one line of the input: segment into bytes.
func (asm *Assembler) parseInput(text string) (data []byte, err error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(text))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanChars | scanner.ScanStrings | scanner.ScanRawStrings
	s.Error = func(_ *scanner.Scanner, msg string) {
		if err == nil {
			err = ErrInputToken(msg)
		}
	}

	for tok := s.Scan(); tok != scanner.EOF && err == nil; tok = s.Scan() {
		word := s.TokenText()
		switch tok {
		case ',':
			continue
		case scanner.Char, scanner.String, scanner.RawString:
			var str string
			str, err = strconv.Unquote(word)
			if err != nil {
				err = ErrInputToken(word)
				return
			}
			data = append(data, str...)
		case scanner.Int, scanner.Ident:
			var value int
			var label string
			value, label, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if len(label) != 0 || value < 0 || value > 0xff {
				err = ErrInputToken(word)
				return
			}
			data = append(data, byte(value))
		default:
			err = ErrInputToken(word)
			return
		}
	}

	return
}

// splitArgs splits a macro argument or parameter list.
func splitArgs(list string) (args []string) {
	if len(strings.TrimSpace(list)) == 0 {
		return
	}

	for _, arg := range strings.Split(list, ",") {
		args = append(args, strings.TrimSpace(arg))
	}

	return
}

// parseLine parses a single line of the program: segment.
func (asm *Assembler) parseLine(line string, lineno int, depth int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.Itoa(value)
	})
	if err != nil {
		return
	}

	line = strings.TrimSpace(line)

	// label: [instruction]
	for {
		match := reLabel.FindStringSubmatch(line)
		if match == nil {
			break
		}
		label := match[1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = len(asm.pending)
		line = strings.TrimSpace(match[2])
	}

	if len(line) == 0 {
		return
	}

	// NAME = VALUE
	if match := reEquate.FindStringSubmatch(line); match != nil {
		name, value := match[1], strings.TrimSpace(match[2])
		if len(strings.Fields(value)) != 1 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = value
		return
	}

	// name(arg, ...)
	if match := reCall.FindStringSubmatch(line); match != nil {
		name := match[1]
		macro, ok := asm.Macro[name]
		if !ok {
			err = ErrMacroMissing(name)
			return
		}
		args := splitArgs(match[2])
		if len(args) != len(macro.Args) {
			err = ErrMacroArgs
			return
		}
		if depth >= MAX_DEPTH {
			err = ErrMacroDepth
			return
		}

		asm.expansion++
		local := fmt.Sprintf("%v_%v_", name, asm.expansion)
		pairs := make([]string, 0, 2*len(args)+2)
		for n, param := range macro.Args {
			pairs = append(pairs, param, args[n])
		}
		pairs = append(pairs, "@", local)
		replacer := strings.NewReplacer(pairs...)

		for n, body := range macro.Lines {
			err = asm.parseLine(replacer.Replace(body), lineno, depth+1)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: macro.LineNo + n, Err: err}
				return
			}
		}

		return
	}

	return asm.parseWords(strings.Fields(line), lineno)
}

// parseWords evaluates the words of a single instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	op := pending{LineNo: lineno, Text: strings.Join(words, " ")}

	mnemonic := strings.ToLower(words[0])
	switch {
	case mnemonic == "mov":
		if len(words) < 3 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}
		from, ok := fromMap[strings.ToLower(asm.resolve(words[1]))]
		if !ok {
			err = ErrMoveSource(words[1])
			return
		}
		to, ok := toMap[strings.ToLower(asm.resolve(words[2]))]
		if !ok {
			err = ErrMoveTarget(words[2])
			return
		}
		op.Code = vm.MakeCodeMove(from, to)
	case len(words) > 1:
		err = ErrOpcodeExtraArgs
		return
	default:
		if cond, ok := condMap[mnemonic]; ok {
			op.Code = vm.MakeCodeCond(cond)
			break
		}
		if alu, ok := aluMap[mnemonic]; ok {
			op.Code = vm.MakeCodeAlu(alu)
			break
		}
		var value int
		value, op.Link, err = asm.valueOf(words[0])
		if err != nil {
			err = ErrInstructionInvalid
			return
		}
		if len(op.Link) == 0 {
			if value < 0 || value > vm.LITERAL_MAX {
				err = ErrLiteralRange(value)
				return
			}
			op.Code = vm.MakeCodeLiteral(uint8(value))
		}
	}

	if asm.Verbose {
		log.Printf("%3d: %v\n", len(asm.pending), op.Code)
	}

	asm.pending = append(asm.pending, op)

	return
}

// collectMacros removes macro definitions from the program lines.
func (asm *Assembler) collectMacros(lines []sourceLine) (body []sourceLine, err error) {
	var macro *Macro
	var current sourceLine

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: current.LineNo, Line: current.Text, Err: err}
		}
	}()

	for _, current = range lines {
		text := current.Text

		if match := reMacro.FindStringSubmatch(text); match != nil {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			name := match[1]
			_, ok := asm.Macro[name]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: current.LineNo + 1,
				Args:   splitArgs(match[2]),
			}
			for _, arg := range macro.Args {
				// Parameters are substituted textually, so they must not look like words.
				param, ok := strings.CutPrefix(arg, "%")
				if !ok || !reName.MatchString(param) {
					err = ErrMacroSyntax
					return
				}
			}
			asm.Macro[name] = macro
			continue
		}

		if strings.EqualFold(text, "end_macro:") {
			if macro == nil {
				err = ErrMacroLonelyEnd
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, text)
			continue
		}

		body = append(body, current)
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	return
}

// Parse parses an input stream into a Listing.
func (asm *Assembler) Parse(input io.Reader) (listing *Listing, err error) {
	reader := bufio.NewScanner(input)

	var current sourceLine
	var program []sourceLine
	var data []byte

	defer func() {
		if err == nil {
			return
		}
		listing = nil
		if _, ok := err.(*ErrSyntax); !ok {
			err = &ErrSyntax{LineNo: current.LineNo, Line: current.Text, Err: err}
		}
	}()

	asm.Label = map[string]int{}
	asm.Macro = map[string]*Macro{}
	asm.Equate = maps.Collect(vm.Defines())
	asm.Equate["LINENO"] = "0"
	maps.Copy(asm.Equate, asm.predefine)
	asm.pending = asm.pending[:0]
	asm.expansion = 0

	in_input := false
	seen_input := false
	seen_program := false

	lineno := 0
	for reader.Scan() {
		lineno++
		text := reader.Text()
		current = sourceLine{LineNo: lineno, Text: text}

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text = strings.TrimSpace(stripComment(text))
		if len(text) == 0 {
			continue
		}

		switch {
		case strings.EqualFold(text, "input:"):
			if seen_input {
				err = ErrSegmentDuplicate
				return
			}
			if seen_program || len(program) != 0 {
				err = ErrSegmentOrder
				return
			}
			seen_input = true
			in_input = true
		case strings.EqualFold(text, "program:"):
			if seen_program {
				err = ErrSegmentDuplicate
				return
			}
			seen_program = true
			in_input = false
		case in_input:
			var bytes []byte
			asm.Equate["LINENO"] = strconv.Itoa(lineno)
			bytes, err = asm.parseInput(text)
			if err != nil {
				return
			}
			data = append(data, bytes...)
		default:
			program = append(program, sourceLine{LineNo: lineno, Text: text})
		}
	}
	err = reader.Err()
	if err != nil {
		return
	}

	// A predefined INPUT_LENGTH describes input supplied in place of the segment.
	if _, ok := asm.predefine["INPUT_LENGTH"]; !ok {
		asm.Equate["INPUT_LENGTH"] = strconv.Itoa(len(data))
	}

	program, err = asm.collectMacros(program)
	if err != nil {
		return
	}

	for _, current = range program {
		err = asm.parseLine(current.Text, current.LineNo, 0)
		if err != nil {
			return
		}
	}

	listing = &Listing{
		Program: make(vm.Program, len(asm.pending)),
		Input:   data,
		Lines:   make([]int, len(asm.pending)),
		Text:    make([]string, len(asm.pending)),
		Labels:  maps.Clone(asm.Label),
	}

	// Final linking of labels.
	for pc, op := range asm.pending {
		current = sourceLine{LineNo: op.LineNo, Text: op.Text}
		if len(op.Link) != 0 {
			address, ok := asm.Label[op.Link]
			if !ok {
				err = ErrLabelMissing(op.Link)
				return
			}
			if address > vm.LITERAL_MAX {
				err = ErrLiteralRange(address)
				return
			}
			op.Code = vm.MakeCodeLiteral(uint8(address))
		}
		listing.Program[pc] = op.Code
		listing.Lines[pc] = op.LineNo
		listing.Text[pc] = op.Text
	}

	err = listing.Program.Validate()

	return
}
