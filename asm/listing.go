package asm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ezrec/myvm/vm"
)

// Listing is an assembled program, with its input segment and debug information.
type Listing struct {
	Program vm.Program     // Assembled instructions.
	Input   []byte         // Contents of the input: segment.
	Lines   []int          // Source line number of each instruction.
	Text    []string       // Macro expanded source text of each instruction.
	Labels  map[string]int // Label addresses.
}

// LineNo returns the source line of the instruction at pc, or 0 if unknown.
func (listing *Listing) LineNo(pc int) int {
	if listing == nil || pc < 0 || pc >= len(listing.Lines) {
		return 0
	}

	return listing.Lines[pc]
}

// String returns the disassembly of the listing.
func (listing *Listing) String() string {
	var sb strings.Builder

	labels := map[int][]string{}
	for name, pc := range listing.Labels {
		labels[pc] = append(labels[pc], name)
	}

	for pc, code := range listing.Program.Listing() {
		slices.Sort(labels[pc])
		for _, name := range labels[pc] {
			fmt.Fprintf(&sb, "%v:\n", name)
		}
		text := ""
		if pc < len(listing.Text) {
			text = listing.Text[pc]
		}
		fmt.Fprintf(&sb, "%3d: %08b  %-12v ; %d: %v\n", pc, uint8(code), code.String(), listing.LineNo(pc), text)
	}

	return sb.String()
}
