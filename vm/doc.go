// Package vm implements the myVM bytecode interpreter.
//
// The machine consists of a program counter (pc) indexing a program of at most
// 255 single-byte instructions, and six 8-bit registers (r0-r5). r0 receives
// literals and holds jump targets, r3 receives ALU results and is the condition
// tested by jumps. Input and output are ports addressed by move instructions.
//
// Each instruction byte is split into a 2-bit class and a 6-bit operand:
//
//	00 LLLLLL  load literal L into r0
//	01 000CCC  jump to r0 if condition C holds on r3
//	10 FFFTTT  move from F (r0-r5, 6=input) to T (r0-r5, 6=output)
//	11 000AAA  r3 = r1 <op A> r2
package vm
