// Package script holds the translated form of a source file: flat
// instruction lists plus a table of named functions. The translator
// here is deliberately dumb — one instruction per line, space-separated
// tokens, no expressions — everything clever happens in the runtime.
package script

import (
	"fmt"

	"github.com/MeexReay/sustlang/internal/types"
)

// Instruction is one parsed line: the operation tag, its source line
// and its raw operands. Operands are variable names except for the
// trailing literal of SET_VAR/TEMP_VAR. Immutable once parsed.
type Instruction struct {
	Op   Op
	Line int
	Args []string
}

func (in *Instruction) String() string {
	return fmt.Sprintf("%s at line %d", in.Op, in.Line)
}

// Param is one declared function parameter.
type Param struct {
	Name string
	Type *types.Type
}

// Function is a named, flat instruction sequence with typed positional
// parameters and an implicit result slot of Result type.
type Function struct {
	Name   string
	Result *types.Type
	Params []Param
	Body   []Instruction
}

// Program is a whole translated script: the top-level body and the
// function table, built once at load time.
type Program struct {
	Body      []Instruction
	Functions map[string]*Function
}
