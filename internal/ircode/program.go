// Package ircode defines the intermediate representation produced by the
// code generator and executed by the virtual machine: flat instruction
// lists per function, with absolute jump targets and name-based variable
// and call references.
package ircode

import (
	"github.com/goxlang/gox/internal/types"
)

// EntryFunction is the synthetic function holding top-level code.
const EntryFunction = "main"

// Instruction is one fixed-shape IR instruction. At most one of the
// immediate fields is meaningful, selected by the opcode: Int carries
// integer constants and jump targets, Float carries float constants, Name
// carries variable and function references.
type Instruction struct {
	Op    Opcode
	Int   int64
	Float float64
	Name  string
}

// Function is a compiled function body.
type Function struct {
	Name       string
	ParamNames []string
	ParamTypes []types.Type
	ReturnType types.Type
	Code       []Instruction
}

// Program is a complete compiled unit. Functions preserves definition
// order with the entry function first.
type Program struct {
	Functions []*Function
	Globals   []string

	// BuildID uniquely identifies one compilation of one source text.
	BuildID string

	// SourceFile is the original source path, kept for fault messages.
	SourceFile string
}

// Function looks up a compiled function by name.
func (p *Program) Function(name string) (*Function, bool) {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// FunctionNames returns the names of all compiled functions in order.
func (p *Program) FunctionNames() []string {
	names := make([]string, len(p.Functions))
	for i, fn := range p.Functions {
		names[i] = fn.Name
	}
	return names
}
