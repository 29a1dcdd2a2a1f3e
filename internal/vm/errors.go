package vm

import (
	"errors"
	"fmt"

	"github.com/goxlang/gox/internal/ircode"
)

// FaultKind classifies a runtime fault.
type FaultKind int

const (
	FaultGeneric FaultKind = iota
	FaultMemory
	FaultDivideByZero
	FaultStack
)

// RuntimeFault is an unrecoverable execution error. It carries the
// function name, instruction index, and opcode where execution stopped.
type RuntimeFault struct {
	Kind     FaultKind
	Function string
	IP       int
	Op       ircode.Opcode
	Message  string
}

func (f *RuntimeFault) Error() string {
	return fmt.Sprintf("runtime fault in %s at %04d (%s): %s", f.Function, f.IP, f.Op, f.Message)
}

// IsMemoryFault reports whether err is an out-of-bounds memory fault.
func IsMemoryFault(err error) bool {
	var fault *RuntimeFault
	return errors.As(err, &fault) && fault.Kind == FaultMemory
}

// IsDivideByZero reports whether err is an integer division by zero.
func IsDivideByZero(err error) bool {
	var fault *RuntimeFault
	return errors.As(err, &fault) && fault.Kind == FaultDivideByZero
}
