// Package vm executes compiled programs on a stack machine. Values carry
// runtime type tags, variables resolve by name (globals in a shared map,
// locals in the owning call frame), and the flat memory region grows on
// demand with every access bounds checked.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/goxlang/gox/internal/ircode"
)

const defaultStackCapacity = 256

type callFrame struct {
	fn     *ircode.Function
	ip     int
	locals map[string]Value
}

type Machine struct {
	program *ircode.Program

	stack  []Value
	frames []callFrame

	globals map[string]Value
	memory  []int64

	out   io.Writer
	trace io.Writer
}

// Option configures a Machine.
type Option func(*Machine)

// WithOutput redirects print statements, which go to stdout otherwise.
func WithOutput(w io.Writer) Option {
	return func(m *Machine) { m.out = w }
}

// WithTrace writes each executed instruction to w.
func WithTrace(w io.Writer) Option {
	return func(m *Machine) { m.trace = w }
}

// WithInitialMemory pre-sizes the memory region to the given cell count.
func WithInitialMemory(cells int) Option {
	return func(m *Machine) {
		if cells > 0 {
			m.memory = make([]int64, cells)
		}
	}
}

func New(program *ircode.Program, opts ...Option) *Machine {
	m := &Machine{
		program: program,
		stack:   make([]Value, 0, defaultStackCapacity),
		globals: make(map[string]Value),
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run executes the program from its entry function and returns the exit
// value it produces.
func (m *Machine) Run() (int64, error) {
	entry, ok := m.program.Function(ircode.EntryFunction)
	if !ok {
		return 0, fmt.Errorf("program has no entry function")
	}
	m.frames = append(m.frames, callFrame{fn: entry, locals: make(map[string]Value)})
	return m.run()
}

// MemorySize returns the current memory length in cells.
func (m *Machine) MemorySize() int {
	return len(m.memory)
}

// Global reads a global variable by name after execution.
func (m *Machine) Global(name string) (Value, bool) {
	v, ok := m.globals[name]
	return v, ok
}

// --- stack and fault helpers ---

func (m *Machine) push(v Value) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() (Value, bool) {
	if len(m.stack) == 0 {
		return Value{}, false
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, true
}

// fault builds a RuntimeFault located at the instruction the current
// frame just executed.
func (m *Machine) fault(kind FaultKind, format string, args ...interface{}) *RuntimeFault {
	frame := &m.frames[len(m.frames)-1]
	ip := frame.ip - 1
	return &RuntimeFault{
		Kind:     kind,
		Function: frame.fn.Name,
		IP:       ip,
		Op:       frame.fn.Code[ip].Op,
		Message:  fmt.Sprintf(format, args...),
	}
}
