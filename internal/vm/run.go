package vm

import (
	"fmt"

	"github.com/goxlang/gox/internal/ircode"
)

// run is the dispatch loop. It executes until the entry function returns
// or a fault stops the machine.
func (m *Machine) run() (int64, error) {
	for {
		frame := &m.frames[len(m.frames)-1]
		ins := frame.fn.Code[frame.ip]
		frame.ip++

		if m.trace != nil {
			fmt.Fprintf(m.trace, "%-12s %04d %s\n", frame.fn.Name, frame.ip-1, ins.Op)
		}

		switch ins.Op {
		case ircode.OP_CONSTI:
			m.push(IntVal(ins.Int))
		case ircode.OP_CONSTF:
			m.push(FloatVal(ins.Float))
		case ircode.OP_CONSTB:
			m.push(BoolVal(ins.Int != 0))
		case ircode.OP_CONSTC:
			m.push(CharVal(rune(ins.Int)))

		case ircode.OP_ADDI, ircode.OP_SUBI, ircode.OP_MULI, ircode.OP_DIVI:
			right, left, fault := m.popPair()
			if fault != nil {
				return 0, fault
			}
			result, fault := m.intArith(ins.Op, left.AsInt(), right.AsInt())
			if fault != nil {
				return 0, fault
			}
			m.push(IntVal(result))

		case ircode.OP_ADDF, ircode.OP_SUBF, ircode.OP_MULF, ircode.OP_DIVF:
			right, left, fault := m.popPair()
			if fault != nil {
				return 0, fault
			}
			result, fault := m.floatArith(ins.Op, left.AsFloat(), right.AsFloat())
			if fault != nil {
				return 0, fault
			}
			m.push(FloatVal(result))

		case ircode.OP_NEGI:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			m.push(IntVal(-v.AsInt()))
		case ircode.OP_NEGF:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			m.push(FloatVal(-v.AsFloat()))
		case ircode.OP_NOT:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			m.push(BoolVal(!v.AsBool()))

		case ircode.OP_LTI, ircode.OP_LEI, ircode.OP_GTI, ircode.OP_GEI, ircode.OP_EQI, ircode.OP_NEI:
			right, left, fault := m.popPair()
			if fault != nil {
				return 0, fault
			}
			m.push(BoolVal(intCompare(ins.Op, left.AsInt(), right.AsInt())))

		case ircode.OP_LTF, ircode.OP_LEF, ircode.OP_GTF, ircode.OP_GEF, ircode.OP_EQF, ircode.OP_NEF:
			right, left, fault := m.popPair()
			if fault != nil {
				return 0, fault
			}
			m.push(BoolVal(floatCompare(ins.Op, left.AsFloat(), right.AsFloat())))

		case ircode.OP_AND:
			right, left, fault := m.popPair()
			if fault != nil {
				return 0, fault
			}
			m.push(BoolVal(left.AsBool() && right.AsBool()))
		case ircode.OP_OR:
			right, left, fault := m.popPair()
			if fault != nil {
				return 0, fault
			}
			m.push(BoolVal(left.AsBool() || right.AsBool()))

		case ircode.OP_ITOF:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			m.push(FloatVal(float64(v.AsInt())))
		case ircode.OP_FTOI:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			m.push(IntVal(int64(v.AsFloat())))

		case ircode.OP_LOADG:
			v, ok := m.globals[ins.Name]
			if !ok {
				return 0, m.fault(FaultGeneric, "undefined global '%s'", ins.Name)
			}
			m.push(v)
		case ircode.OP_STOREG:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			m.globals[ins.Name] = v
		case ircode.OP_LOADL:
			v, ok := frame.locals[ins.Name]
			if !ok {
				return 0, m.fault(FaultGeneric, "undefined local '%s'", ins.Name)
			}
			m.push(v)
		case ircode.OP_STOREL:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			frame.locals[ins.Name] = v

		case ircode.OP_JUMP:
			frame.ip = int(ins.Int)
		case ircode.OP_JUMPF:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			if !v.AsBool() {
				frame.ip = int(ins.Int)
			}

		case ircode.OP_CALL:
			if fault := m.call(ins.Name); fault != nil {
				return 0, fault
			}
		case ircode.OP_RET:
			result, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			m.frames = m.frames[:len(m.frames)-1]
			if len(m.frames) == 0 {
				return result.AsInt(), nil
			}
			m.push(result)
		case ircode.OP_POP:
			if _, fault := m.popVal(); fault != nil {
				return 0, fault
			}

		case ircode.OP_GROW:
			size, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			if size.AsInt() < 0 {
				return 0, m.fault(FaultMemory, "negative memory grow size %d", size.AsInt())
			}
			base := int64(len(m.memory))
			m.memory = append(m.memory, make([]int64, size.AsInt())...)
			m.push(IntVal(base))
		case ircode.OP_PEEK:
			addr, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			if addr.AsInt() < 0 || addr.AsInt() >= int64(len(m.memory)) {
				return 0, m.fault(FaultMemory, "out of bounds memory address %d (memory size %d)", addr.AsInt(), len(m.memory))
			}
			m.push(IntVal(m.memory[addr.AsInt()]))
		case ircode.OP_POKE:
			value, addr, fault := m.popPair()
			if fault != nil {
				return 0, fault
			}
			if addr.AsInt() < 0 || addr.AsInt() >= int64(len(m.memory)) {
				return 0, m.fault(FaultMemory, "out of bounds memory address %d (memory size %d)", addr.AsInt(), len(m.memory))
			}
			m.memory[addr.AsInt()] = value.AsInt()

		case ircode.OP_PRINTI:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			fmt.Fprintf(m.out, "%d\n", v.AsInt())
		case ircode.OP_PRINTF:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			fmt.Fprintf(m.out, "%s\n", FloatVal(v.AsFloat()).String())
		case ircode.OP_PRINTB:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			fmt.Fprintf(m.out, "%t\n", v.AsBool())
		case ircode.OP_PRINTC:
			v, fault := m.popVal()
			if fault != nil {
				return 0, fault
			}
			fmt.Fprintf(m.out, "%c\n", v.AsChar())

		default:
			return 0, m.fault(FaultGeneric, "unknown opcode 0x%02x", uint8(ins.Op))
		}
	}
}

func (m *Machine) call(name string) *RuntimeFault {
	fn, ok := m.program.Function(name)
	if !ok {
		return m.fault(FaultGeneric, "undefined function '%s'", name)
	}

	locals := make(map[string]Value, len(fn.ParamNames))
	for i := len(fn.ParamNames) - 1; i >= 0; i-- {
		arg, fault := m.popVal()
		if fault != nil {
			return fault
		}
		locals[fn.ParamNames[i]] = arg
	}

	m.frames = append(m.frames, callFrame{fn: fn, locals: locals})
	return nil
}

func (m *Machine) popVal() (Value, *RuntimeFault) {
	v, ok := m.pop()
	if !ok {
		return Value{}, m.fault(FaultStack, "stack underflow")
	}
	return v, nil
}

// popPair pops the top two values, returning them top-first.
func (m *Machine) popPair() (Value, Value, *RuntimeFault) {
	top, fault := m.popVal()
	if fault != nil {
		return Value{}, Value{}, fault
	}
	next, fault := m.popVal()
	if fault != nil {
		return Value{}, Value{}, fault
	}
	return top, next, nil
}

func (m *Machine) intArith(op ircode.Opcode, left, right int64) (int64, *RuntimeFault) {
	switch op {
	case ircode.OP_ADDI:
		return left + right, nil
	case ircode.OP_SUBI:
		return left - right, nil
	case ircode.OP_MULI:
		return left * right, nil
	default:
		if right == 0 {
			return 0, m.fault(FaultDivideByZero, "integer division by zero")
		}
		return left / right, nil
	}
}

func (m *Machine) floatArith(op ircode.Opcode, left, right float64) (float64, *RuntimeFault) {
	switch op {
	case ircode.OP_ADDF:
		return left + right, nil
	case ircode.OP_SUBF:
		return left - right, nil
	case ircode.OP_MULF:
		return left * right, nil
	default:
		if right == 0 {
			return 0, m.fault(FaultDivideByZero, "float division by zero")
		}
		return left / right, nil
	}
}

func intCompare(op ircode.Opcode, left, right int64) bool {
	switch op {
	case ircode.OP_LTI:
		return left < right
	case ircode.OP_LEI:
		return left <= right
	case ircode.OP_GTI:
		return left > right
	case ircode.OP_GEI:
		return left >= right
	case ircode.OP_EQI:
		return left == right
	default:
		return left != right
	}
}

func floatCompare(op ircode.Opcode, left, right float64) bool {
	switch op {
	case ircode.OP_LTF:
		return left < right
	case ircode.OP_LEF:
		return left <= right
	case ircode.OP_GTF:
		return left > right
	case ircode.OP_GEF:
		return left >= right
	case ircode.OP_EQF:
		return left == right
	default:
		return left != right
	}
}
