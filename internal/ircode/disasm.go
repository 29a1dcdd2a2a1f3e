package ircode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the whole program.
func Disassemble(p *Program) string {
	var sb strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		DisassembleFunction(&sb, fn)
	}
	return sb.String()
}

// DisassembleFunction writes one function's listing.
func DisassembleFunction(sb *strings.Builder, fn *Function) {
	sb.WriteString(fmt.Sprintf("== %s ==\n", fn.Name))
	for offset, ins := range fn.Code {
		sb.WriteString(fmt.Sprintf("%04d %s\n", offset, formatInstruction(ins)))
	}
}

func formatInstruction(ins Instruction) string {
	switch ins.Op {
	case OP_CONSTI, OP_CONSTB, OP_CONSTC, OP_JUMP, OP_JUMPF:
		return fmt.Sprintf("%-8s %d", ins.Op, ins.Int)
	case OP_CONSTF:
		return fmt.Sprintf("%-8s %g", ins.Op, ins.Float)
	case OP_LOADG, OP_STOREG, OP_LOADL, OP_STOREL, OP_CALL:
		return fmt.Sprintf("%-8s %s", ins.Op, ins.Name)
	default:
		return ins.Op.String()
	}
}
