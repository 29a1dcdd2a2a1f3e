package ircode

import (
	"github.com/goxlang/gox/internal/ast"
	"github.com/goxlang/gox/internal/types"
)

func (g *Generator) genExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		g.genLiteral(e)
	case *ast.Identifier:
		_, slot, local := g.resolve(e.Name)
		if local {
			g.emit(Instruction{Op: OP_LOADL, Name: slot})
		} else {
			g.emit(Instruction{Op: OP_LOADG, Name: slot})
		}
	case *ast.BinaryOp:
		g.genBinaryOp(e)
	case *ast.UnaryOp:
		g.genUnaryOp(e)
	case *ast.Call:
		for _, arg := range e.Arguments {
			g.genExpression(arg)
		}
		g.emit(Instruction{Op: OP_CALL, Name: e.Name})
	case *ast.Cast:
		g.genCast(e)
	case *ast.MemoryGrow:
		g.genExpression(e.Size)
		g.emit(Instruction{Op: OP_GROW})
	case *ast.MemoryAccess:
		g.genExpression(e.Address)
		g.emit(Instruction{Op: OP_PEEK})
	}
}

func (g *Generator) genLiteral(e *ast.Literal) {
	switch e.Type {
	case types.Float:
		g.emit(Instruction{Op: OP_CONSTF, Float: e.Value.(float64)})
	case types.Bool:
		value := int64(0)
		if e.Value.(bool) {
			value = 1
		}
		g.emit(Instruction{Op: OP_CONSTB, Int: value})
	case types.Char:
		g.emit(Instruction{Op: OP_CONSTC, Int: int64(e.Value.(rune))})
	default:
		g.emit(Instruction{Op: OP_CONSTI, Int: e.Value.(int64)})
	}
}

func (g *Generator) genBinaryOp(e *ast.BinaryOp) {
	g.genExpression(e.Left)
	g.genExpression(e.Right)
	operandType := g.typeOf(e.Left)
	g.emit(Instruction{Op: binaryOpcode(e.Operator, operandType)})
}

// binaryOpcode selects the typed instruction for an operator. Char and
// bool operands compare by their integer representation.
func binaryOpcode(operator string, operandType types.Type) Opcode {
	isFloat := operandType == types.Float
	switch operator {
	case "+":
		if isFloat {
			return OP_ADDF
		}
		return OP_ADDI
	case "-":
		if isFloat {
			return OP_SUBF
		}
		return OP_SUBI
	case "*":
		if isFloat {
			return OP_MULF
		}
		return OP_MULI
	case "/":
		if isFloat {
			return OP_DIVF
		}
		return OP_DIVI
	case "<":
		if isFloat {
			return OP_LTF
		}
		return OP_LTI
	case "<=":
		if isFloat {
			return OP_LEF
		}
		return OP_LEI
	case ">":
		if isFloat {
			return OP_GTF
		}
		return OP_GTI
	case ">=":
		if isFloat {
			return OP_GEF
		}
		return OP_GEI
	case "==":
		if isFloat {
			return OP_EQF
		}
		return OP_EQI
	case "!=":
		if isFloat {
			return OP_NEF
		}
		return OP_NEI
	case "&&":
		return OP_AND
	case "||":
		return OP_OR
	}
	return OP_POP
}

func (g *Generator) genUnaryOp(e *ast.UnaryOp) {
	g.genExpression(e.Operand)
	switch e.Operator {
	case "-":
		if g.typeOf(e.Operand) == types.Float {
			g.emit(Instruction{Op: OP_NEGF})
		} else {
			g.emit(Instruction{Op: OP_NEGI})
		}
	case "!":
		g.emit(Instruction{Op: OP_NOT})
	}
	// Unary plus emits nothing.
}

func (g *Generator) genCast(e *ast.Cast) {
	g.genExpression(e.Value)
	from := g.typeOf(e.Value)
	switch {
	case from == types.Int && e.Target == types.Float:
		g.emit(Instruction{Op: OP_ITOF})
	case from == types.Float && e.Target == types.Int:
		g.emit(Instruction{Op: OP_FTOI})
	}
	// Identity conversions emit nothing.
}

// typeOf recomputes an expression's static type from the generator's
// scope chain. The checker already proved the expression well typed.
func (g *Generator) typeOf(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Type
	case *ast.Identifier:
		t, _, _ := g.resolve(e.Name)
		return t
	case *ast.BinaryOp:
		result, _ := types.ResultType(e.Operator, g.typeOf(e.Left), g.typeOf(e.Right))
		return result
	case *ast.UnaryOp:
		result, _ := types.UnaryResultType(e.Operator, g.typeOf(e.Operand))
		return result
	case *ast.Call:
		if sig, ok := g.funcs[e.Name]; ok {
			return sig.ReturnType
		}
		return types.None
	case *ast.Cast:
		return e.Target
	case *ast.MemoryGrow, *ast.MemoryAccess:
		return types.Int
	}
	return types.None
}
