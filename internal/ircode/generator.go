package ircode

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goxlang/gox/internal/ast"
	"github.com/goxlang/gox/internal/symbols"
	"github.com/goxlang/gox/internal/types"
)

// Generator lowers a checked syntax tree into a Program. It assumes the
// checker has already accepted the tree: name resolution and operand types
// are taken as facts, never re-validated.
type Generator struct {
	program *Program
	code    []Instruction

	funcs map[string]*symbols.Signature

	// scopes mirrors the checker's scope chain for type and slot lookups
	// during lowering. frameScope marks scopes that live in a function
	// frame: names resolved there become locals, everything else is a
	// global.
	scopes     []map[string]scopeEntry
	frameScope []bool

	loopStack []loopContext
}

// scopeEntry is one declared name: its static type and the storage slot
// it compiles to. A nested-block shadow gets a depth-qualified slot so
// it never shares storage with the declaration it hides.
type scopeEntry struct {
	typ  types.Type
	slot string
}

// loopContext tracks the jump targets of the innermost loop being
// compiled. Break jumps are recorded forward and patched once the loop
// end is known.
type loopContext struct {
	start      int
	breakJumps []int
}

func NewGenerator() *Generator {
	return &Generator{
		funcs: make(map[string]*symbols.Signature),
	}
}

// Generate compiles the program. Top-level statements become the entry
// function, which returns 0 when execution falls off its end.
func (g *Generator) Generate(root *ast.Program) *Program {
	g.program = &Program{
		BuildID:    uuid.NewString(),
		SourceFile: root.File,
	}
	g.pushScope(false)

	entry := &Function{Name: EntryFunction, ReturnType: types.Int}
	g.program.Functions = append(g.program.Functions, entry)

	for _, stmt := range root.Statements {
		if fn, ok := stmt.(*ast.FunctionDefinition); ok {
			g.compileFunction(fn)
			continue
		}
		g.genStatement(stmt)
	}

	g.emit(Instruction{Op: OP_CONSTI, Int: 0})
	g.emit(Instruction{Op: OP_RET})
	entry.Code = g.code
	g.code = nil

	g.popScope()
	return g.program
}

func (g *Generator) compileFunction(fn *ast.FunctionDefinition) {
	sig := &symbols.Signature{ReturnType: fn.ReturnType}
	for _, p := range fn.Parameters {
		sig.ParamNames = append(sig.ParamNames, p.Name)
		sig.ParamTypes = append(sig.ParamTypes, p.Type)
	}
	g.funcs[fn.Name] = sig

	savedCode := g.code
	g.code = nil
	g.pushScope(true)
	for _, p := range fn.Parameters {
		g.declare(p.Name, p.Type)
	}
	for _, stmt := range fn.Body {
		g.genStatement(stmt)
	}
	// Falling off the end yields the return type's zero value.
	g.emit(g.zeroValue(fn.ReturnType))
	g.emit(Instruction{Op: OP_RET})

	g.program.Functions = append(g.program.Functions, &Function{
		Name:       fn.Name,
		ParamNames: sig.ParamNames,
		ParamTypes: sig.ParamTypes,
		ReturnType: fn.ReturnType,
		Code:       g.code,
	})

	g.popScope()
	g.code = savedCode
}

// --- emission helpers ---

func (g *Generator) emit(ins Instruction) int {
	g.code = append(g.code, ins)
	return len(g.code) - 1
}

// emitJump emits a jump with a placeholder target and returns its index.
func (g *Generator) emitJump(op Opcode) int {
	return g.emit(Instruction{Op: op, Int: -1})
}

// patchJump points a previously emitted jump at the next instruction.
func (g *Generator) patchJump(at int) {
	g.code[at].Int = int64(len(g.code))
}

func (g *Generator) zeroValue(t types.Type) Instruction {
	switch t {
	case types.Float:
		return Instruction{Op: OP_CONSTF, Float: 0}
	case types.Bool:
		return Instruction{Op: OP_CONSTB, Int: 0}
	case types.Char:
		return Instruction{Op: OP_CONSTC, Int: 0}
	default:
		return Instruction{Op: OP_CONSTI, Int: 0}
	}
}

// --- scope bookkeeping ---

func (g *Generator) pushScope(frame bool) {
	g.scopes = append(g.scopes, make(map[string]scopeEntry))
	g.frameScope = append(g.frameScope, frame)
}

func (g *Generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
	g.frameScope = g.frameScope[:len(g.frameScope)-1]
}

func (g *Generator) declare(name string, t types.Type) {
	top := len(g.scopes) - 1
	slot := name
	if depth := g.blockDepth(top); depth > 0 {
		slot = fmt.Sprintf("%s@%d", name, depth)
	}
	g.scopes[top][name] = scopeEntry{typ: t, slot: slot}
	if !g.frameScope[top] {
		g.program.Globals = append(g.program.Globals, slot)
	}
}

// blockDepth counts the scopes between index i and the root scope of
// its storage class: the function frame's outermost scope for locals,
// the global scope otherwise. Parameters and root declarations keep
// their plain name as the slot.
func (g *Generator) blockDepth(i int) int {
	j := i
	for j > 0 && g.frameScope[j-1] == g.frameScope[i] {
		j--
	}
	return i - j
}

// resolve returns a name's type, its storage slot, and whether it lives
// in a function frame.
func (g *Generator) resolve(name string) (types.Type, string, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if e, ok := g.scopes[i][name]; ok {
			return e.typ, e.slot, g.frameScope[i]
		}
	}
	return types.None, name, false
}

// --- statements ---

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		g.genDeclaration(s.Name, s.Type, s.Value)
	case *ast.ConstDeclaration:
		g.genDeclaration(s.Name, s.Type, s.Value)
	case *ast.Assignment:
		g.genAssignment(s)
	case *ast.If:
		g.genIf(s)
	case *ast.While:
		g.genWhile(s)
	case *ast.Break:
		jump := g.emitJump(OP_JUMP)
		top := len(g.loopStack) - 1
		g.loopStack[top].breakJumps = append(g.loopStack[top].breakJumps, jump)
	case *ast.Continue:
		g.emit(Instruction{Op: OP_JUMP, Int: int64(g.loopStack[len(g.loopStack)-1].start)})
	case *ast.Return:
		if s.Value != nil {
			g.genExpression(s.Value)
		} else {
			g.emit(Instruction{Op: OP_CONSTI, Int: 0})
		}
		g.emit(Instruction{Op: OP_RET})
	case *ast.Print:
		g.genPrint(s)
	case *ast.ExpressionStatement:
		g.genExpression(s.Expression)
		g.emit(Instruction{Op: OP_POP})
	}
}

func (g *Generator) genDeclaration(name string, t types.Type, value ast.Expression) {
	if value != nil {
		g.genExpression(value)
	} else {
		g.emit(g.zeroValue(t))
	}
	g.declare(name, t)
	g.emitStore(name)
}

func (g *Generator) emitStore(name string) {
	_, slot, local := g.resolve(name)
	if local {
		g.emit(Instruction{Op: OP_STOREL, Name: slot})
	} else {
		g.emit(Instruction{Op: OP_STOREG, Name: slot})
	}
}

func (g *Generator) genAssignment(s *ast.Assignment) {
	switch target := s.Target.(type) {
	case *ast.Identifier:
		g.genExpression(s.Value)
		g.emitStore(target.Name)
	case *ast.MemoryAccess:
		g.genExpression(target.Address)
		g.genExpression(s.Value)
		g.emit(Instruction{Op: OP_POKE})
	}
}

func (g *Generator) genIf(s *ast.If) {
	g.genExpression(s.Condition)
	elseJump := g.emitJump(OP_JUMPF)

	g.genBlock(s.Consequence)

	if s.Alternative == nil {
		g.patchJump(elseJump)
		return
	}

	endJump := g.emitJump(OP_JUMP)
	g.patchJump(elseJump)
	g.genBlock(s.Alternative)
	g.patchJump(endJump)
}

func (g *Generator) genWhile(s *ast.While) {
	start := len(g.code)
	g.genExpression(s.Condition)
	exitJump := g.emitJump(OP_JUMPF)

	g.loopStack = append(g.loopStack, loopContext{start: start})
	g.genBlock(s.Body)
	g.emit(Instruction{Op: OP_JUMP, Int: int64(start)})

	g.patchJump(exitJump)
	ctx := g.loopStack[len(g.loopStack)-1]
	g.loopStack = g.loopStack[:len(g.loopStack)-1]
	for _, jump := range ctx.breakJumps {
		g.patchJump(jump)
	}
}

// genBlock compiles a braced body in a nested scope. The scope inherits
// the frame flag: blocks inside a function keep declaring locals, blocks
// at top level keep declaring globals.
func (g *Generator) genBlock(stmts []ast.Statement) {
	g.pushScope(g.frameScope[len(g.frameScope)-1])
	for _, stmt := range stmts {
		g.genStatement(stmt)
	}
	g.popScope()
}

func (g *Generator) genPrint(s *ast.Print) {
	g.genExpression(s.Value)
	switch g.typeOf(s.Value) {
	case types.Float:
		g.emit(Instruction{Op: OP_PRINTF})
	case types.Bool:
		g.emit(Instruction{Op: OP_PRINTB})
	case types.Char:
		g.emit(Instruction{Op: OP_PRINTC})
	default:
		g.emit(Instruction{Op: OP_PRINTI})
	}
}
