// Package checker performs the semantic pass over the syntax tree. It
// resolves names through the scope chain, enforces the typing rules, and
// collects every error it finds rather than stopping at the first, so one
// run reports the whole program's problems.
package checker

import (
	"fmt"

	"github.com/goxlang/gox/internal/ast"
	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/symbols"
	"github.com/goxlang/gox/internal/types"
)

type Checker struct {
	scope  *symbols.SymbolTable
	errors []*diagnostics.DiagnosticError

	// currentFn is the enclosing function signature, nil at top level.
	currentFn *symbols.Signature
	inLoop    bool
}

func New() *Checker {
	return &Checker{scope: symbols.NewSymbolTable()}
}

func (c *Checker) Errors() []*diagnostics.DiagnosticError {
	return c.errors
}

// Check walks the program and returns the collected diagnostics.
func (c *Checker) Check(program *ast.Program) []*diagnostics.DiagnosticError {
	for _, stmt := range program.Statements {
		c.checkStatement(stmt)
	}
	return c.errors
}

func (c *Checker) report(code diagnostics.ErrorCode, node ast.Node, format string, args ...interface{}) {
	c.errors = append(c.errors, diagnostics.NewError(code, node.GetToken(), fmt.Sprintf(format, args...)))
}

// --- statements ---

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		c.checkVarDeclaration(s)
	case *ast.ConstDeclaration:
		c.checkConstDeclaration(s)
	case *ast.FunctionDefinition:
		c.checkFunctionDefinition(s)
	case *ast.Assignment:
		c.checkAssignment(s)
	case *ast.If:
		c.checkIf(s)
	case *ast.While:
		c.checkWhile(s)
	case *ast.Break:
		if !c.inLoop {
			c.report(diagnostics.ErrC005, s, "break used outside of a loop")
		}
	case *ast.Continue:
		if !c.inLoop {
			c.report(diagnostics.ErrC005, s, "continue used outside of a loop")
		}
	case *ast.Return:
		c.checkReturn(s)
	case *ast.Print:
		c.checkPrint(s)
	case *ast.ExpressionStatement:
		// A call statement may invoke a function with no return type;
		// checkExpression would reject that call in a value position.
		if call, ok := s.Expression.(*ast.Call); ok {
			c.checkCall(call)
		} else {
			c.checkExpression(s.Expression)
		}
	}
}

func (c *Checker) checkVarDeclaration(s *ast.VarDeclaration) {
	if s.Value != nil {
		valueType := c.checkExpression(s.Value)
		if valueType != types.None && s.Type != types.None && !types.AssignCompatible(s.Type, valueType) {
			c.report(diagnostics.ErrC003, s, "cannot initialize %s '%s' with a %s value", s.Type, s.Name, valueType)
		}
	}
	if !c.scope.Declare(symbols.Symbol{Name: s.Name, Kind: symbols.VariableSymbol, Type: s.Type}) {
		c.report(diagnostics.ErrC001, s, "'%s' is already declared in this scope", s.Name)
	}
}

func (c *Checker) checkConstDeclaration(s *ast.ConstDeclaration) {
	if s.Value != nil {
		valueType := c.checkExpression(s.Value)
		if valueType != types.None && s.Type != types.None && !types.AssignCompatible(s.Type, valueType) {
			c.report(diagnostics.ErrC003, s, "cannot initialize %s constant '%s' with a %s value", s.Type, s.Name, valueType)
		}
	}
	if !c.scope.Declare(symbols.Symbol{Name: s.Name, Kind: symbols.ConstantSymbol, Type: s.Type}) {
		c.report(diagnostics.ErrC001, s, "'%s' is already declared in this scope", s.Name)
	}
}

func (c *Checker) checkFunctionDefinition(s *ast.FunctionDefinition) {
	if c.currentFn != nil {
		c.report(diagnostics.ErrC008, s, "function '%s' is defined inside another function", s.Name)
		return
	}

	sig := &symbols.Signature{ReturnType: s.ReturnType}
	for _, p := range s.Parameters {
		sig.ParamNames = append(sig.ParamNames, p.Name)
		sig.ParamTypes = append(sig.ParamTypes, p.Type)
	}

	// Declared before the body is checked so recursive calls resolve.
	if !c.scope.Declare(symbols.Symbol{Name: s.Name, Kind: symbols.FunctionSymbol, Signature: sig}) {
		c.report(diagnostics.ErrC001, s, "'%s' is already declared in this scope", s.Name)
	}

	outer := c.scope
	c.scope = symbols.NewEnclosedSymbolTable(outer, symbols.ScopeFunction)
	c.currentFn = sig
	savedLoop := c.inLoop
	c.inLoop = false

	for _, p := range s.Parameters {
		if !c.scope.Declare(symbols.Symbol{Name: p.Name, Kind: symbols.VariableSymbol, Type: p.Type}) {
			c.report(diagnostics.ErrC001, p, "duplicate parameter '%s'", p.Name)
		}
	}
	for _, stmt := range s.Body {
		c.checkStatement(stmt)
	}

	c.inLoop = savedLoop
	c.currentFn = nil
	c.scope = outer
}

func (c *Checker) checkAssignment(s *ast.Assignment) {
	valueType := c.checkExpression(s.Value)

	switch target := s.Target.(type) {
	case *ast.Identifier:
		sym, ok := c.scope.Lookup(target.Name)
		if !ok {
			c.report(diagnostics.ErrC002, target, "'%s' is not declared", target.Name)
			return
		}
		if sym.Kind == symbols.FunctionSymbol {
			c.report(diagnostics.ErrC003, target, "'%s' is a function and cannot be assigned to", target.Name)
			return
		}
		if sym.IsConstant() {
			c.report(diagnostics.ErrC004, target, "cannot assign to constant '%s'", target.Name)
			return
		}
		if valueType != types.None && !types.AssignCompatible(sym.Type, valueType) {
			c.report(diagnostics.ErrC003, s, "cannot assign a %s value to %s '%s'", valueType, sym.Type, target.Name)
		}
	case *ast.MemoryAccess:
		// Memory cells are untyped words: any primitive may be stored,
		// and reads come back as int.
		addrType := c.checkExpression(target.Address)
		if addrType != types.None && addrType != types.Int {
			c.report(diagnostics.ErrC003, target, "memory address must be int, got %s", addrType)
		}
	}
}

func (c *Checker) checkIf(s *ast.If) {
	condType := c.checkExpression(s.Condition)
	if condType != types.None && condType != types.Bool {
		c.report(diagnostics.ErrC003, s, "if condition must be bool, got %s", condType)
	}
	c.checkBlock(s.Consequence)
	if s.Alternative != nil {
		c.checkBlock(s.Alternative)
	}
}

func (c *Checker) checkWhile(s *ast.While) {
	condType := c.checkExpression(s.Condition)
	if condType != types.None && condType != types.Bool {
		c.report(diagnostics.ErrC003, s, "while condition must be bool, got %s", condType)
	}
	saved := c.inLoop
	c.inLoop = true
	c.checkBlock(s.Body)
	c.inLoop = saved
}

// checkBlock runs the statements of a braced body in a fresh nested scope.
func (c *Checker) checkBlock(stmts []ast.Statement) {
	outer := c.scope
	c.scope = symbols.NewEnclosedSymbolTable(outer, symbols.ScopeBlock)
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
	c.scope = outer
}

func (c *Checker) checkReturn(s *ast.Return) {
	if c.currentFn == nil {
		c.report(diagnostics.ErrC006, s, "return used outside of a function")
		if s.Value != nil {
			c.checkExpression(s.Value)
		}
		return
	}
	if s.Value == nil {
		if c.currentFn.ReturnType != types.None {
			c.report(diagnostics.ErrC006, s, "missing return value, function returns %s", c.currentFn.ReturnType)
		}
		return
	}
	valueType := c.checkExpression(s.Value)
	if c.currentFn.ReturnType == types.None {
		c.report(diagnostics.ErrC006, s, "function has no return type but returns a %s value", valueType)
		return
	}
	if valueType != types.None && !types.AssignCompatible(c.currentFn.ReturnType, valueType) {
		c.report(diagnostics.ErrC006, s, "function returns %s, got %s", c.currentFn.ReturnType, valueType)
	}
}

func (c *Checker) checkPrint(s *ast.Print) {
	valueType := c.checkExpression(s.Value)
	if valueType != types.None && !types.Valid(valueType) {
		c.report(diagnostics.ErrC003, s, "cannot print a %s value", valueType)
	}
}

// --- expressions ---

// checkExpression returns the static type of the expression, or types.None
// when the expression is ill-typed. A None operand suppresses further
// reporting so one mistake yields one diagnostic.
func (c *Checker) checkExpression(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Type
	case *ast.Identifier:
		return c.checkIdentifier(e)
	case *ast.BinaryOp:
		return c.checkBinaryOp(e)
	case *ast.UnaryOp:
		return c.checkUnaryOp(e)
	case *ast.Call:
		result := c.checkCall(e)
		if result == types.None {
			// None from checkCall means either a diagnostic was already
			// reported or the function is void; the latter is an error
			// in a value position.
			if sym, ok := c.scope.Lookup(e.Name); ok && sym.Kind == symbols.FunctionSymbol && sym.Signature.ReturnType == types.None {
				c.report(diagnostics.ErrC003, e, "'%s' does not return a value", e.Name)
			}
		}
		return result
	case *ast.Cast:
		return c.checkCast(e)
	case *ast.MemoryGrow:
		return c.checkMemoryGrow(e)
	case *ast.MemoryAccess:
		return c.checkMemoryAccess(e)
	}
	return types.None
}

func (c *Checker) checkIdentifier(e *ast.Identifier) types.Type {
	sym, ok := c.scope.Lookup(e.Name)
	if !ok {
		c.report(diagnostics.ErrC002, e, "'%s' is not declared", e.Name)
		return types.None
	}
	if sym.Kind == symbols.FunctionSymbol {
		c.report(diagnostics.ErrC003, e, "'%s' is a function, not a value", e.Name)
		return types.None
	}
	return sym.Type
}

func (c *Checker) checkBinaryOp(e *ast.BinaryOp) types.Type {
	leftType := c.checkExpression(e.Left)
	rightType := c.checkExpression(e.Right)
	if leftType == types.None || rightType == types.None {
		return types.None
	}
	result, ok := types.ResultType(e.Operator, leftType, rightType)
	if !ok {
		c.report(diagnostics.ErrC003, e, "operator '%s' is not defined for %s and %s", e.Operator, leftType, rightType)
		return types.None
	}
	return result
}

func (c *Checker) checkUnaryOp(e *ast.UnaryOp) types.Type {
	operandType := c.checkExpression(e.Operand)
	if operandType == types.None {
		return types.None
	}
	result, ok := types.UnaryResultType(e.Operator, operandType)
	if !ok {
		c.report(diagnostics.ErrC003, e, "operator '%s' is not defined for %s", e.Operator, operandType)
		return types.None
	}
	return result
}

func (c *Checker) checkCall(e *ast.Call) types.Type {
	sym, ok := c.scope.Lookup(e.Name)
	if !ok {
		c.report(diagnostics.ErrC002, e, "'%s' is not declared", e.Name)
		for _, arg := range e.Arguments {
			c.checkExpression(arg)
		}
		return types.None
	}
	if sym.Kind != symbols.FunctionSymbol {
		c.report(diagnostics.ErrC003, e, "'%s' is not a function", e.Name)
		return types.None
	}

	sig := sym.Signature
	if len(e.Arguments) != len(sig.ParamTypes) {
		c.report(diagnostics.ErrC007, e, "'%s' expects %d arguments, got %d", e.Name, len(sig.ParamTypes), len(e.Arguments))
		for _, arg := range e.Arguments {
			c.checkExpression(arg)
		}
		return sig.ReturnType
	}
	for i, arg := range e.Arguments {
		argType := c.checkExpression(arg)
		if argType != types.None && !types.AssignCompatible(sig.ParamTypes[i], argType) {
			c.report(diagnostics.ErrC007, arg, "argument %d of '%s' must be %s, got %s", i+1, e.Name, sig.ParamTypes[i], argType)
		}
	}
	return sig.ReturnType
}

func (c *Checker) checkCast(e *ast.Cast) types.Type {
	valueType := c.checkExpression(e.Value)
	if valueType == types.None {
		return types.None
	}
	if !types.CastAllowed(e.Target, valueType) {
		c.report(diagnostics.ErrC003, e, "cannot convert %s to %s", valueType, e.Target)
		return types.None
	}
	return e.Target
}

func (c *Checker) checkMemoryGrow(e *ast.MemoryGrow) types.Type {
	sizeType := c.checkExpression(e.Size)
	if sizeType != types.None && sizeType != types.Int {
		c.report(diagnostics.ErrC003, e, "memory grow size must be int, got %s", sizeType)
	}
	return types.Int
}

func (c *Checker) checkMemoryAccess(e *ast.MemoryAccess) types.Type {
	addrType := c.checkExpression(e.Address)
	if addrType != types.None && addrType != types.Int {
		c.report(diagnostics.ErrC003, e, "memory address must be int, got %s", addrType)
	}
	return types.Int
}
