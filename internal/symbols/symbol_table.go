// Package symbols implements the lexically scoped symbol table used by the
// checker. Tables form a chain: every block opens an enclosed table whose
// lookups fall through to the outer scope, so inner declarations shadow
// outer ones while redeclaration within a single scope is rejected.
package symbols

import (
	"github.com/goxlang/gox/internal/types"
)

type SymbolKind int

type ScopeType int

const (
	ScopeGlobal ScopeType = iota
	ScopeFunction
	ScopeBlock
)

const (
	VariableSymbol SymbolKind = iota
	ConstantSymbol
	FunctionSymbol
)

// Signature describes a function symbol.
type Signature struct {
	ParamNames []string
	ParamTypes []types.Type
	ReturnType types.Type
}

type Symbol struct {
	Name      string
	Kind      SymbolKind
	Type      types.Type // value type for variables and constants
	Signature *Signature // set for function symbols
	IsGlobal  bool
}

func (s Symbol) IsConstant() bool { return s.Kind == ConstantSymbol }

type SymbolTable struct {
	store     map[string]Symbol
	order     []string
	outer     *SymbolTable
	scopeType ScopeType
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		outer:     outer,
		scopeType: scopeType,
	}
}

// Outer returns the enclosing scope, or nil at global scope.
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

func (s *SymbolTable) ScopeType() ScopeType {
	return s.scopeType
}

// IsGlobal reports whether this table is the outermost scope.
func (s *SymbolTable) IsGlobal() bool {
	return s.outer == nil
}

// Declare binds a symbol in this scope. It fails when the name is already
// bound here; shadowing an outer binding is allowed.
func (s *SymbolTable) Declare(sym Symbol) bool {
	if _, exists := s.store[sym.Name]; exists {
		return false
	}
	sym.IsGlobal = s.IsGlobal()
	s.store[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return true
}

// Lookup resolves a name by walking the scope chain outward.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	for tbl := s; tbl != nil; tbl = tbl.outer {
		if sym, ok := tbl.store[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupLocal resolves a name in this scope only.
func (s *SymbolTable) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// Names returns the symbols bound in this scope in declaration order.
func (s *SymbolTable) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// InFunction reports whether any enclosing scope belongs to a function body.
func (s *SymbolTable) InFunction() bool {
	for tbl := s; tbl != nil; tbl = tbl.outer {
		if tbl.scopeType == ScopeFunction {
			return true
		}
	}
	return false
}
