// Package symtab interns the two kinds of identifiers a Horn clause can
// mention: function symbols, which are shared process-wide by source name,
// and variables, which are always freshly minted so that no two rules ever
// share a binding by accident.
package symtab

import "fmt"

// Kind distinguishes a function symbol from a variable.
type Kind uint8

const (
	// Function identifies a process-global function/predicate symbol.
	Function Kind = iota
	// Variable identifies a symbol scoped to a single rule instance.
	Variable
)

func (k Kind) String() string {
	if k == Variable {
		return "variable"
	}
	return "function"
}

// Symbol is a tagged identifier: a function symbol (global integer, shared
// across the process) or a variable (integer unique within its rule
// instance). Symbol is a plain value type so it can be used as a map key
// and compared with ==.
type Symbol struct {
	kind Kind
	id   int
}

// Kind reports whether sym identifies a function or a variable.
func (sym Symbol) Kind() Kind { return sym.kind }

// IsVariable reports whether sym is a variable identifier.
func (sym Symbol) IsVariable() bool { return sym.kind == Variable }

// IsFunction reports whether sym is a function identifier.
func (sym Symbol) IsFunction() bool { return sym.kind == Function }

func (sym Symbol) String() string {
	return fmt.Sprintf("%s#%d", sym.kind, sym.id)
}

// Table interns function symbols by name and mints fresh variable symbols.
// A single Table is meant to live for the lifetime of the process: function
// identifiers are shared across every rule ever inserted, while variable
// identifiers are never reused once issued.
type Table struct {
	functionsByName map[string]Symbol
	names           map[Symbol]string
	nextFunctionID  int
	nextVariableID  int
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{
		functionsByName: make(map[string]Symbol),
		names:           make(map[Symbol]string),
	}
}

// InternFunction returns the symbol for name, allocating a new one on first
// use and returning the existing one on every later call (idempotent).
func (t *Table) InternFunction(name string) Symbol {
	if sym, ok := t.functionsByName[name]; ok {
		return sym
	}
	sym := Symbol{kind: Function, id: t.nextFunctionID}
	t.nextFunctionID++
	t.functionsByName[name] = sym
	t.names[sym] = name
	return sym
}

// FreshVariable always allocates a new variable symbol, distinct from every
// variable minted before it, and synthesizes a printable name "VARk" for it.
func (t *Table) FreshVariable() Symbol {
	id := t.nextVariableID
	t.nextVariableID++
	sym := Symbol{kind: Variable, id: id}
	t.names[sym] = fmt.Sprintf("VAR%d", id)
	return sym
}

// NameOf returns the source (or synthesized) name for sym. Every symbol ever
// returned by InternFunction or FreshVariable has a name, so the second
// return value is false only for a Symbol the table never produced.
func (t *Table) NameOf(sym Symbol) (string, bool) {
	name, ok := t.names[sym]
	return name, ok
}

// Namer returns a lookup function suitable for term.SetSymbolNamer: it
// renders a symbol by its source (or synthesized) name, falling back to
// the symbol's raw debug form for one this table never produced.
func (t *Table) Namer() func(Symbol) string {
	return func(sym Symbol) string {
		if name, ok := t.NameOf(sym); ok {
			return name
		}
		return sym.String()
	}
}

// IDOf looks up a previously interned function symbol by its source name.
// It never resolves variable names, since variables are not shared by name
// across rules.
func (t *Table) IDOf(name string) (Symbol, bool) {
	sym, ok := t.functionsByName[name]
	return sym, ok
}
