package pifsyntax

import (
	"github.com/AloisRautureau/pif/internal/pierr"
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
)

// parser is a one-token-lookahead recursive descent parser over a
// pre-tokenized .pif source, in the same style as the rest of this
// engine's hand-rolled traversals (see internal/unify's worklists).
type parser struct {
	tokens []token
	pos    int
	table  *symtab.Table

	// scope maps a source variable name to the symbol minted for it
	// within the rule currently being parsed. resetScope clears it at
	// each rule boundary so that "X" in one rule and "X" in the next
	// never share a symbol: spec.md §4.2's rule-scoped alpha-renaming,
	// enforced here at parse time rather than by a later Freshen pass.
	scope map[string]symtab.Symbol
}

func newParser(tokens []token, table *symtab.Table) *parser {
	return &parser{tokens: tokens, table: table, scope: map[string]symtab.Symbol{}}
}

func (p *parser) resetScope() {
	p.scope = map[string]symtab.Symbol{}
}

func (p *parser) cur() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind, want string) (token, error) {
	if p.cur().kind != kind {
		return token{}, unexpectedToken(p.cur(), want)
	}
	return p.advance(), nil
}

// ParseRules parses an entire .pif program: zero or more rules, each
// terminated by ".". Returns the rules in source order, each already
// alpha-renamed to its own private variable scope.
func ParseRules(src string, table *symtab.Table) ([]*term.Clause, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, pierr.Wrap(pierr.Parse, err, "lexing rules")
	}

	p := newParser(tokens, table)
	var rules []*term.Clause
	for p.cur().kind != tokEOF {
		p.resetScope()
		rule, err := p.parseRule()
		if err != nil {
			return nil, pierr.Wrap(pierr.Parse, err, "parsing rule")
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseQuery parses a single query atom, terminated by ".". Unlike a rule's
// variables, a query's variables are not expected to be bound by anything:
// a free variable in a query still gets a fresh symbol, scoped to the
// query alone.
func ParseQuery(src string, table *symtab.Table) (*term.Atom, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, pierr.Wrap(pierr.Parse, err, "lexing query")
	}

	p := newParser(tokens, table)
	atom, err := p.parseAtom()
	if err != nil {
		return nil, pierr.Wrap(pierr.Parse, err, "parsing query atom")
	}
	if _, err := p.expect(tokStop, "."); err != nil {
		return nil, pierr.Wrap(pierr.Parse, err, "parsing query atom")
	}
	if p.cur().kind != tokEOF {
		return nil, pierr.New(pierr.Parse, "trailing input after query")
	}
	return atom, nil
}

// parseRule parses "atoms => atom." or the fact shorthand "atom.".
func (p *parser) parseRule() (*term.Clause, error) {
	start := p.pos
	premises, err := p.parseAtomList()
	if err == nil {
		if _, implErr := p.expect(tokImplies, "=>"); implErr == nil {
			conclusion, concErr := p.parseAtom()
			if concErr != nil {
				return nil, concErr
			}
			if _, stopErr := p.expect(tokStop, "."); stopErr != nil {
				return nil, stopErr
			}
			return term.NewClause(premises, conclusion), nil
		}
	}

	// Not "premises => conclusion": rewind and parse a bare fact instead.
	p.pos = start
	conclusion, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokStop, "."); err != nil {
		return nil, err
	}
	return term.NewClause(nil, conclusion), nil
}

// parseAtomList parses one or more atoms separated by "/\".
func (p *parser) parseAtomList() ([]*term.Atom, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	atoms := []*term.Atom{first}
	for p.cur().kind == tokAnd {
		p.advance()
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, next)
	}
	return atoms, nil
}

// parseAtom parses "name(terms)"; the argument list is required, possibly
// empty, matching the original grammar's atom production.
func (p *parser) parseAtom() (*term.Atom, error) {
	name, err := p.expect(tokConstant, "predicate name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen, "("); err != nil {
		return nil, err
	}
	args, err := p.parseTermList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	return term.NewAtom(p.table.InternFunction(name.text), args...), nil
}

func (p *parser) parseTermList() ([]*term.Term, error) {
	if p.cur().kind == tokRParen {
		return nil, nil
	}
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []*term.Term{first}
	for p.cur().kind == tokComma {
		p.advance()
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	return terms, nil
}

// parseTerm parses a variable, a function application (with an optional,
// possibly empty argument list; absent parentheses denote a constant), or
// an integer literal.
func (p *parser) parseTerm() (*term.Term, error) {
	switch p.cur().kind {
	case tokVariable:
		return p.parseVariable(), nil
	case tokConstant:
		return p.parseApplication()
	case tokInteger:
		return p.parseInteger(), nil
	default:
		return nil, unexpectedToken(p.cur(), "term")
	}
}

func (p *parser) parseVariable() *term.Term {
	tok := p.advance()
	sym, ok := p.scope[tok.text]
	if !ok {
		sym = p.table.FreshVariable()
		p.scope[tok.text] = sym
	}
	return term.Var(sym)
}

func (p *parser) parseApplication() (*term.Term, error) {
	name := p.advance()
	sym := p.table.InternFunction(name.text)
	if p.cur().kind != tokLParen {
		return term.Fun(sym), nil
	}
	p.advance()
	args, err := p.parseTermList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	return term.Fun(sym, args...), nil
}

// parseInteger interns the literal's decimal text as its own distinct
// 0-ary function symbol: "0" and "1" are as unrelated to each other as
// "alice" and "bob" are, with no built-in arithmetic.
func (p *parser) parseInteger() *term.Term {
	tok := p.advance()
	return term.Fun(p.table.InternFunction(tok.text))
}
