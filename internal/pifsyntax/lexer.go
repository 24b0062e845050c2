// Package pifsyntax reads the .pif surface syntax spec.md §2 describes:
// rules of the form "att(X) /\ att(Y) => att(pair(X, Y))." and bare query
// atoms. There is no parser-combinator or lexer-generator library anywhere
// in the retrieved stack (the original implementation leans on logos and
// nom, both Rust-only), so both stages here are hand-rolled recursive
// descent over a small rune scanner, grounded on the grammar the original
// lexer.rs/parser.rs encode rather than on any borrowed Go library.
package pifsyntax

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// tokenKind enumerates the lexemes of the .pif grammar.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokImplies         // =>
	tokAnd             // /\
	tokComma           // ,
	tokLParen          // (
	tokRParen          // )
	tokStop            // .
	tokVariable        // [A-Z][A-Za-z0-9_']*
	tokConstant        // [a-z][A-Za-z0-9_']*
	tokInteger         // [0-9_]+
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokImplies:
		return `"=>"`
	case tokAnd:
		return `"/\"`
	case tokComma:
		return `","`
	case tokLParen:
		return `"("`
	case tokRParen:
		return `")"`
	case tokStop:
		return `"."`
	case tokVariable:
		return "variable"
	case tokConstant:
		return "constant"
	case tokInteger:
		return "integer"
	default:
		return "unknown token"
	}
}

// ErrLex reports a lexical error: an input byte sequence matching none of
// the grammar's lexemes.
var ErrLex = errors.New("unrecognized lexeme")

// lexer turns .pif source text into a flat token stream. It is a single
// forward scanner with one rune of lookahead, in the style of the Go
// standard library's own text/scanner rather than any table-driven
// generated lexer.
type lexer struct {
	src  []rune
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) peekAt(offset int) (rune, bool) {
	if l.pos+offset >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos+offset], true
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

// skipTrivia consumes whitespace and "#"-to-end-of-line comments.
func (l *lexer) skipTrivia() {
	for {
		r, ok := l.peek()
		if !ok {
			return
		}
		if unicode.IsSpace(r) {
			l.advance()
			continue
		}
		if r == '#' {
			for {
				r, ok := l.peek()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		return
	}
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) }
func isIdentCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}
func isDigitOrUnderscore(r rune) bool { return unicode.IsDigit(r) || r == '_' }

// next scans and returns the next token, or an error wrapping ErrLex if the
// input at the current position matches no lexeme.
func (l *lexer) next() (token, error) {
	l.skipTrivia()

	line := l.line
	r, ok := l.peek()
	if !ok {
		return token{kind: tokEOF, line: line}, nil
	}

	switch r {
	case '(':
		l.advance()
		return token{kind: tokLParen, text: "(", line: line}, nil
	case ')':
		l.advance()
		return token{kind: tokRParen, text: ")", line: line}, nil
	case ',':
		l.advance()
		return token{kind: tokComma, text: ",", line: line}, nil
	case '.':
		l.advance()
		return token{kind: tokStop, text: ".", line: line}, nil
	case '/':
		if next, ok := l.peekAt(1); ok && next == '\\' {
			l.advance()
			l.advance()
			return token{kind: tokAnd, text: `/\`, line: line}, nil
		}
		return token{}, errors.Wrapf(ErrLex, "line %d: stray '/'", line)
	case '=':
		if next, ok := l.peekAt(1); ok && next == '>' {
			l.advance()
			l.advance()
			return token{kind: tokImplies, text: "=>", line: line}, nil
		}
		return token{}, errors.Wrapf(ErrLex, "line %d: stray '='", line)
	}

	if unicode.IsUpper(r) {
		return l.scanIdent(tokVariable, line), nil
	}
	if unicode.IsLower(r) {
		return l.scanIdent(tokConstant, line), nil
	}
	if isDigitOrUnderscore(r) {
		return l.scanInteger(line), nil
	}

	return token{}, errors.Wrapf(ErrLex, "line %d: unexpected character %q", line, r)
}

func (l *lexer) scanIdent(kind tokenKind, line int) token {
	var b strings.Builder
	b.WriteRune(l.advance())
	for {
		r, ok := l.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		b.WriteRune(l.advance())
	}
	return token{kind: kind, text: b.String(), line: line}
}

func (l *lexer) scanInteger(line int) token {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isDigitOrUnderscore(r) {
			break
		}
		b.WriteRune(l.advance())
	}
	return token{kind: tokInteger, text: b.String(), line: line}
}

// tokenize runs the lexer to completion, returning every token up to and
// including a trailing tokEOF.
func tokenize(src string) ([]token, error) {
	l := newLexer(src)
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens, nil
		}
	}
}

func unexpectedToken(tok token, want string) error {
	return fmt.Errorf("line %d: expected %s, found %s %q", tok.line, want, tok.kind, tok.text)
}
