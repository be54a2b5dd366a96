package smtlib

import (
	"strings"
	"unicode/utf8"
)

const eof = -1

type tokenType int

const (
	tokEOF tokenType = iota
	tokError
	tokLParen
	tokRParen
	tokSymbol
	tokNumeral
	tokDecimal
	tokString
	tokKeyword
)

var tokenNames = [...]string{
	tokEOF:     "end of input",
	tokError:   "error",
	tokLParen:  "(",
	tokRParen:  ")",
	tokSymbol:  "symbol",
	tokNumeral: "numeral",
	tokDecimal: "decimal",
	tokString:  "string",
	tokKeyword: "keyword",
}

func (t tokenType) String() string { return tokenNames[t] }

type token struct {
	typ tokenType
	val string
	pos int
}

// lexer splits an SMT-LIB v2 script into tokens. Comments run from ';' to
// the end of the line.
type lexer struct {
	input   string
	start   int
	current int
	width   int
	err     error
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) next() token {
	l.skipSpace()
	l.ignore()

	ch := l.nextRune()
	switch {
	case ch == eof:
		return token{typ: tokEOF, pos: l.current}
	case ch == '(':
		return l.emit(tokLParen)
	case ch == ')':
		return l.emit(tokRParen)
	case ch == '|':
		return l.scanQuoted()
	case ch == '"':
		return l.scanString()
	case ch == ':':
		l.acceptAll(isSymbolRune)
		return l.emit(tokKeyword)
	case isDigit(ch):
		l.backup()
		return l.scanNumber()
	case isSymbolRune(ch):
		l.acceptAll(isSymbolRune)
		return l.emit(tokSymbol)
	}
	return l.error("unexpected character %q", ch)
}

func (l *lexer) scanNumber() token {
	l.acceptAll(isDigit)
	if !l.acceptRune('.') {
		return l.finishNumber(tokNumeral)
	}
	if !l.acceptAll(isDigit) {
		return l.error("malformed decimal %q", l.input[l.start:l.current])
	}
	return l.finishNumber(tokDecimal)
}

// finishNumber rejects numbers glued to a symbol, such as 12ab.
func (l *lexer) finishNumber(tt tokenType) token {
	if l.accept(isSymbolRune) {
		l.acceptAll(isSymbolRune)
		return l.error("malformed number %q", l.input[l.start:l.current])
	}
	return l.emit(tt)
}

// scanQuoted reads |...|. The token value excludes the bars.
func (l *lexer) scanQuoted() token {
	for {
		switch l.nextRune() {
		case '|':
			t := token{typ: tokSymbol, val: l.input[l.start+1 : l.current-1], pos: l.start}
			l.start = l.current
			return t
		case '\\':
			return l.error("backslash in quoted symbol")
		case eof:
			return l.error("unterminated quoted symbol")
		}
	}
}

// scanString reads "..." where "" escapes a quote.
func (l *lexer) scanString() token {
	for {
		switch l.nextRune() {
		case '"':
			if l.acceptRune('"') {
				continue
			}
			raw := l.input[l.start+1 : l.current-1]
			t := token{typ: tokString, val: strings.ReplaceAll(raw, `""`, `"`), pos: l.start}
			l.start = l.current
			return t
		case eof:
			return l.error("unterminated string literal")
		}
	}
}

func (l *lexer) skipSpace() {
	for {
		ch := l.nextRune()
		switch {
		case ch == ';':
			for ch != '\n' && ch != eof {
				ch = l.nextRune()
			}
		case isSpace(ch):
		default:
			if ch != eof {
				l.backup()
			}
			return
		}
	}
}

func (l *lexer) emit(tt tokenType) token {
	t := token{typ: tt, val: l.input[l.start:l.current], pos: l.start}
	l.width = 0
	l.start = l.current
	return t
}

func (l *lexer) error(format string, args ...any) token {
	t := token{typ: tokError, val: l.input[l.start:l.current], pos: l.start}
	l.err = errorAt(l.input, l.start, format, args...)
	return t
}

func (l *lexer) nextRune() rune {
	if l.err != nil || l.current >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *lexer) backup() { l.current -= l.width }

func (l *lexer) ignore() { l.start = l.current }

func (l *lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool { return c == r })
}

func (l *lexer) accept(valid func(rune) bool) bool {
	if valid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *lexer) acceptAll(valid func(rune) bool) bool {
	n := 0
	for l.accept(valid) {
		n++
	}
	return n > 0
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isSymbolRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || isDigit(r) ||
		strings.ContainsRune("~!@$%^&*_-+=<>.?/", r)
}
