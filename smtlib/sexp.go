package smtlib

import "io"

// sexp is one parsed S-expression. For lists tok is the opening
// parenthesis.
type sexp struct {
	tok  token
	list []*sexp
	atom bool
}

func (s *sexp) symbol() (string, bool) {
	if s.atom && s.tok.typ == tokSymbol {
		return s.tok.val, true
	}
	return "", false
}

type reader struct {
	lex   *lexer
	input string
}

func newReader(input string) *reader {
	return &reader{lex: newLexer(input), input: input}
}

// read returns the next top-level S-expression, or io.EOF after the last.
func (r *reader) read() (*sexp, error) {
	t := r.lex.next()
	switch t.typ {
	case tokEOF:
		return nil, io.EOF
	case tokRParen:
		return nil, errorAt(r.input, t.pos, "unexpected )")
	}
	return r.readFrom(t)
}

func (r *reader) readFrom(t token) (*sexp, error) {
	switch t.typ {
	case tokError:
		return nil, r.lex.err
	case tokEOF:
		return nil, errorAt(r.input, t.pos, "unexpected end of input")
	case tokLParen:
		s := &sexp{tok: t}
		for {
			n := r.lex.next()
			if n.typ == tokRParen {
				return s, nil
			}
			if n.typ == tokEOF {
				return nil, errorAt(r.input, t.pos, "unclosed (")
			}
			child, err := r.readFrom(n)
			if err != nil {
				return nil, err
			}
			s.list = append(s.list, child)
		}
	case tokRParen:
		return nil, errorAt(r.input, t.pos, "unexpected )")
	}
	return &sexp{tok: t, atom: true}, nil
}
