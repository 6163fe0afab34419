// Copyright © 2024 The Brook authors

package lexer

import (
	"unicode/utf8"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// Terminal names attached to parsec terminals, in matching priority order.
const (
	termNum    = "NUM"
	termStr    = "STR"
	termIdent  = "IDENT"
	termParenL = "PAREN_L"
	termParenR = "PAREN_R"
	termBraceL = "BRACE_L"
	termBraceR = "BRACE_R"
	termSemi   = "SEMI"
	termAssign = "ASSIGN"
)

var termTypes = map[string]token.Type{
	termNum:    token.NUM,
	termStr:    token.STR,
	termIdent:  token.IDENT,
	termParenL: token.PAREN_L,
	termParenR: token.PAREN_R,
	termBraceL: token.BRACE_L,
	termBraceR: token.BRACE_R,
	termSemi:   token.SEMI,
	termAssign: token.ASSIGN,
}

// Lexer produces tokens from a source stream.  The first pattern, in
// priority order, that matches at the current position wins.
type Lexer struct {
	file    string
	src     []byte
	scanner parsec.Scanner
	term    parsec.Parser
}

// New returns a Lexer reading src.  The file name is attached to token
// locations.
func New(file string, src []byte) *Lexer {
	return &Lexer{
		file:    file,
		src:     src,
		scanner: parsec.NewScanner(src),
		term:    newTermParser(),
	}
}

// Lex returns all tokens in src.
func Lex(file string, src []byte) ([]*token.Token, error) {
	return New(file, src).ReadAll()
}

// ReadAll returns the remaining tokens of the stream.
func (lex *Lexer) ReadAll() ([]*token.Token, error) {
	var toks []*token.Token
	for {
		tok, err := lex.ReadToken()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// ReadToken returns the next token, or nil at the end of the stream.  A
// *brook.LexError is returned when no pattern matches the remaining input.
func (lex *Lexer) ReadToken() (*token.Token, error) {
	_, lex.scanner = lex.scanner.SkipWS()
	if lex.scanner.Endof() {
		return nil, nil
	}
	node, s := lex.term(lex.scanner)
	if ns, ok := node.([]parsec.ParsecNode); ok {
		node = termNode(ns)
	}
	term, ok := node.(*parsec.Terminal)
	if !ok || term == nil {
		return nil, lex.errorf()
	}
	lex.scanner = s
	return &token.Token{
		Type:   termTypes[term.Name],
		Text:   term.Value,
		Source: lex.locate(term.Position),
	}, nil
}

// maxExcerpt is the number of runes of unmatched input quoted by a LexError.
const maxExcerpt = 16

func (lex *Lexer) errorf() error {
	pos := lex.scanner.GetCursor()
	text := string(lex.src[pos:])
	if utf8.RuneCountInString(text) > maxExcerpt {
		text = string([]rune(text)[:maxExcerpt])
	}
	return &brook.LexError{Source: lex.locate(pos), Text: text}
}

func (lex *Lexer) locate(pos int) *token.Location {
	return token.LocationAt(lex.file, string(lex.src), pos)
}

// termNode yields the terminal matched by an ordered choice.
func termNode(ns []parsec.ParsecNode) parsec.ParsecNode {
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}

func newTermParser() parsec.Parser {
	return parsec.OrdChoice(termNode,
		parsec.Token(`[+-]?[0-9]+(\.[0-9]+)?`, termNum),
		parsec.Token(`"(?:\\"|[^"])*"`, termStr),
		parsec.Token(`[a-zA-Z_][a-zA-Z0-9_]*`, termIdent),
		parsec.Atom("(", termParenL),
		parsec.Atom(")", termParenR),
		parsec.Atom("[", termBraceL),
		parsec.Atom("]", termBraceR),
		parsec.Atom(";", termSemi),
		parsec.Atom("<-", termAssign),
	)
}
