// Copyright © 2024 The Brook authors

package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Type == STR || tok.Type == NUM || tok.Type == IDENT {
		return fmt.Sprintf("%s %s", tok.Type, tok.Text)
	}
	return tok.Type.String()
}

type Type uint

// Type constants used by the brook lexer/parser.
const (
	INVALID Type = iota

	// Atomic expressions & literals
	NUM
	STR
	IDENT

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R

	// Statements
	SEMI
	ASSIGN

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		NUM:     "number",
		STR:     "string",
		IDENT:   "identifier",
		PAREN_L: "(",
		PAREN_R: ")",
		BRACE_L: "[",
		BRACE_R: "]",
		SEMI:    ";",
		ASSIGN:  "<-",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location identifies a position in a source stream.
type Location struct {
	File string // a name representing the source stream
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

// LocationAt computes the location of byte offset pos within src.
func LocationAt(file string, src string, pos int) *Location {
	if pos > len(src) {
		pos = len(src)
	}
	loc := &Location{File: file, Pos: pos, Line: 1, Col: 1}
	for i := 0; i < pos; i++ {
		if src[i] == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
	}
	return loc
}

func (loc *Location) String() string {
	file := loc.File
	if file == "" {
		file = "<input>"
	}
	switch {
	case loc.Pos < 0:
		return file
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", file, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", file, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", file, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
