// Copyright © 2024 The Brook authors

// Package formatter renders brook source code in canonical form.  Every call
// is fully parenthesized and every statement is terminated by a semicolon
// and a newline.
package formatter

import (
	"bytes"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/parser/lexer"
	"github.com/brooklang/brook/parser/rdparser"
)

// Format formats brook source code.
func Format(source []byte) ([]byte, error) {
	return FormatFile(source, "<stdin>")
}

// FormatFile formats brook source code, using filename for error messages.
func FormatFile(source []byte, filename string) ([]byte, error) {
	toks, err := lexer.Lex(filename, source)
	if err != nil {
		return nil, err
	}
	exprs, err := rdparser.ParseProgram(toks)
	if err != nil {
		return nil, err
	}
	return Write(exprs), nil
}

// Write renders exprs in canonical form.
func Write(exprs []brook.Expr) []byte {
	var buf bytes.Buffer
	for _, expr := range exprs {
		buf.WriteString(expr.Write())
		buf.WriteString(";\n")
	}
	return buf.Bytes()
}
