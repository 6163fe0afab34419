// Copyright © 2024 The Brook authors

package formatter

import (
	"errors"
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formatTest struct {
	name     string
	input    string
	expected string
}

func runFormatTests(t *testing.T, tests []formatTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format([]byte(tt.input))
			require.NoError(t, err, "Format failed")
			assert.Equal(t, tt.expected, string(got), "formatted output mismatch")

			// Idempotency: formatting the output again should produce identical output
			got2, err := Format(got)
			require.NoError(t, err, "Format (idempotency) failed")
			assert.Equal(t, string(got), string(got2), "not idempotent")
		})
	}
}

func TestFormat(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"empty", "", ""},
		{"binary prefix", "plus 1 2", "(1 plus 2);\n"},
		{"binary infix", "1 plus 2", "(1 plus 2);\n"},
		{"curried callee", "(plus 1) 2", "((plus 1) 2);\n"},
		{"map", "map [1 2 3] (plus 1)", "([1 2 3] map (plus 1));\n"},
		{"nested", "sum (map [1 2 3] (times 2))", "(sum ([1 2 3] map (times 2)));\n"},
		{"postfix", "[1 2 3] sum", "(sum [1 2 3]);\n"},
		{"nullary", "foo", "(foo);\n"},
		{"strings", `"a" indexIn "cba"`, "(\"a\" indexIn \"cba\");\n"},
		{"numbers", "plus 1.50 -0", "(1.5 plus -0);\n"},
		{"assignment", "x <- range 0 3; sum x", "x <- (0 range 3);\n(sum (x));\n"},
		{"statements", "1;\n\n  2;;", "1;\n2;\n"},
		{"combinator", "((S plus) (times 2)) 3", "(((S (plus)) (times 2)) 3);\n"},
	})
}

func TestFormatError(t *testing.T) {
	_, err := FormatFile([]byte("plus 1 2 3"), "test.brook")
	var perr *brook.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "test.brook:1:8", perr.Source.String())

	_, err = Format([]byte("plus 1 #"))
	var lerr *brook.LexError
	require.True(t, errors.As(err, &lerr))
}
