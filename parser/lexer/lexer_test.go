// Copyright © 2024 The Brook authors

package lexer

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testToken struct {
	typ  token.Type
	text string
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []testToken
	}{
		{``, nil},
		{"  \n\t ", nil},
		{`abc`, []testToken{
			{token.IDENT, "abc"},
		}},
		{`plus 1 2`, []testToken{
			{token.IDENT, "plus"},
			{token.NUM, "1"},
			{token.NUM, "2"},
		}},
		{`()[];<-`, []testToken{
			{token.PAREN_L, "("},
			{token.PAREN_R, ")"},
			{token.BRACE_L, "["},
			{token.BRACE_R, "]"},
			{token.SEMI, ";"},
			{token.ASSIGN, "<-"},
		}},
		{`10 -5 +3 0.25 x2 _`, []testToken{
			{token.NUM, "10"},
			{token.NUM, "-5"},
			{token.NUM, "+3"},
			{token.NUM, "0.25"},
			{token.IDENT, "x2"},
			{token.IDENT, "_"},
		}},
		{`"abc" "" "a \"q\" b"`, []testToken{
			{token.STR, `"abc"`},
			{token.STR, `""`},
			{token.STR, `"a \"q\" b"`},
		}},
		{`(map [1 2] (plus 1))`, []testToken{
			{token.PAREN_L, "("},
			{token.IDENT, "map"},
			{token.BRACE_L, "["},
			{token.NUM, "1"},
			{token.NUM, "2"},
			{token.BRACE_R, "]"},
			{token.PAREN_L, "("},
			{token.IDENT, "plus"},
			{token.NUM, "1"},
			{token.PAREN_R, ")"},
			{token.PAREN_R, ")"},
		}},
		{`x<-1`, []testToken{
			{token.IDENT, "x"},
			{token.ASSIGN, "<-"},
			{token.NUM, "1"},
		}},
	}
	for i, test := range tests {
		toks, err := Lex("test", []byte(test.input))
		if !assert.NoError(t, err, "test %d: %q", i, test.input) {
			continue
		}
		got := make([]testToken, len(toks))
		for j, tok := range toks {
			got[j] = testToken{tok.Type, tok.Text}
		}
		if len(test.tokens) == 0 {
			assert.Empty(t, got, "test %d: %q", i, test.input)
			continue
		}
		assert.Equal(t, test.tokens, got, "test %d: %q", i, test.input)
	}
}

func TestLexerLocation(t *testing.T) {
	toks, err := Lex("test.brook", []byte("plus 1 2;\n  foo"))
	require.NoError(t, err)
	require.Len(t, toks, 5)
	assert.Equal(t, "test.brook:1:1", toks[0].Source.String())
	assert.Equal(t, "test.brook:1:8", toks[2].Source.String())
	assert.Equal(t, "test.brook:2:3", toks[4].Source.String())
	assert.Equal(t, 12, toks[4].Source.Pos)
}

func TestLexerError(t *testing.T) {
	tests := []struct {
		input string
		loc   string
	}{
		{`plus 1 @`, "test:1:8"},
		{"1\n  < 2", "test:2:3"},
		{`"unterminated`, "test:1:1"},
	}
	for i, test := range tests {
		_, err := Lex("test", []byte(test.input))
		var lexErr *brook.LexError
		if assert.True(t, errors.As(err, &lexErr), "test %d: %v", i, err) {
			assert.Equal(t, test.loc, lexErr.Source.String(), "test %d", i)
			assert.Equal(t, brook.CondLexError, lexErr.Condition())
		}
	}
}

func TestReadToken(t *testing.T) {
	lex := New("test", []byte("true <- \"s\""))
	var got []testToken
	for {
		tok, err := lex.ReadToken()
		require.NoError(t, err)
		if tok == nil {
			break
		}
		got = append(got, testToken{tok.Type, tok.Text})
	}
	assert.Equal(t, []testToken{
		{token.IDENT, "true"},
		{token.ASSIGN, "<-"},
		{token.STR, `"s"`},
	}, got)

	// the stream stays exhausted
	tok, err := lex.ReadToken()
	assert.NoError(t, err)
	assert.Nil(t, tok)
}

func TestLexerErrorExcerpt(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"1 @ 2", "@ 2"},
		{"@abcdefghijklmnopqrstuvwxyz", "@abcdefghijklmno"},
		{"@ééééééééééééééééééé", "@ééééééééééééééé"},
		{"1 ★★★★★★★★★★★★★★★★★★", "★★★★★★★★★★★★★★★★"},
	}
	for i, test := range tests {
		_, err := Lex("test", []byte(test.input))
		var lexErr *brook.LexError
		if assert.True(t, errors.As(err, &lexErr), "test %d: %v", i, err) {
			assert.Equal(t, test.text, lexErr.Text, "test %d", i)
			assert.True(t, utf8.ValidString(lexErr.Text), "test %d", i)
		}
	}
}
