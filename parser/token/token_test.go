// Copyright © 2024 The Brook authors

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	used := make(map[string]bool)
	for tok := Type(0); tok < numTokenTypes; tok++ {
		str := tok.String()
		if str == "" {
			t.Errorf("token type %x has empty string value", tok)
			continue
		}
		if used[str] {
			t.Errorf("token type string used twice: %v", tok)
		}
		used[str] = true
	}
	assert.Equal(t, "invalid", numTokenTypes.String())
}

func TestLocationAt(t *testing.T) {
	src := "plus 1 2;\nfoo bar"
	tests := []struct {
		pos  int
		line int
		col  int
	}{
		{0, 1, 1},
		{5, 1, 6},
		{10, 2, 1},
		{14, 2, 5},
		{100, 2, 8},
	}
	for _, test := range tests {
		loc := LocationAt("test.brook", src, test.pos)
		assert.Equal(t, test.line, loc.Line, "pos %d", test.pos)
		assert.Equal(t, test.col, loc.Col, "pos %d", test.pos)
	}
	assert.Equal(t, "test.brook:2:5", LocationAt("test.brook", src, 14).String())
	assert.Equal(t, "<input>:1:1", LocationAt("", src, 0).String())
}
