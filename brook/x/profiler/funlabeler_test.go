// Copyright © 2024 The Brook authors

package profiler

import (
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/stretchr/testify/assert"
)

func TestExtractLabel(t *testing.T) {
	tests := []struct {
		doc   string
		label string
	}{
		{"", ""},
		{"no magic here", ""},
		{"@trace{Add It}", "Add It"},
		{"Adds things. @trace { spaced }", "spaced"},
		{"@trace{first} @trace{second}", "first"},
		{"@trace{}", ""},
	}
	for _, test := range tests {
		assert.Equal(t, test.label, extractLabel(test.doc), test.doc)
	}
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "", sanitizeLabel(""))
	assert.Equal(t, "Add_It", sanitizeLabel("Add It"))
	assert.Equal(t, "a_b", sanitizeLabel("a \t__ b"))
}

func TestDocSkipFilter(t *testing.T) {
	fn := brook.NewFunction("f", nil, brook.NumType, nil)
	assert.True(t, docSkipFilter(fn))
	fn.Doc = "Returns a number."
	assert.True(t, docSkipFilter(fn))
	fn.Doc = "Returns a number. @trace"
	assert.False(t, docSkipFilter(fn))
	assert.Equal(t, "", docFunLabeler(nil, fn))
	fn.Doc = "@trace{Number Maker}"
	assert.Equal(t, "Number_Maker", docFunLabeler(nil, fn))
}

func TestPrettyFunName(t *testing.T) {
	fn := brook.NewFunction("f", []*brook.TypeDesc{brook.NumType}, brook.NumType, nil)
	p := &profiler{}
	pretty, orig := p.prettyFunName(fn)
	assert.Equal(t, "f", pretty)
	assert.Equal(t, "f", orig)

	WithSignatureLabeler()(p)
	pretty, orig = p.prettyFunName(fn)
	assert.Equal(t, "f(num)", pretty)
	assert.Equal(t, "f", orig)

	WithDocLabeler()(p)
	pretty, _ = p.prettyFunName(fn)
	assert.Equal(t, "f", pretty)
}
