// Copyright © 2024 The Brook authors

package parser

import (
	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/parser/rdparser"
)

// NewReader returns a new brook.Reader
func NewReader() brook.Reader {
	return rdparser.NewReader()
}
