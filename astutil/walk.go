// Copyright © 2024 The Brook authors

// Package astutil provides shared AST walking utilities for brook programs.
//
// These helpers are used by the lint package for traversing parsed
// statements.
package astutil

import (
	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/parser/token"
)

// Walk calls fn for every node in the tree, depth-first.
// parent is nil for top-level statements.
func Walk(exprs []brook.Expr, fn func(node brook.Expr, parent brook.Expr, depth int)) {
	for _, expr := range exprs {
		walkNode(expr, nil, 0, fn)
	}
}

func walkNode(node brook.Expr, parent brook.Expr, depth int, fn func(brook.Expr, brook.Expr, int)) {
	if node == nil {
		return
	}
	fn(node, parent, depth)
	for _, child := range Children(node) {
		walkNode(child, node, depth+1, fn)
	}
}

// Children returns the direct subexpressions of node in source order.
func Children(node brook.Expr) []brook.Expr {
	var children []brook.Expr
	switch node := node.(type) {
	case *brook.ArrayExpr:
		children = append(children, node.Members...)
	case *brook.Assignment:
		children = append(children, node.Expr)
	case *brook.FunctionCall:
		for _, c := range []brook.Expr{node.Lhs, node.Callee, node.Rhs} {
			if c != nil {
				children = append(children, c)
			}
		}
	}
	return children
}

// WalkCalls calls fn for every function call in the tree, including bare
// names.
func WalkCalls(exprs []brook.Expr, fn func(call *brook.FunctionCall, depth int)) {
	Walk(exprs, func(node brook.Expr, _ brook.Expr, depth int) {
		if call, ok := node.(*brook.FunctionCall); ok {
			fn(call, depth)
		}
	})
}

// CalleeName returns the name a call resolves, or "" when the callee is an
// expression.
func CalleeName(call *brook.FunctionCall) string {
	if call.Callee != nil {
		return ""
	}
	return call.Name
}

// ArgCount returns the number of operands supplied to a call.
func ArgCount(call *brook.FunctionCall) int {
	n := 0
	if call.Lhs != nil {
		n++
	}
	if call.Rhs != nil {
		n++
	}
	return n
}

// References returns the names resolved by calls within expr.
func References(expr brook.Expr) map[string]bool {
	refs := make(map[string]bool)
	WalkCalls([]brook.Expr{expr}, func(call *brook.FunctionCall, _ int) {
		if name := CalleeName(call); name != "" {
			refs[name] = true
		}
	})
	return refs
}

// UserDefined returns the set of names assigned anywhere in the program.
//
// The result ignores statement order, which is conservative: it may
// suppress a valid finding but will never produce a false positive.
func UserDefined(exprs []brook.Expr) map[string]bool {
	defs := make(map[string]bool)
	for _, expr := range exprs {
		if a, ok := expr.(*brook.Assignment); ok {
			defs[a.Name] = true
		}
	}
	return defs
}

// SourceOf returns the best source location for a node.
// Prefers the node's own source, falls back to its first child's.
func SourceOf(node brook.Expr) *token.Location {
	if loc := node.Location(); loc != nil && loc.Line > 0 {
		return loc
	}
	for _, child := range Children(node) {
		if loc := SourceOf(child); loc != nil {
			return loc
		}
	}
	return node.Location()
}
