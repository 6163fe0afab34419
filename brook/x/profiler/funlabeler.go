// Copyright © 2024 The Brook authors

package profiler

import (
	"regexp"
	"strings"

	"github.com/brooklang/brook/brook"
)

// FunLabeler provides an alternative name for a function label in the trace.
type FunLabeler func(runtime *brook.Runtime, fn *brook.Function) string

// WithDocLabeler labels spans using doc magic strings.
func WithDocLabeler() Option {
	return WithFunLabeler(docFunLabeler)
}

// WithSignatureLabeler labels spans with the function name and its parameter
// types, as in "plus(num num)".
func WithSignatureLabeler() Option {
	return WithFunLabeler(func(_ *brook.Runtime, fn *brook.Function) string {
		return fn.String()
	})
}

// WithFunLabeler sets the labeler for tracing spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

// DocLabel is a magic string used to extract function labels.
const DocLabel = `@trace\s*{([^}]+)}`

var (
	docLabelRegExp   = regexp.MustCompile(DocLabel)
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	if userLabel == "" {
		return ""
	}
	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")
	return validLabelRegExp.FindString(userLabel)
}

func extractLabel(docStr string) string {
	if docStr == "" {
		return ""
	}
	match := docLabelRegExp.FindStringSubmatch(docStr)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func docFunLabeler(_ *brook.Runtime, fn *brook.Function) string {
	return sanitizeLabel(extractLabel(fn.Doc))
}
