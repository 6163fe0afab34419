// Copyright © 2024 The Brook authors

package profiler

import (
	"regexp"

	"github.com/brooklang/brook/brook"
)

// SkipFilter returns true for functions which should not be recorded.
type SkipFilter func(fn *brook.Function) bool

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithDocFilter filters to only include spans for functions with docs that
// denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithContinuationFilter skips the continuations produced by partial
// application, so a curried call is recorded once when its underlying
// function runs.
func WithContinuationFilter() Option {
	return WithSkipFilter(func(fn *brook.Function) bool {
		return fn.Curried()
	})
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter.  All functions with a doc string that contains this string
// will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(fn *brook.Function) bool {
	if fn.Doc == "" {
		return true
	}
	return !docTraceRegExp.MatchString(fn.Doc)
}
