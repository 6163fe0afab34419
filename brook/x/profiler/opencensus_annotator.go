// Copyright © 2024 The Brook authors

package profiler

import (
	"context"
	"errors"

	"github.com/brooklang/brook/brook"
	"go.opencensus.io/trace"
)

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       []context.Context
}

var _ brook.Profiler = &ocAnnotator{}

// NewOpenCensusAnnotator returns a profiler which records each function
// invocation as an opencensus span.
func NewOpenCensusAnnotator(runtime *brook.Runtime, parentContext context.Context, opts ...Option) brook.Profiler {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(fn *brook.Function) func() {
	if p.skipTrace(fn) {
		return func() {}
	}
	prettyLabel, funName := p.prettyFunName(fn)
	p.contexts = append(p.contexts, p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, prettyLabel)
	p.currentSpan.AddAttributes(
		trace.StringAttribute("function", funName),
		trace.Int64Attribute("arity", int64(fn.Arity())),
		trace.BoolAttribute("curried", fn.Curried()),
	)
	return func() {
		p.currentSpan.End()
		n := len(p.contexts) - 1
		p.currentContext = p.contexts[n]
		p.contexts = p.contexts[:n]
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
