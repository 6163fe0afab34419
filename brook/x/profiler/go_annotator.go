// Copyright © 2024 The Brook authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/brooklang/brook/brook"
)

// pprofAnnotator labels the current goroutine with the name of the function
// being invoked so that CPU profiles can be grouped by brook function.  It
// does not start pprof itself.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ brook.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler which sets pprof goroutine labels.
func NewPprofAnnotator(runtime *brook.Runtime, parentContext context.Context, opts ...Option) brook.Profiler {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

func (p *pprofAnnotator) Start(fn *brook.Function) func() {
	if p.skipTrace(fn) {
		return func() {}
	}
	// The context is kept on the annotator rather than using pprof.Do so that
	// invocation needs no extra stack frame when profiling is off.
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyFunName(fn)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", prettyLabel))
	pprof.SetGoroutineLabels(p.currentContext)
	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
