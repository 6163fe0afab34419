// Copyright © 2024 The Brook authors

// Package profiler contains implementations of brook.Profiler which record
// function invocations as trace spans, pprof labels, or callgrind profiles.
package profiler

import (
	"fmt"

	"github.com/brooklang/brook/brook"
)

// profiler is a minimal brook.Profiler
type profiler struct {
	runtime    *brook.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ brook.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Option configures the functions a profiler records and how they are
// labeled.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(fn *brook.Function) func() {
	return func() {}
}

// prettyFunName returns a pretty name and original name for fn.  If there is
// no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(fn *brook.Function) (string, string) {
	origLabel := fn.Name
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(p.runtime, fn)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(fn *brook.Function) bool {
	return !p.enabled || fn == nil || p.skipFilter != nil && p.skipFilter(fn)
}
