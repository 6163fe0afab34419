// Copyright © 2024 The Brook authors

package brook

// Profiler observes function invocations.
type Profiler interface {
	// IsEnabled reports whether the profiler is recording.
	IsEnabled() bool
	// Enable starts recording.
	Enable() error
	// Complete ends the profiling session.
	Complete() error
	// Start marks the start of an invocation of fn and returns a function
	// which marks its end.
	Start(fn *Function) func()
}
