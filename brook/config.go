// Copyright © 2024 The Brook authors

package brook

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Config is a function that configures an environment or its runtime.
type Config func(env *Env) error

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *Env) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStderr returns a Config that makes environments write diagnostic
// output, including log entries, to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *Env) error {
		env.Runtime.Stderr = w
		env.Runtime.Logger.SetOutput(w)
		return nil
	}
}

// WithLogger returns a Config that replaces the runtime logger.
func WithLogger(logger *logrus.Logger) Config {
	return func(env *Env) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		env.Runtime.Logger = logger
		return nil
	}
}

// WithLogLevel returns a Config that sets the level of the runtime logger.
// Log entries are written to the runtime's Stderr.
func WithLogLevel(level logrus.Level) Config {
	return func(env *Env) error {
		env.Runtime.Logger.SetOutput(env.Runtime.Stderr)
		env.Runtime.Logger.SetLevel(level)
		return nil
	}
}

// WithFS returns a Config that makes readFile, and LoadFile, read from fs.
func WithFS(fs afero.Fs) Config {
	return func(env *Env) error {
		if fs == nil {
			return errors.New("nil filesystem")
		}
		env.Runtime.FS = fs
		return nil
	}
}

// WithProfiler returns a Config that attaches a profiler to the runtime.  The
// profiler is consulted on every function invocation once it is enabled.
func WithProfiler(p Profiler) Config {
	return func(env *Env) error {
		env.Runtime.Profiler = p
		return nil
	}
}
