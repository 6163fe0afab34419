// Copyright © 2024 The Brook authors

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/brook/x/profiler"
	"github.com/brooklang/brook/brookutil"
	"github.com/brooklang/brook/diagnostic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newEnv returns an environment configured from flags and config along with
// a function which completes any profiling session once evaluation is done.
func (c *cli) newEnv(cmd *cobra.Command) (*brook.Env, func() error, error) {
	level, err := logrus.ParseLevel(c.v.GetString("log-level"))
	if err != nil {
		return nil, nil, err
	}
	config := []brook.Config{
		brook.WithStderr(cmd.ErrOrStderr()),
		brook.WithLogLevel(level),
		brook.WithFS(c.fs),
	}
	config = append(config, c.cfg.envConfig...)
	env, err := brookutil.NewEnv(config...)
	if err != nil {
		return nil, nil, err
	}

	trace := c.v.GetBool("trace")
	profile := c.v.GetString("profile")
	switch {
	case trace && profile != "":
		return nil, nil, errors.New("--trace and --profile cannot be used together")
	case trace:
		done, err := startTrace(env, cmd.ErrOrStderr())
		return env, done, err
	case profile != "":
		done, err := startProfile(env, profile)
		return env, done, err
	}
	return env, func() error { return nil }, nil
}

// spanPrinter is an opentelemetry span exporter writing one line per span.
type spanPrinter struct {
	mut sync.Mutex
	w   io.Writer
}

var _ sdktrace.SpanExporter = &spanPrinter{}

func (p *spanPrinter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	p.mut.Lock()
	defer p.mut.Unlock()
	for _, span := range spans {
		_, err := fmt.Fprintf(p.w, "trace: %s %v\n", span.Name(), span.EndTime().Sub(span.StartTime()))
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *spanPrinter) Shutdown(ctx context.Context) error {
	return nil
}

func startTrace(env *brook.Env, w io.Writer) (func() error, error) {
	ctx := context.Background()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(&spanPrinter{w: w}),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	p := profiler.NewOpenTelemetryAnnotator(env.Runtime, ctx,
		profiler.WithContinuationFilter(),
		profiler.WithSignatureLabeler())
	err := p.Enable()
	if err != nil {
		return nil, err
	}
	return func() error {
		err := p.Complete()
		if err != nil {
			return err
		}
		return tp.Shutdown(ctx)
	}, nil
}

func startProfile(env *brook.Env, path string) (func() error, error) {
	p := profiler.NewCallgrindProfiler(env.Runtime)
	err := p.SetFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	err = p.Enable()
	if err != nil {
		return nil, err
	}
	return p.Complete, nil
}

func (c *cli) renderer() (*diagnostic.Renderer, error) {
	mode, err := diagnostic.ParseColorMode(c.v.GetString("color"))
	if err != nil {
		return nil, err
	}
	return &diagnostic.Renderer{Color: mode, FS: c.fs, Sources: make(map[string][]byte)}, nil
}

// renderError writes err to stderr, annotated with src when the error is
// located in it, and returns an error marking it as reported.
func (c *cli) renderError(cmd *cobra.Command, err error, name string, src []byte) error {
	r, rerr := c.renderer()
	if rerr != nil {
		return rerr
	}
	if src != nil {
		r.Sources[name] = src
	}
	_ = r.RenderError(cmd.ErrOrStderr(), err)
	return &reportedError{err}
}
