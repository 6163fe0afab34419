// Copyright © 2024 The Brook authors

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/brooklang/brook/diagnostic"
	"github.com/brooklang/brook/lint"
	"github.com/spf13/cobra"
)

func (c *cli) lintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [flags] [files...]",
		Short: "Run static analysis checks on brook programs",
		Long: `Run static analysis checks on brook programs.

The linter reports likely mistakes in brook code, similar to "go vet" for
Go.  Each check is an independent analyzer that examines the parsed program
and reports diagnostics.  The linter does not report style issues, use
"brook fmt" for that.

With no files, reads from stdin.  An argument ending in /... names every
.brook file below a directory.  The command fails when any problem is
reported.

Available checks (use --checks to select specific ones):
` + lint.AnalyzerDoc() + `Examples:
  brook lint prog.brook
  brook lint --json prog.brook
  brook lint --checks=undefined-name,builtin-arity ./...
  brook lint --exclude='scratch_*' ./...
  echo 'x <- 1; y' | brook lint`,
		RunE: c.lint,
	}
	cmd.Flags().Bool("json", false,
		"Output diagnostics as JSON.")
	cmd.Flags().String("checks", "",
		"Comma-separated list of checks to run (default: all).")
	cmd.Flags().Bool("list", false,
		"List available checks and exit.")
	cmd.Flags().StringArray("exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	return cmd
}

func (c *cli) lint(cmd *cobra.Command, args []string) error {
	if c.v.GetBool("list") {
		for _, name := range lint.AnalyzerNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name) //nolint:errcheck
		}
		return nil
	}
	analyzers, err := selectAnalyzers(c.v.GetString("checks"))
	if err != nil {
		return err
	}
	env, err := c.docEnv()
	if err != nil {
		return err
	}
	l := &lint.Linter{Analyzers: analyzers, Env: env}

	var all []lint.Diagnostic
	if len(args) == 0 {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		diags, err := l.LintFile(src, "<stdin>")
		if err != nil {
			return c.renderError(cmd, err, "<stdin>", src)
		}
		return c.reportLint(cmd, diags, map[string][]byte{"<stdin>": src})
	}

	expanded, err := expandArgs(c.fs, args, c.v.GetStringSlice("exclude"))
	if err != nil {
		return err
	}
	var failed error
	for _, path := range expanded {
		src, err := c.readSource(cmd, path)
		if err != nil {
			failed = err
			continue
		}
		diags, err := l.LintFile(src, path)
		if err != nil {
			failed = c.renderError(cmd, err, path, src)
			continue
		}
		all = append(all, diags...)
	}
	if err := c.reportLint(cmd, all, nil); err != nil {
		return err
	}
	return failed
}

func selectAnalyzers(checks string) ([]*lint.Analyzer, error) {
	analyzers := lint.DefaultAnalyzers()
	if checks == "" {
		return analyzers, nil
	}
	selected := make(map[string]bool)
	for _, name := range strings.Split(checks, ",") {
		selected[strings.TrimSpace(name)] = true
	}
	var filtered []*lint.Analyzer
	for _, a := range analyzers {
		if selected[a.Name] {
			filtered = append(filtered, a)
			delete(selected, a.Name)
		}
	}
	if len(selected) > 0 {
		unknown := make([]string, 0, len(selected))
		for name := range selected {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown check: %s", strings.Join(unknown, ", "))
	}
	return filtered, nil
}

// reportLint writes diags and returns a reported error when there are any.
func (c *cli) reportLint(cmd *cobra.Command, diags []lint.Diagnostic, sources map[string][]byte) error {
	if len(diags) == 0 {
		return nil
	}
	if c.v.GetBool("json") {
		if err := lint.FormatJSON(cmd.OutOrStdout(), diags); err != nil {
			return err
		}
	} else {
		r, err := c.renderer()
		if err != nil {
			return err
		}
		for name, src := range sources {
			r.Sources[name] = src
		}
		for _, d := range diags {
			if err := r.Render(cmd.ErrOrStderr(), lintDiagnostic(d)); err != nil {
				return err
			}
		}
	}
	return &reportedError{fmt.Errorf("%d problem(s) found", len(diags))}
}

func lintDiagnostic(d lint.Diagnostic) diagnostic.Diagnostic {
	out := diagnostic.Diagnostic{
		Severity:  d.Severity.String(),
		Condition: d.Analyzer,
		Message:   d.Message,
		Notes:     d.Notes,
	}
	if d.Pos.Line > 0 {
		out.Spans = []diagnostic.Span{{File: d.Pos.File, Line: d.Pos.Line, Col: d.Pos.Col}}
	}
	return out
}
