// Copyright © 2024 The Brook authors

package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/brooklang/brook/formatter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (c *cli) fmtCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] [files...]",
		Short: "Print the fully parenthesized form of brook programs",
		Long: `Format brook source files.

Every statement is written with each call fully parenthesized and is
terminated by a semicolon and a newline.  The formatter is idempotent.

With no files, reads from stdin and writes to stdout.
With files, prints formatted output to stdout unless -w is given.
An argument ending in /... names every .brook file below a directory.

Modes:
  (default)   Print formatted code to stdout
  -w          Write result back to source file
  -d          Display a diff of changes
  -l          List files that would be changed

Examples:
  brook fmt prog.brook
  brook fmt -w ./...
  brook fmt -l --exclude 'scratch_*' ./...
  echo 'plus 1 2' | brook fmt`,
		RunE: c.fmt,
	}
	cmd.Flags().BoolP("write", "w", false,
		"Write result to (source) file instead of stdout.")
	cmd.Flags().BoolP("diff", "d", false,
		"Display diffs instead of rewriting files.")
	cmd.Flags().BoolP("list", "l", false,
		"List files whose formatting differs from brook fmt's.")
	cmd.Flags().StringArray("exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	return cmd
}

func (c *cli) fmt(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		out, err := formatter.Format(src)
		if err != nil {
			return c.renderError(cmd, err, "<stdin>", src)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	expanded, err := expandArgs(c.fs, args, c.v.GetStringSlice("exclude"))
	if err != nil {
		return err
	}
	var failed error
	for _, path := range expanded {
		changed, err := c.fmtFile(cmd, path)
		if err != nil {
			failed = err
		} else if changed && c.v.GetBool("list") {
			failed = &reportedError{fmt.Errorf("%s is not formatted", path)}
		}
	}
	return failed
}

func (c *cli) fmtFile(cmd *cobra.Command, path string) (bool, error) {
	src, err := c.readSource(cmd, path)
	if err != nil {
		return false, err
	}
	out, err := formatter.FormatFile(src, path)
	if err != nil {
		return false, c.renderError(cmd, err, path, src)
	}
	changed := !bytes.Equal(src, out)
	w := cmd.OutOrStdout()
	switch {
	case c.v.GetBool("list"):
		if changed {
			fmt.Fprintln(w, path) //nolint:errcheck
		}
		return changed, nil
	case c.v.GetBool("diff"):
		if changed {
			printUnifiedDiff(w, path, src, out)
		}
		return changed, nil
	case c.v.GetBool("write"):
		if !changed {
			return false, nil
		}
		info, err := c.fs.Stat(path)
		if err != nil {
			return false, err
		}
		return true, afero.WriteFile(c.fs, path, out, info.Mode().Perm())
	}
	_, err = w.Write(out)
	return changed, err
}

// printUnifiedDiff writes a simple line by line diff.
func printUnifiedDiff(w io.Writer, path string, original, formatted []byte) {
	fmt.Fprintf(w, "--- %s\n+++ %s\n", path, path) //nolint:errcheck
	origLines := splitLines(original)
	fmtLines := splitLines(formatted)
	i, j := 0, 0
	for i < len(origLines) || j < len(fmtLines) {
		switch {
		case i < len(origLines) && j < len(fmtLines) && origLines[i] == fmtLines[j]:
			fmt.Fprintf(w, " %s\n", origLines[i]) //nolint:errcheck
			i++
			j++
		case i < len(origLines):
			fmt.Fprintf(w, "-%s\n", origLines[i]) //nolint:errcheck
			i++
		default:
			fmt.Fprintf(w, "+%s\n", fmtLines[j]) //nolint:errcheck
			j++
		}
	}
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
