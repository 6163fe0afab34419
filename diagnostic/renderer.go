// Copyright © 2024 The Brook authors

package diagnostic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Sources holds source text which does not live in a file, such as an
	// expression given on the command line.  It is consulted first.
	Sources map[string][]byte

	// FS is used to read source files.  If nil, the operating system
	// filesystem is used.
	FS afero.Fs
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}
	color := r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p, color)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderError converts err with FromError and renders it to w.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	return r.Render(w, FromError(err))
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// writeHeader writes the severity line and returns the color used for the
// severity.
func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) string {
	sev := d.Severity
	if sev == "" {
		sev = "error"
	}
	color := p.boldRed
	if sev != "error" {
		color = p.boldYellow
	}
	if d.Condition != "" {
		sev += "[" + d.Condition + "]"
	}
	ew.printf("%s%s%s: %s%s%s\n", color, sev, p.reset, p.bold, d.Message, p.reset)
	return color
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette, color string) {
	loc := span.File
	if loc == "" {
		loc = "<input>"
	}
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", loc, span.Line, span.Col)
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source := r.readSourceLine(span.File, span.Line)
	if source == "" {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	displaySource := strings.ReplaceAll(source, "\t", "    ")
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, lineStr, p.reset, displaySource)

	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = detectEndCol(source, col)
	}
	if endCol < col {
		endCol = col
	}
	prefix := ""
	if col-1 <= len(source) {
		prefix = source[:col-1]
	}
	underPad := strings.Repeat(" ", displayWidth(prefix))
	underline := strings.Repeat("^", endCol-col+1)
	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, pad, p.reset, underPad, color, underline, p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", color, span.Label, p.reset)
	}
	ew.print("\n")
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

func (r *Renderer) readSourceLine(file string, line int) string {
	if line <= 0 {
		return ""
	}
	data, ok := r.Sources[file]
	if !ok {
		if file == "" {
			return ""
		}
		fs := r.FS
		if fs == nil {
			fs = afero.NewOsFs()
		}
		var err error
		data, err = afero.ReadFile(fs, file)
		if err != nil {
			return ""
		}
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 1; scanner.Scan(); i++ {
		if i == line {
			return scanner.Text()
		}
	}
	return ""
}

// detectEndCol scans from col to find the end of the current token.
func detectEndCol(source string, col int) int {
	if col > len(source) {
		return col
	}
	end := col - 1
	for end < len(source) {
		ch, size := utf8.DecodeRuneInString(source[end:])
		if strings.ContainsRune(" \t()[];", ch) {
			break
		}
		end += size
	}
	if end == col-1 {
		return col
	}
	return end
}

// displayWidth returns the display width of a string, expanding tabs to 4 spaces.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
