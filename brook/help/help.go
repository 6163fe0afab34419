// Copyright © 2024 The Brook authors

// Package help renders documentation for the names bound in a brook
// environment.
package help

import (
	"fmt"
	"io"
	"strings"

	"github.com/brooklang/brook/brook"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// DocWidth is the column at which documentation text is wrapped.
const DocWidth = 72

// RenderName writes to w formatted documentation for the value bound to name
// in env.  The exact formatting is subject to change across brook versions.
func RenderName(w io.Writer, env *brook.Env, name string) error {
	v, ok := env.Get(name)
	if !ok {
		return &brook.UnboundNameError{Name: name}
	}
	if v.Type != brook.VFun {
		_, err := fmt.Fprintf(w, "%s %s %v\n", v.TypeDesc(), name, v)
		return err
	}
	return renderFun(w, name, v.Fun)
}

// RenderList writes a one line summary of every function bound in env.
func RenderList(w io.Writer, env *brook.Env) error {
	for _, name := range env.Names() {
		v, _ := env.Get(name)
		if v.Type != brook.VFun {
			continue
		}
		_, err := fmt.Fprintf(w, "%-12s %s\n", name, summary(v.Fun.Doc))
		if err != nil {
			return err
		}
	}
	return nil
}

func renderFun(w io.Writer, name string, fn *brook.Function) error {
	sig := fn.Type().String()
	_, err := fmt.Fprintf(w, "%s%s\n", name, strings.TrimPrefix(sig, "func"))
	if err != nil {
		return fmt.Errorf("rendering signature: %w", err)
	}
	doc := cleanDoc(fn.Doc)
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
	}
	return err
}

// summary returns the first sentence of doc.
func summary(doc string) string {
	doc = strings.Join(strings.Fields(doc), " ")
	if i := strings.Index(doc, ". "); i >= 0 {
		return doc[:i+1]
	}
	return doc
}

func cleanDoc(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}
	doc = indent.String(wordwrap.String(doc, DocWidth), 2)
	return strings.TrimSuffix(doc, "\n")
}
