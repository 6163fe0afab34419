// Copyright © 2024 The Brook authors

package repl

import (
	"io"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/diagnostic"
)

// renderError renders err against the input which produced it.
func renderError(w io.Writer, color diagnostic.ColorMode, src string, err error) {
	d := diagnostic.FromError(err)
	if d.Condition == brook.CondUnboundName {
		d.Notes = append(d.Notes, "use :names to list the available functions")
	}
	r := &diagnostic.Renderer{
		Color:   color,
		Sources: map[string][]byte{replFile: []byte(src)},
	}
	_ = r.Render(w, d)
}
