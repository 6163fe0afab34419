// Copyright © 2024 The Brook authors

package repl

import (
	"strings"

	"github.com/brooklang/brook/brook"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the names
// bound in a brook environment.
type symbolCompleter struct {
	env *brook.Env
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !strings.ContainsRune(" \t\n([;", line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	var result [][]rune
	for _, name := range c.env.Names() {
		if strings.HasPrefix(name, prefix) && name != prefix {
			result = append(result, []rune(name[len(prefix):]))
		}
	}
	if len(result) == 0 {
		return nil, 0
	}
	return result, len(prefix)
}
