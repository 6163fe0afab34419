// Copyright © 2024 The Brook authors

package cmd

import (
	"github.com/brooklang/brook/diagnostic"
	"github.com/brooklang/brook/repl"
	"github.com/spf13/cobra"
)

func (c *cli) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive brook session",
		Long: `Start an interactive read-eval-print loop.

Each line is evaluated once its brackets balance and the value of its last
statement is printed.  Names bound with <- persist for the session.  Line
editing, history and name completion are supported via readline.  Use
Ctrl-D to exit.

Commands:
  :doc NAME    Show documentation for a builtin
  :names       List the available functions

Example session:
  brook> xs <- range 1 4
  [1 2 3]
  brook> xs map (times 2)
  [2 4 6]
  brook> (S plus) (times 2)
  S(plus times_partial)(num)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, done, err := c.newEnv(cmd)
			if err != nil {
				return err
			}
			mode, err := diagnostic.ParseColorMode(c.v.GetString("color"))
			if err != nil {
				return err
			}
			err = repl.RunEnv(env, "brook> ", "     > ", repl.WithColor(mode))
			if err != nil {
				return err
			}
			return done()
		},
	}
}
