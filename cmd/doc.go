// Copyright © 2024 The Brook authors

package cmd

import (
	"bufio"
	"io"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/brook/help"
	"github.com/brooklang/brook/brookutil"
	"github.com/brooklang/brook/docs"
	"github.com/spf13/cobra"
)

// DocCommand returns a standalone doc command.  Options let an embedder
// document functions it binds in addition to the builtins.
func DocCommand(opts ...Option) *cobra.Command {
	c := &cli{}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c.docCommand()
}

func (c *cli) docCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc [NAME]",
		Short: "Show documentation for brook builtins",
		Long: `Show the signature and documentation of a builtin function or constant.

With no NAME, lists every function with a one line summary.  With --guide,
prints the language guide.

Examples:
  brook doc            List all functions
  brook doc --guide    Show the language guide
  brook doc map        Show docs for the map function
  brook doc S          Show docs for the S combinator`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if guide, _ := cmd.Flags().GetBool("guide"); guide {
				_, err := io.WriteString(cmd.OutOrStdout(), docs.LangGuide)
				return err
			}
			env, err := c.docEnv()
			if err != nil {
				return err
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			if len(args) == 0 {
				return help.RenderList(out, env)
			}
			return help.RenderName(out, env, args[0])
		},
	}
	cmd.Flags().Bool("guide", false, "Print the language guide.")
	return cmd
}

func (c *cli) docEnv() (*brook.Env, error) {
	return brookutil.NewEnv(c.cfg.envConfig...)
}
