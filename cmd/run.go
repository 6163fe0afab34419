// Copyright © 2024 The Brook authors

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// exprName is the source name given to programs passed with -e.
const exprName = "<expr>"

func (c *cli) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run brook programs",
		Long: `Run brook programs read from files, or given as arguments with -e.

The value of the last statement of each program is printed to stdout.
Programs run in order in a single environment, so names bound by one
program are visible to those that follow.

Examples:
  brook run prog.brook
  brook run -e 'sum (range 1 11)'
  brook run --profile prog.callgrind prog.brook`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().BoolP("expression", "e", false,
		"Interpret arguments as brook programs")
	cmd.Flags().String("profile", "",
		"Write a callgrind profile of function invocations to a file")
	return cmd
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	sources := make([][]byte, len(args))
	for i, arg := range args {
		if c.v.GetBool("expression") {
			sources[i] = []byte(arg)
			continue
		}
		b, err := c.readSource(cmd, arg)
		if err != nil {
			return err
		}
		sources[i] = b
	}
	env, done, err := c.newEnv(cmd)
	if err != nil {
		return err
	}
	for i, src := range sources {
		name := args[i]
		if c.v.GetBool("expression") {
			name = exprName
		}
		v, err := env.LoadString(name, string(src))
		if err != nil {
			_ = done()
			return c.renderError(cmd, err, name, src)
		}
		fmt.Fprintln(cmd.OutOrStdout(), v.Display()) //nolint:errcheck
	}
	return done()
}

// readSource reads the source file at path, reporting a missing file the
// way every command does.
func (c *cli) readSource(cmd *cobra.Command, path string) ([]byte, error) {
	info, err := c.fs.Stat(path)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", path)
	}
	if err == nil {
		var b []byte
		b, err = afero.ReadFile(c.fs, path)
		if err == nil {
			return b, nil
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "No such source file %q.\n", path) //nolint:errcheck
	return nil, &reportedError{err}
}
