// Copyright © 2024 The Brook authors

// Package cmd implements the brook command line tool.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/brooklang/brook/brook"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds the state shared by the commands of one invocation.
type cli struct {
	v   *viper.Viper
	fs  afero.Fs
	cfg cmdConfig
}

// NewRootCommand returns the brook command with all of its subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	return newRootCommand(afero.NewOsFs(), opts...)
}

func newRootCommand(fs afero.Fs, opts ...Option) *cobra.Command {
	c := &cli{v: viper.New(), fs: fs}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	root := &cobra.Command{
		Use:   "brook",
		Short: "Brook interpreter",
		Long: `Brook is a small language with a point-free call syntax and a structural
type system that drives automatic partial application.

Getting started:
  brook run prog.brook              Run a source file
  brook run -e 'plus 1 2'           Evaluate a program given as an argument
  brook fmt prog.brook              Print the fully parenthesized program
  brook lint prog.brook             Report likely mistakes
  brook repl                        Start an interactive session
  brook doc map                     Show documentation for a builtin

Language overview:
  Every call takes at most two operands, written before, after, or around
  the function:  plus 1 2,  1 plus 2,  [1 2 3] sum.  A function given fewer
  operands than it declares returns a continuation awaiting the rest, so
  (plus 1) is a function adding one.  Statements are separated by ';' and
  name <- expr binds a value.

Configuration is read from $HOME/.brook.yaml and BROOK_ environment
variables, for example BROOK_LOG_LEVEL=debug.`,
		Version:       brook.BrookVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.brook.yaml)")
	flags.String("log-level", "warn", `Interpreter log level: "debug", "info", "warn", or "error".`)
	flags.String("color", "auto", `Control colored output: "auto", "always", or "never".`)
	flags.Bool("trace", false, "Write a trace span for every function invocation to stderr.")

	root.AddCommand(
		c.runCommand(),
		c.fmtCommand(),
		c.lintCommand(),
		c.replCommand(),
		c.docCommand(),
	)
	return root
}

// Execute runs the brook command.  This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// initConfig binds the flags of cmd and reads the config file and BROOK_
// environment variables.
func (c *cli) initConfig(cmd *cobra.Command) error {
	err := c.v.BindPFlags(cmd.Flags())
	if err != nil {
		return err
	}
	c.v.SetFs(c.fs)
	c.v.SetEnvPrefix("BROOK")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	cfgFile := c.v.GetString("config")
	if cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		c.v.AddConfigPath(home)
		c.v.SetConfigName(".brook")
		c.v.SetConfigType("yaml")
	}
	err = c.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (cfgFile != "" || !errors.As(err, &notFound)) {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// reportedError is an error which has already been shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }
