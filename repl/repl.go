// Copyright © 2024 The Brook authors

// Package repl implements an interactive brook session.
package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/brook/help"
	"github.com/brooklang/brook/brookutil"
	"github.com/brooklang/brook/diagnostic"
	"github.com/brooklang/brook/parser/lexer"
	"github.com/brooklang/brook/parser/token"
	"github.com/ergochat/readline"
)

// replFile is the source name given to input read by the repl.
const replFile = "repl"

type config struct {
	stdin       io.ReadCloser
	stderr      io.WriteCloser
	historyFile string
	color       diagnostic.ColorMode
	envConfig   []brook.Config
}

func newConfig(opts ...Option) *config {
	config := &config{historyFile: historyPath()}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a repl session.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the file in which input history is kept.  An empty
// path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithColor sets the color mode used to render errors.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithEnvConfig adds configuration for the environment created by RunRepl.
func WithEnvConfig(cfgs ...brook.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfgs...)
	}
}

// RunRepl runs a simple repl in a fresh brook environment.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	envConfig := cfg.envConfig
	if cfg.stderr != nil {
		envConfig = append(envConfig, brook.WithStderr(cfg.stderr))
	}
	env, err := brookutil.NewEnv(envConfig...)
	if err != nil {
		return fmt.Errorf("environment initialization failure: %w", err)
	}
	return RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEnv runs a simple repl in env.  Input is accumulated, using the cont
// prompt, until its brackets balance.  RunEnv returns when the input is
// exhausted.
func RunEnv(env *brook.Env, prompt, cont string, opts ...Option) error {
	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}
	ensureHistoryFilePermissions(cfg.historyFile)

	rlCfg := &readline.Config{
		Stdout:            env.Runtime.Stderr,
		Stderr:            env.Runtime.Stderr,
		Prompt:            prompt,
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	s := &session{env: env, out: env.Runtime.Stderr, color: cfg.color}
	var pending bytes.Buffer
	for {
		if pending.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			pending.Reset()
			continue
		}
		if err != nil {
			break
		}
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending.WriteString(line)
		pending.WriteString("\n")
		if !complete(pending.String()) {
			continue
		}
		s.exec(pending.String())
		pending.Reset()
	}
	if pending.Len() > 0 {
		s.exec(pending.String())
	}
	return nil
}

type session struct {
	env   *brook.Env
	out   io.Writer
	color diagnostic.ColorMode
}

func (s *session) exec(src string) {
	if s.command(strings.TrimSpace(src)) {
		return
	}
	v, err := s.env.LoadString(replFile, src)
	if err != nil {
		renderError(s.out, s.color, src, err)
		return
	}
	fmt.Fprintln(s.out, v) //nolint:errcheck // best-effort REPL output
}

// command runs a repl command, a line beginning with a colon, and reports
// whether line was one.
func (s *session) command(line string) bool {
	if !strings.HasPrefix(line, ":") {
		return false
	}
	fields := strings.Fields(line[1:])
	var err error
	switch {
	case len(fields) == 2 && fields[0] == "doc":
		err = help.RenderName(s.out, s.env, fields[1])
	case len(fields) == 1 && fields[0] == "names":
		err = help.RenderList(s.out, s.env)
	default:
		fmt.Fprintln(s.out, "commands: :doc NAME, :names") //nolint:errcheck // best-effort REPL output
	}
	if err != nil {
		renderError(s.out, s.color, line, err)
	}
	return true
}

// complete reports whether the brackets in src are balanced.  Input which
// cannot be lexed is complete so that its error is reported.
func complete(src string) bool {
	toks, err := lexer.Lex(replFile, []byte(src))
	if err != nil {
		return true
	}
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.PAREN_L, token.BRACE_L:
			depth++
		case token.PAREN_R, token.BRACE_R:
			depth--
		}
	}
	return depth <= 0
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brook_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to the current user.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o600) //nolint:gosec // path is the user's history file
	if err != nil {
		return
	}
	f.Close()                 //nolint:errcheck,gosec // only created for its mode
	_ = os.Chmod(path, 0o600) //nolint:gosec // best effort
}
