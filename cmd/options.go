// Copyright © 2024 The Brook authors

package cmd

import "github.com/brooklang/brook/brook"

// Option configures an exported command factory.
type Option func(*cmdConfig)

type cmdConfig struct {
	envConfig []brook.Config
}

// WithEnvConfig adds configuration applied to every environment the commands
// create, letting an embedder bind additional functions or replace the
// filesystem used by readFile.
func WithEnvConfig(config ...brook.Config) Option {
	return func(c *cmdConfig) {
		c.envConfig = append(c.envConfig, config...)
	}
}
