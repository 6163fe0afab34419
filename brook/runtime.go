// Copyright © 2024 The Brook authors

package brook

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Runtime holds the services shared by an environment: the source reader,
// the filesystem used by readFile, logging, and an optional profiler.
type Runtime struct {
	Reader   Reader
	Stderr   io.Writer
	Logger   *logrus.Logger
	FS       afero.Fs
	Profiler Profiler
}

// StandardRuntime returns a new Runtime reading files from the operating
// system and writing diagnostics to os.Stderr.  The logger discards all
// output until configured otherwise.
func StandardRuntime() *Runtime {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.WarnLevel)
	return &Runtime{
		Stderr: os.Stderr,
		Logger: logger,
		FS:     afero.NewOsFs(),
	}
}
