// Package command implements the component-resolver subcommands.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"

	"component-resolver/internal/config"
	"component-resolver/internal/coordinator"
	"component-resolver/pkg/logger"
)

// CLI is the state shared by every subcommand. Flags are parsed into it by the
// root command; the coordinator is built on first use.
type CLI struct {
	Out io.Writer
	Err io.Writer

	configPath string
	output     string
	debug      bool

	conf   *config.Config
	format Format

	once  sync.Once
	coord *coordinator.Coordinator
	err   error
}

// NewCLI returns a CLI writing results to out and logs and errors to errOut.
func NewCLI(out, errOut io.Writer) *CLI {
	return &CLI{Out: out, Err: errOut, format: FormatHuman}
}

// Highlight renders a usage line in the CLI accent color.
func Highlight(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

// setup loads the configuration and applies the global flags.
func (c *CLI) setup() error {
	conf, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	format, err := ParseFormat(c.output)
	if err != nil {
		return err
	}

	lvl, err := logger.ParseLevel(conf.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if c.debug {
		lvl = slog.LevelDebug
	}

	logger.SetLevel(lvl)
	logger.SetLogger(logger.New(c.Err))

	c.conf = conf
	c.format = format

	return nil
}

// Coordinator returns the coordinator described by the loaded configuration.
func (c *CLI) Coordinator() (*coordinator.Coordinator, error) {
	c.once.Do(func() {
		conf := c.conf
		if conf == nil {
			conf = config.Default()
		}

		c.coord, c.err = NewCoordinator(conf)
	})

	return c.coord, c.err
}
