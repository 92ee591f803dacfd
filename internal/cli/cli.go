// Package cli holds the flag and exit-code plumbing shared by the
// commands under cmd/.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/YuminosukeSato/pointml/core/model"
	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Common holds the flags every command accepts.
type Common struct {
	LogLevel string
	Plot     string
	Seed     int64
}

// NewFlagSet creates a flag set that reports errors instead of exiting and
// prints usage with the positional argument.
func NewFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *Common) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <data.csv>\n", name)
		fs.PrintDefaults()
	}

	c := &Common{}
	fs.StringVar(&c.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&c.Plot, "plot", "", "write a chart to this file (.png, .svg, .pdf)")
	fs.Int64Var(&c.Seed, "seed", 0, "seed for the train/validation shuffle (0 picks one from the clock)")
	return fs, c
}

// Parse parses args and returns the single positional argument. Any other
// argument count prints usage and fails.
func Parse(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return "", errors.NewValidationError("args", "expected exactly one data file", fs.NArg())
	}
	return fs.Arg(0), nil
}

// Setup installs the zerolog logger on stderr and resolves the seed. On a
// bad level the logger is reset so Fail falls back to plain text.
func (c *Common) Setup(stderr io.Writer) error {
	if err := log.SetupLoggerTo(stderr, c.LogLevel); err != nil {
		log.SetLogger(nil)
		return err
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	log.GetLogger().Debug("Configuration",
		log.RandomSeedKey, c.Seed,
	)
	return nil
}

// Fail logs err at error level with its stack trace and returns ExitFailure.
// When the logger could not be set up the error is written to stderr as text.
func Fail(name string, stderr io.Writer, err error) int {
	logger := log.GetLoggerWithName(name)
	if logger.Enabled(context.Background(), log.LevelError) {
		logger.Error("Command failed", log.ErrAttrKey, err)
	} else {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
	}
	return ExitFailure
}

// SaveWeights persists a fitted model when path is set.
func SaveWeights(p model.Persistable, path, codecName string) error {
	if path == "" {
		return nil
	}
	codec, err := model.ParseCodec(codecName)
	if err != nil {
		return err
	}
	w, err := p.Weights()
	if err != nil {
		return err
	}
	if err := model.SaveModel(w, path, codec); err != nil {
		return err
	}
	log.GetLogger().Info("Model saved",
		log.OperationKey, log.OperationSave,
		log.ModelNameKey, w.ModelType,
		log.PathKey, path,
	)
	return nil
}
