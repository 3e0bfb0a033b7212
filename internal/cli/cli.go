// Package cli turns command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/horizonsvc/horizon/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("horizon", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Horizon - a lazy service module registry.

Usage:
  horizon [options] [MODULES_PATH]

Arguments:
  MODULES_PATH
    Path to a single .hcl manifest or a directory containing .hcl manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	modulesFlag := flagSet.String("modules-path", "", "Path to the manifest file or directory.")
	mFlag := flagSet.String("m", "", "Path to the manifest file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	initTimeoutFlag := flagSet.Duration("init-timeout", 0, "Bound on eager initialization. 0 disables the bound.")
	waitTimeoutFlag := flagSet.Duration("wait-timeout", 0, "Per-lookup wait on an in-progress initialization. 0 uses the default.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	modulesPath := *modulesFlag
	if modulesPath == "" {
		modulesPath = *mFlag
	}
	if modulesPath == "" && flagSet.NArg() > 0 {
		modulesPath = flagSet.Arg(0)
	}
	if modulesPath == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "a modules path is required"}
	}

	cfg, err := app.NewConfig(app.Config{
		ModulesPath: modulesPath,
		LogFormat:   *logFormatFlag,
		LogLevel:    *logLevelFlag,
		InitTimeout: *initTimeoutFlag,
		WaitTimeout: *waitTimeoutFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}
