package cli

import (
	"fmt"
	"os"

	"github.com/hooktools/core/errors"
)

// ErrorHandler turns internal errors into actionable terminal output.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose}
}

// Handle prints a message for err, with a follow-up hint when there is
// an obvious next command to run. It always returns err unchanged so
// callers can propagate it for the exit code.
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		report("%v", err)
		hint("Run 'hookcfg sample-config --write' to create a starter configuration.")

	case errors.ErrCodeConfigLegacy:
		report("%v", err)
		hint("Run 'hookcfg migrate-config' to update it to the current format.")

	case errors.ErrCodeConfigValidation, errors.ErrCodeManifestValidation:
		hookErr, ok := err.(*errors.HookError)
		if !ok {
			report("%v", err)
			break
		}
		report("%s", hookErr.Message)
		if list, ok := hookErr.Details["errors"].([]string); ok {
			for _, msg := range list {
				fmt.Fprintf(os.Stderr, "  - %s\n", msg)
			}
		}

	case errors.ErrCodeRegexInvalid:
		if hookErr, ok := err.(*errors.HookError); ok {
			report("Invalid regular expression for %s: %s",
				hookErr.Details["field"], hookErr.Details["pattern"])
			hint("Patterns use Go regexp syntax; see https://pkg.go.dev/regexp/syntax.")
		}

	case errors.ErrCodeMigrationFailed:
		report("%v", err)
		hint("The original file was left untouched.")

	case errors.ErrCodeDaemonNotRunning:
		report("The watch daemon is not running.")
		hint("Start it with 'hookcfg daemon run'.")

	case errors.ErrCodeDaemonAlreadyRunning:
		if hookErr, ok := err.(*errors.HookError); ok {
			report("The watch daemon is already running (PID %v)", hookErr.Details["pid"])
			hint("Stop it with 'hookcfg daemon stop' before starting another.")
		}

	default:
		report("Error: %v", err)
		if h.Verbose {
			if hookErr, ok := err.(*errors.HookError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", hookErr.ToJSON())
			}
		}
	}
	return err
}

// report prints the failure line with the error marker.
func report(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "❌ "+format+"\n", args...)
}

// hint prints a plain follow-up line under a reported failure.
func hint(line string) {
	fmt.Fprintln(os.Stderr, line)
}
