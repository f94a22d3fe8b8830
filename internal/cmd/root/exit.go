package root

import (
	"errors"
	"io"

	"github.com/open-cli-collective/flattag/internal/view"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitUsage   = 2
	ExitFailure = 4
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// usageError marks err as a command-line mistake.
func usageError(err error) error {
	return &exitError{code: ExitUsage, err: err}
}

// failure marks err as an I/O or input syntax failure.
func failure(err error) error {
	return &exitError{code: ExitFailure, err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}

// PrintError writes err to w. Syntax errors are printed as "line N: message";
// anything else gets an "Error:" prefix, and usage errors a help hint.
func PrintError(w io.Writer, err error, noColor bool) {
	r := view.NewRenderer(view.FormatPlain, noColor)
	r.SetWriter(w)

	if isParseError(err) {
		r.Diagnostic(err.Error())
		return
	}
	r.Diagnostic("Error: " + err.Error())
	if ExitCode(err) == ExitUsage {
		r.RenderText("Run 'flattag --help' for usage.")
	}
}
