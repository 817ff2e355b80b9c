package proc

import (
	"strings"

	"github.com/clitools/test-common/dump"
	"github.com/clitools/test-common/palette"
)

// OutputError is the error returned when a process run couldn't be classified as a success. It distinguishes a
// process which ran to completion but reported failure from one which couldn't be launched at all, and optionally
// carries the rendered command line and supplied stdin for diagnostics.
type OutputError struct {
	cmd    string
	stdin  []byte
	output *Output // the process ran, but reported failure
	cause  error   // the process couldn't be launched
}

// NewOutputError returns an 'OutputError' for a process which ran to completion but reported failure.
func NewOutputError(output *Output) *OutputError {
	return &OutputError{output: output}
}

// NewLaunchError returns an 'OutputError' for a process which couldn't be launched at all, for example because the
// binary doesn't exist.
func NewLaunchError(cause error) *OutputError {
	return &OutputError{cause: cause}
}

// SetCmd attaches the rendered command line for additional context.
func (e *OutputError) SetCmd(cmd string) *OutputError {
	e.cmd = cmd
	return e
}

// SetStdin attaches the stdin buffer supplied to the process for additional context.
func (e *OutputError) SetStdin(stdin []byte) *OutputError {
	e.stdin = stdin
	return e
}

// AsOutput returns the contained output, the boolean indicates whether one exists; only an error for a process which
// ran and reported failure carries an output.
func (e *OutputError) AsOutput() (*Output, bool) {
	return e.output, e.output != nil
}

// Unwrap returns the underlying launch error, <nil> for a process which ran but reported failure.
func (e *OutputError) Unwrap() error {
	return e.cause
}

// Error renders the full diagnostic; the command line and stdin where attached, then either the exit code and
// captured streams, or the underlying launch error.
func (e *OutputError) Error() string {
	var (
		builder strings.Builder
		current = palette.Current()
	)

	if e.cmd != "" {
		builder.WriteString(current.Pair("command", e.cmd) + "\n")
	}

	if e.stdin != nil {
		builder.WriteString(current.Pair("stdin", dump.Bytes(e.stdin)) + "\n")
	}

	if e.output == nil {
		builder.WriteString(e.cause.Error())
		return builder.String()
	}

	builder.WriteString(FormatOutput(e.output))

	return builder.String()
}

// FormatOutput renders the exit code and captured streams of the given output as key/value diagnostic lines.
func FormatOutput(output *Output) string {
	var (
		builder strings.Builder
		current = palette.Current()
	)

	builder.WriteString(current.Pair("code", output.Status.String()) + "\n")

	if !output.Status.Exited && output.Status.Signal != "" {
		builder.WriteString(current.Pair("signal", output.Status.Signal) + "\n")
	}

	builder.WriteString(current.Pair("stdout", dump.Bytes(output.Stdout)) + "\n")
	builder.WriteString(current.Pair("stderr", dump.Bytes(output.Stderr)) + "\n")

	return builder.String()
}
