package proc

import "strconv"

// Status describes how a single process run ended.
type Status struct {
	// Code is the exit code reported by the process, only meaningful when 'Exited' is true.
	Code int

	// Exited indicates the process ran to completion and reported an exit code; false means it was terminated
	// abnormally e.g. killed by a signal before it could report one.
	Exited bool

	// Signal is the name of the signal which terminated the process, where known. Only populated on Unix platforms.
	Signal string
}

// Success returns a boolean indicating whether the process exited normally with a zero exit code.
func (s Status) Success() bool {
	return s.Exited && s.Code == 0
}

// ExitCode returns the exit code reported by the process, the boolean indicates whether a code was reported at all.
func (s Status) ExitCode() (int, bool) {
	return s.Code, s.Exited
}

// String returns the status rendered the way it appears in diagnostics.
func (s Status) String() string {
	if !s.Exited {
		return "<interrupted>"
	}

	return strconv.Itoa(s.Code)
}

// Output is the captured outcome of one completed process run; it's immutable once produced.
type Output struct {
	// Status describes how the process ended.
	Status Status

	// Stdout is everything the process wrote to its standard output.
	Stdout []byte

	// Stderr is everything the process wrote to its standard error.
	Stderr []byte
}

// Ok classifies the outcome, returning the output unchanged when the process exited successfully and an
// '*OutputError' describing the failure otherwise.
func (o *Output) Ok() (*Output, error) {
	if o.Status.Success() {
		return o, nil
	}

	return nil, NewOutputError(o)
}
