// Package check exposes a fluent assertion wrapper over the captured outcome of a process run. Every check either
// passes the wrapper through for further chaining or panics with a fully rendered diagnostic; a developer reading
// only the panic message should be able to diagnose the mismatch without re-running the test.
package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/clitools/test-common/dump"
	"github.com/clitools/test-common/palette"
	"github.com/clitools/test-common/pred"
	"github.com/clitools/test-common/proc"
)

// contextPair is a single named piece of diagnostic context rendered into panic messages.
type contextPair struct {
	name  string
	value string
}

// Assert wraps one completed process outcome with chained checks against its exit status and captured output. The
// outcome is immutable; the only builder step is 'AppendContext' which should be performed before any checks run.
type Assert struct {
	output  *proc.Output
	context []contextPair
}

// New returns an 'Assert' wrapping the given completed outcome.
func New(output *proc.Output) *Assert {
	return &Assert{output: output}
}

// Run executes the given command once and wraps the outcome, automatically appending the rendered command line, and
// the stdin buffer where one was attached, as diagnostic context.
//
// NOTE: A process which couldn't be launched at all panics immediately with the launch error; use
// '(*proc.Command).Ok' for error-return style handling of launch failures.
func Run(ctx context.Context, cmd *proc.Command) *Assert {
	return RunWith(ctx, proc.ExecRunner{}, cmd)
}

// RunWith is 'Run' with a caller supplied process launcher.
func RunWith(ctx context.Context, runner proc.Runner, cmd *proc.Command) *Assert {
	output, err := runner.Run(ctx, cmd)
	if err != nil {
		panic(fmt.Sprintf("Failed to run command\n%s\n%s", palette.Current().Pair("command", cmd.String()), err))
	}

	assert := New(output).AppendContext("command", cmd.String())

	if stdin, ok := cmd.Stdin(); ok {
		assert = assert.AppendContext("stdin", dump.Bytes(stdin))
	}

	return assert
}

// AppendContext clarifies failures with additional context which is rendered into any subsequent panic message.
func (a *Assert) AppendContext(name string, value any) *Assert {
	a.context = append(a.context, contextPair{name: name, value: fmt.Sprint(value)})
	return a
}

// Output returns the outcome under test.
func (a *Assert) Output() *proc.Output {
	return a.output
}

// String renders the accumulated context followed by the exit code and captured streams.
func (a *Assert) String() string {
	var (
		builder strings.Builder
		current = palette.Current()
	)

	for _, pair := range a.context {
		builder.WriteString(current.Pair(pair.name, pair.value) + "\n")
	}

	builder.WriteString(proc.FormatOutput(a.output))

	return builder.String()
}

// Success panics unless the process exited normally with a zero exit code.
func (a *Assert) Success() *Assert {
	if !a.output.Status.Success() {
		panic("Unexpected failure\n" + a.String())
	}

	return a
}

// Failure panics unless the process ended with a non-success status.
//
// NOTE: Abnormal termination counts as failure, so 'Failure' is satisfied by any outcome 'Interrupted' is satisfied
// by; use 'Interrupted' to require that no exit code was reported at all.
func (a *Assert) Failure() *Assert {
	if a.output.Status.Success() {
		panic("Unexpected success\n" + a.String())
	}

	return a
}

// Interrupted panics unless the process was terminated without reporting an exit code, for example by a signal.
func (a *Assert) Interrupted() *Assert {
	if a.output.Status.Exited {
		panic("Unexpected completion\n" + a.String())
	}

	return a
}

// Code panics unless the processes exit code satisfies the given predicate; accepts an int (exact match), a []int
// (one of) or a 'pred.Code'.
//
// NOTE: A process which was terminated without reporting an exit code panics regardless of the predicate.
func (a *Assert) Code(expected any) *Assert {
	predicate := pred.ForCode(expected)

	code, ok := a.output.Status.ExitCode()
	if !ok {
		panic("Command interrupted\n" + a.String())
	}

	if !predicate.Match(code) {
		panic(fmt.Sprintf("Unexpected exit code\n%s\n%s", palette.Current().Pair("expected", predicate.String()),
			a.String()))
	}

	return a
}

// Stdout panics unless the captured stdout satisfies the given predicate; accepts a string (compared as decoded
// UTF-8 text), a byte slice (compared byte for byte) or a 'pred.Buffer'.
func (a *Assert) Stdout(expected any) *Assert {
	return a.matchStream("stdout", a.output.Stdout, expected)
}

// Stderr panics unless the captured stderr satisfies the given predicate; accepts a string (compared as decoded
// UTF-8 text), a byte slice (compared byte for byte) or a 'pred.Buffer'.
func (a *Assert) Stderr(expected any) *Assert {
	return a.matchStream("stderr", a.output.Stderr, expected)
}

// matchStream evaluates the given predicate against one captured stream, panicking with a fully rendered diagnostic,
// including the predicates explanation where it provides one, when the predicate isn't satisfied.
func (a *Assert) matchStream(name string, actual []byte, expected any) *Assert {
	predicate := pred.ForBuffer(expected)

	if predicate.Match(actual) {
		return a
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "Unexpected %s\n", name)
	builder.WriteString(palette.Current().Pair("expected", predicate.String()) + "\n")

	if explainer, ok := predicate.(pred.Explainer); ok {
		if explanation := explainer.Explain(actual); explanation != "" {
			builder.WriteString(strings.TrimSuffix(explanation, "\n") + "\n")
		}
	}

	builder.WriteString(a.String())

	panic(builder.String())
}
