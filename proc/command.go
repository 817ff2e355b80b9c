// Package proc wraps the execution of a single external process, capturing its exit status and output streams, and
// classifies the outcome as a success or a typed failure suitable for test diagnostics.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/clitools/test-common/dump"
	"github.com/clitools/test-common/log"
	"github.com/clitools/test-common/palette"
)

// Command describes a single run of an external program whose outcome will be captured and inspected.
type Command struct {
	// Path is the path of the program to run.
	Path string

	// Args are the arguments passed to the program, not including the program name itself.
	Args []string

	// Env are environment overrides which will be appended to the environment of the current process.
	Env []string

	// Dir is the working directory of the program, defaults to the working directory of the current process.
	Dir string

	// Timeout bounds the total execution time where non-zero, the child is killed on expiry and the run surfaces as
	// an interrupted (no exit code) outcome.
	Timeout time.Duration

	stdin    []byte
	hasStdin bool
}

// New returns a command which will run the program at the given path with the provided arguments.
func New(path string, args ...string) *Command {
	return &Command{Path: path, Args: args}
}

// WithStdin attaches a byte buffer which will be piped to the programs standard input when it's run.
func (c *Command) WithStdin(buffer []byte) *Command {
	c.stdin = buffer
	c.hasStdin = true

	return c
}

// WithStdinFile attaches the contents of the file at the given path as the programs standard input.
//
// NOTE: The path is resolved relative to the current processes working directory, not the commands 'Dir'.
func (c *Command) WithStdinFile(path string) (*Command, error) {
	buffer, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin file: %w", err)
	}

	return c.WithStdin(buffer), nil
}

// WithTimeout bounds the total execution time of the command.
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	c.Timeout = timeout
	return c
}

// Stdin returns the attached stdin buffer, the boolean indicates whether one was attached.
func (c *Command) Stdin() ([]byte, bool) {
	return c.stdin, c.hasStdin
}

// String returns the command line rendered the way it appears in diagnostics, with each element quoted.
func (c *Command) String() string {
	quoted := make([]string, 0, len(c.Args)+1)
	for _, arg := range append([]string{c.Path}, c.Args...) {
		quoted = append(quoted, strconv.Quote(arg))
	}

	return strings.Join(quoted, " ")
}

// Run executes the command, blocking until the child has exited, and returns the captured outcome.
//
// The returned error is non-nil only when the process couldn't be launched at all; a process which ran and failed is
// reported through the outcomes 'Status'. The attached stdin buffer is served from memory and the output streams are
// pumped concurrently by the os/exec machinery, so a large stdin combined with large output can't deadlock on full
// pipe buffers.
func (c *Command) Run(ctx context.Context) (*Output, error) {
	if c.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)

		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir

	if c.Env != nil {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	if c.hasStdin {
		cmd.Stdin = bytes.NewReader(c.stdin)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("(Proc) Running command | command=%s", c)

	err := cmd.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, err
	}

	state := cmd.ProcessState

	output := &Output{
		Status: Status{Code: state.ExitCode(), Exited: state.Exited(), Signal: signalName(state)},
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	return output, nil
}

// Ok runs the command and classifies the outcome, returning the output only when the process ran and exited with a
// success status. Failures are annotated with the rendered command line, and the stdin buffer where one was attached.
func (c *Command) Ok(ctx context.Context) (*Output, error) {
	output, err := c.Run(ctx)
	if err != nil {
		return nil, c.annotate(NewLaunchError(err))
	}

	if output.Status.Success() {
		return output, nil
	}

	return nil, c.annotate(NewOutputError(output))
}

// MustRun runs the command, panicking with a fully rendered diagnostic unless it completes successfully.
func (c *Command) MustRun(ctx context.Context) *Output {
	output, err := c.Ok(ctx)
	if err != nil {
		panic(err.Error())
	}

	return output
}

// MustFail runs the command, panicking with a fully rendered diagnostic unless it fails, and returns the resulting
// error for further inspection.
func (c *Command) MustFail(ctx context.Context) *OutputError {
	output, err := c.Ok(ctx)
	if err == nil {
		var (
			builder strings.Builder
			current = palette.Current()
		)

		builder.WriteString("Command completed successfully\n")
		builder.WriteString(current.Pair("command", c.String()) + "\n")

		if stdin, ok := c.Stdin(); ok {
			builder.WriteString(current.Pair("stdin", dump.Bytes(stdin)) + "\n")
		}

		builder.WriteString(current.Pair("stdout", dump.Bytes(output.Stdout)) + "\n")

		panic(builder.String())
	}

	var outputErr *OutputError
	errors.As(err, &outputErr)

	return outputErr
}

// annotate attaches the rendered command line, and the stdin buffer where one was attached, to the given error.
func (c *Command) annotate(err *OutputError) *OutputError {
	err.SetCmd(c.String())

	if stdin, ok := c.Stdin(); ok {
		err.SetStdin(stdin)
	}

	return err
}
