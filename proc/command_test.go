package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clitools/test-common/envvar"
)

func init() {
	// Keep rendered diagnostics stable regardless of the environment running the tests
	color.NoColor = true
}

// helperCommand returns a command which re-runs the test binary as a fixture program driven by the given environment
// variables; see 'TestHelperProcess' for the recognized variables.
func helperCommand(t *testing.T, env ...string) *Command {
	t.Helper()

	cmd := New(os.Args[0], "-test.run=TestHelperProcess", "--")
	cmd.Env = append([]string{"GO_WANT_HELPER_PROCESS=1"}, env...)

	return cmd
}

// TestHelperProcess isn't a real test, it's the fixture program run by 'helperCommand'.
func TestHelperProcess(*testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if value, ok := os.LookupEnv("stdout"); ok {
		fmt.Println(value)
	}

	if value, ok := os.LookupEnv("stderr"); ok {
		fmt.Fprintln(os.Stderr, value)
	}

	if echo, ok := envvar.GetBool("echo"); ok && echo {
		_, _ = io.Copy(os.Stdout, os.Stdin)
	}

	if duration, ok := envvar.GetDuration("sleep"); ok {
		time.Sleep(duration)
	}

	code, _ := envvar.GetInt("exit")

	os.Exit(code)
}

func TestCommandRun(t *testing.T) {
	output, err := helperCommand(t, "stdout=hello", "stderr=world").Run(context.Background())
	require.NoError(t, err)

	require.True(t, output.Status.Success())
	require.Equal(t, []byte("hello\n"), output.Stdout)
	require.Equal(t, []byte("world\n"), output.Stderr)
}

func TestCommandRunExitCode(t *testing.T) {
	output, err := helperCommand(t, "exit=42").Run(context.Background())
	require.NoError(t, err)

	require.False(t, output.Status.Success())

	code, ok := output.Status.ExitCode()
	require.True(t, ok)
	require.Equal(t, 42, code)
}

func TestCommandRunStdin(t *testing.T) {
	output, err := helperCommand(t, "echo=1").WithStdin([]byte("42")).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, []byte("42"), output.Stdout)
}

func TestCommandRunLargeStdin(t *testing.T) {
	// Large enough to overflow an OS pipe buffer in both directions
	buffer := make([]byte, 1024*1024)
	for i := range buffer {
		buffer[i] = byte('a' + i%26)
	}

	output, err := helperCommand(t, "echo=1").WithStdin(buffer).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, buffer, output.Stdout)
}

func TestCommandRunLaunchFailure(t *testing.T) {
	output, err := New("/definitely/not/a/real/binary").Run(context.Background())
	require.Error(t, err)
	require.Nil(t, output)
}

func TestCommandRunTimeout(t *testing.T) {
	output, err := helperCommand(t, "sleep=1m").WithTimeout(100 * time.Millisecond).Run(context.Background())
	require.NoError(t, err)

	require.False(t, output.Status.Exited)

	_, ok := output.Status.ExitCode()
	require.False(t, ok)
}

func TestCommandOk(t *testing.T) {
	output, err := helperCommand(t, "stdout=hello").Ok(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte("hello\n"), output.Stdout)
}

func TestCommandOkRunFailure(t *testing.T) {
	_, err := helperCommand(t, "exit=1", "stderr=oops").WithStdin([]byte("42")).Ok(context.Background())
	require.Error(t, err)

	var outputErr *OutputError
	require.ErrorAs(t, err, &outputErr)

	output, ok := outputErr.AsOutput()
	require.True(t, ok)
	require.Equal(t, []byte("oops\n"), output.Stderr)

	rendered := err.Error()

	assert.Contains(t, rendered, "command=")
	assert.Contains(t, rendered, `stdin="42"`)
	assert.Contains(t, rendered, "code=1")
	assert.Contains(t, rendered, `stderr="oops`)
}

func TestCommandOkLaunchFailure(t *testing.T) {
	_, err := New("/definitely/not/a/real/binary").Ok(context.Background())
	require.Error(t, err)

	var outputErr *OutputError
	require.ErrorAs(t, err, &outputErr)

	_, ok := outputErr.AsOutput()
	require.False(t, ok)
	require.Error(t, outputErr.Unwrap())
}

func TestCommandMustRun(t *testing.T) {
	output := helperCommand(t, "stdout=hello").MustRun(context.Background())
	require.Equal(t, []byte("hello\n"), output.Stdout)

	require.Panics(t, func() { helperCommand(t, "exit=1").MustRun(context.Background()) })
}

func TestCommandMustFail(t *testing.T) {
	outputErr := helperCommand(t, "exit=42").MustFail(context.Background())

	output, ok := outputErr.AsOutput()
	require.True(t, ok)

	code, ok := output.Status.ExitCode()
	require.True(t, ok)
	require.Equal(t, 42, code)
}

func TestCommandMustFailOnSuccess(t *testing.T) {
	defer func() {
		message, ok := recover().(string)
		require.True(t, ok)

		assert.Contains(t, message, "Command completed successfully")
		assert.Contains(t, message, `stdin="42"`)
		assert.Contains(t, message, `stdout="42"`)
	}()

	helperCommand(t, "echo=1").WithStdin([]byte("42")).MustFail(context.Background())

	t.Fatal("expected 'MustFail' to panic")
}

func TestCommandWithStdinFile(t *testing.T) {
	path := t.TempDir() + string(os.PathSeparator) + "stdin.txt"
	require.NoError(t, os.WriteFile(path, []byte("42"), 0o644))

	cmd, err := helperCommand(t, "echo=1").WithStdinFile(path)
	require.NoError(t, err)

	stdin, ok := cmd.Stdin()
	require.True(t, ok)
	require.Equal(t, []byte("42"), stdin)

	_, err = New(os.Args[0]).WithStdinFile(path + ".missing")
	require.Error(t, err)
}

func TestCommandString(t *testing.T) {
	require.Equal(t, `"cat" "-et"`, New("cat", "-et").String())
}

func TestCommandStringQuotesArguments(t *testing.T) {
	require.Equal(t, `"echo" "hello world"`, New("echo", "hello world").String())
}

func TestCommandEnvOverrides(t *testing.T) {
	// Overrides are appended, so a later duplicate takes precedence
	output, err := helperCommand(t, "stdout=hello", "stdout=overridden").Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte("overridden\n"), output.Stdout)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "42", Status{Code: 42, Exited: true}.String())
	require.Equal(t, "<interrupted>", Status{}.String())
}

func TestOutputOk(t *testing.T) {
	output := &Output{Status: Status{Exited: true}}

	classified, err := output.Ok()
	require.NoError(t, err)
	require.Equal(t, output, classified)

	_, err = (&Output{Status: Status{Code: 1, Exited: true}}).Ok()
	require.Error(t, err)

	var outputErr *OutputError
	require.True(t, errors.As(err, &outputErr))
}
