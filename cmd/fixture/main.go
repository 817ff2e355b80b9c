// Command fixture is a small environment-driven program used to exercise the assertion helpers in this module's own
// tests, and as a worked example of a program under test.
//
// Recognized variables: 'stdout'/'stderr' write the given value plus a newline to the matching stream, 'echo=1'
// copies standard input to standard output, 'sleep' pauses for the given duration and 'exit' sets the exit code.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/clitools/test-common/envvar"
)

func main() {
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

	if code, ok := envvar.GetInt("exit"); ok {
		os.Exit(code)
	}
}
