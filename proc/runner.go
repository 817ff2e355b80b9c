package proc

import "context"

// Runner abstracts the launching of a process, allowing callers/tests to substitute the operating system launcher.
type Runner interface {
	// Run executes the given command, blocking until completion, returning an error only when the process couldn't be
	// launched at all.
	Run(ctx context.Context, cmd *Command) (*Output, error)
}

// ExecRunner is the default 'Runner' which launches real child processes via the os/exec package.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func (e ExecRunner) Run(ctx context.Context, cmd *Command) (*Output, error) {
	return cmd.Run(ctx)
}
