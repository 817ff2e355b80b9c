package locate

import (
	"context"

	"github.com/clitools/test-common/proc"
)

//go:generate mockgen -source tool.go -destination mock_tool_test.go -package locate

// GoTool abstracts the invocation of the go tool, allowing tests to substitute canned output for discovery/builds.
type GoTool interface {
	// Run invokes the go tool with the given arguments in the provided directory, returning its standard output. An
	// error is returned when the tool couldn't be run, or ran and reported failure.
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// execGoTool invokes the real go tool found on the current PATH.
type execGoTool struct{}

func (e execGoTool) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := proc.New("go", args...)
	cmd.Dir = dir

	output, err := cmd.Ok(ctx)
	if err != nil {
		return nil, err
	}

	return output.Stdout, nil
}
