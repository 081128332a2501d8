package runner

import (
	"context"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// CommandRunner abstracts subprocess invocation so the build orchestration
// can be tested without spawning real processes. Run blocks until the
// command exits and returns its combined stdout and stderr output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	log.Debugf("Running: %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), errors.Wrapf(err, "running `%s %s`", name, strings.Join(args, " "))
	}

	return string(output), nil
}
