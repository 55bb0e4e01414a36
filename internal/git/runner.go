package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
)

type CommandRunner interface {
	RunCommandImmediate(args []string) ([]byte, error)
	RunCommandContext(ctx context.Context, args []string) ([]byte, error)
}

// MainCommandRunner runs git in a fixed working directory. Commands are
// serialized; git itself takes repository locks and overlapping invocations
// from one editing session are never useful.
type MainCommandRunner struct {
	Location string
	lock     sync.Mutex
}

func (a *MainCommandRunner) RunCommandImmediate(args []string) ([]byte, error) {
	return a.RunCommandContext(context.Background(), args)
}

func (a *MainCommandRunner) RunCommandContext(ctx context.Context, args []string) ([]byte, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = a.Location
	if output, err := c.Output(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return nil, errors.New(string(exitError.Stderr))
		}
		return nil, err
	} else {
		return bytes.Trim(output, "\n"), nil
	}
}
