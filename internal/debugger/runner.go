package debugger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// Result is the captured outcome of one debugger process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner starts a process and waits for it.
// An error means the process could not be started or did not finish; a non-zero
// exit code alone is reported through Result.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (Result, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	logger hclog.Logger
}

// NewExecRunner creates an ExecRunner. Process output is mirrored to logger at trace level.
func NewExecRunner(logger hclog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

// Run executes name with args and captures stdout and stderr separately. The
// debugger runs in its own process group; when ctx is done the whole group is
// killed, so children holding the output pipes cannot outlive the session.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cmd := exec.Command(name, args...)
	setProcessGroup(cmd)
	r.logger.Debug("starting debugger", "cmd", cmd.Args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.logger.IsTrace() {
		trace := r.logger.StandardWriter(&hclog.StandardLoggerOptions{ForceLevel: hclog.Trace})
		cmd.Stdout = io.MultiWriter(&stdout, trace)
		cmd.Stderr = io.MultiWriter(&stderr, trace)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		if kerr := killProcessGroup(cmd); kerr != nil {
			r.logger.Warn("failed to kill debugger process group", "pid", cmd.Process.Pid, "error", kerr)
		}
		err = <-done
	}

	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}
