package debugger

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/wmverify/internal/watermark"
)

// Options configures a Driver.
type Options struct {
	DebuggerPath string        // debugger binary
	Executable   string        // program under test
	Dialect      Dialect       // defaults to LLDB
	TempFolder   string        // where session scripts are written, defaults to os.TempDir()
	Timeout      time.Duration // per-session limit, zero means none
	Runner       Runner        // defaults to an ExecRunner
}

// Session is one completed debugger run.
type Session struct {
	ID       string
	Script   Script
	Result   Result
	Duration time.Duration
}

// Driver runs one debugger session per descriptor.
type Driver struct {
	debuggerPath string
	executable   string
	dialect      Dialect
	tempFolder   string
	timeout      time.Duration
	runner       Runner
	logger       hclog.Logger
}

// NewDriver creates a Driver with the provided options.
func NewDriver(opts Options, logger hclog.Logger) (*Driver, error) {
	if opts.DebuggerPath == "" {
		return nil, fmt.Errorf("debugger path must be specified")
	}
	if opts.Executable == "" {
		return nil, fmt.Errorf("executable path must be specified")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	d := &Driver{
		debuggerPath: opts.DebuggerPath,
		executable:   opts.Executable,
		dialect:      opts.Dialect,
		tempFolder:   opts.TempFolder,
		timeout:      opts.Timeout,
		runner:       opts.Runner,
		logger:       logger,
	}
	if d.dialect == nil {
		d.dialect = LLDB{}
	}
	if d.runner == nil {
		d.runner = NewExecRunner(logger)
	}
	return d, nil
}

// Dialect returns the dialect the driver speaks.
func (d *Driver) Dialect() Dialect {
	return d.dialect
}

// Inspect runs a fresh debugger session that stops at the descriptor's location
// and prints its variable. The session script lives in a temporary file that is
// removed before Inspect returns.
func (d *Driver) Inspect(ctx context.Context, desc watermark.Descriptor) (Session, error) {
	session := Session{
		ID:     uuid.NewString(),
		Script: BuildScript(d.dialect, desc),
	}
	logger := d.logger.With("session", session.ID, "location", desc.Location(), "hits", desc.HitCount, "variable", desc.Variable)

	scriptPath, cleanup, err := d.writeScript(session)
	if err != nil {
		return session, &LaunchError{SessionID: session.ID, Stage: "write script", Err: err}
	}
	defer cleanup()
	logger.Debug("session script written", "path", scriptPath, "commands", len(session.Script))

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := d.runner.Run(ctx, d.debuggerPath, d.dialect.BatchArgs(scriptPath, d.executable))
	session.Duration = time.Since(start)
	session.Result = result
	if err != nil {
		logger.Error("debugger session failed", "error", err, "duration", session.Duration)
		return session, &LaunchError{SessionID: session.ID, Stage: "run debugger", Err: err}
	}

	if result.ExitCode != 0 {
		logger.Warn("debugger exited with non-zero code", "code", result.ExitCode, "stderr", result.Stderr)
	}
	logger.Debug("debugger session finished", "duration", session.Duration)
	return session, nil
}

// Extract recovers the variable value from a finished session.
func (d *Driver) Extract(session Session, variable string) Extraction {
	return d.dialect.Extract(session.Result.Stdout, variable)
}

// writeScript persists the session script. The returned cleanup removes it.
func (d *Driver) writeScript(session Session) (string, func(), error) {
	f, err := os.CreateTemp(d.tempFolder, "wmverify-"+session.ID+"-*.script")
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to create script file: %w", err)
	}
	path := f.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			d.logger.Warn("failed to remove session script", "path", path, "error", err)
		}
	}

	if _, err := f.WriteString(session.Script.String()); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("failed to write script file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("failed to close script file %q: %w", path, err)
	}
	return path, cleanup, nil
}
