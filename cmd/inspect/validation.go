package inspect

import (
	"fmt"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/files"
	"github.com/scan-io-git/wmverify/internal/watermark"

	cmdutil "github.com/scan-io-git/wmverify/internal/cmd"
)

// Target is the resolved debugger and executable of an inspect session.
type Target struct {
	Debugger   string
	Executable string
}

// validateInspectArgs validates the arguments provided to the inspect command.
func validateInspectArgs(options *RunOptionsInspect, args []string, cfg *config.Config) (Target, watermark.Descriptor, error) {
	if len(args) < 1 || len(args) > 2 {
		return Target{}, watermark.Descriptor{}, fmt.Errorf("expected [DEBUGGER_PATH] EXECUTABLE_PATH, got %d argument(s)", len(args))
	}
	if err := config.ValidateDialect(options.Dialect); err != nil {
		return Target{}, watermark.Descriptor{}, err
	}
	if options.Timeout < 0 {
		return Target{}, watermark.Descriptor{}, fmt.Errorf("the 'timeout' flag cannot be negative")
	}

	desc, err := options.Descriptor()
	if err != nil {
		return Target{}, watermark.Descriptor{}, err
	}

	var target Target
	if cmdutil.DetermineMode(args, 2) == cmdutil.ModeExplicitDebugger {
		target = Target{Debugger: args[0], Executable: args[1]}
	} else {
		if cfg != nil {
			target.Debugger = cfg.Debugger.Path
		}
		target.Executable = args[0]
	}

	if target.Executable, err = files.ExpandPath(target.Executable); err != nil {
		return Target{}, watermark.Descriptor{}, err
	}
	if target.Debugger, err = files.ExpandPath(target.Debugger); err != nil {
		return Target{}, watermark.Descriptor{}, err
	}
	if target.Debugger, err = cmdutil.ResolveDebugger(target.Debugger); err != nil {
		return Target{}, watermark.Descriptor{}, err
	}
	if err := files.ValidateExecutable(target.Executable); err != nil {
		return Target{}, watermark.Descriptor{}, fmt.Errorf("invalid executable: %w", err)
	}
	return target, desc, nil
}
