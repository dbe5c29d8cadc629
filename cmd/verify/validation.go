package verify

import (
	"fmt"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/files"

	cmdutil "github.com/scan-io-git/wmverify/internal/cmd"
)

// validateVerifyArgs validates the arguments provided to the verify command and
// resolves the debugger, executable and descriptor paths.
func validateVerifyArgs(options *RunOptionsVerify, args []string, cfg *config.Config) (Targets, error) {
	if len(args) < 2 || len(args) > 3 {
		return Targets{}, fmt.Errorf("expected [DEBUGGER_PATH] EXECUTABLE_PATH DESCRIPTOR_FILE, got %d argument(s)", len(args))
	}

	if err := config.ValidateDialect(options.Dialect); err != nil {
		return Targets{}, err
	}
	if err := config.ValidateTotalPolicy(options.TotalPolicy); err != nil {
		return Targets{}, err
	}
	if err := config.ValidateFormat(options.Format); err != nil {
		return Targets{}, err
	}
	if options.MaxHitCount < 0 {
		return Targets{}, fmt.Errorf("the 'max-hit-count' flag cannot be negative")
	}
	if options.Timeout < 0 {
		return Targets{}, fmt.Errorf("the 'timeout' flag cannot be negative")
	}

	targets, err := determineTargets(args, cfg)
	if err != nil {
		return Targets{}, err
	}

	if targets.Debugger, err = cmdutil.ResolveDebugger(targets.Debugger); err != nil {
		return Targets{}, err
	}
	if err := files.ValidateExecutable(targets.Executable); err != nil {
		return Targets{}, fmt.Errorf("invalid executable: %w", err)
	}
	if err := files.ValidatePath(targets.Descriptors); err != nil {
		return Targets{}, fmt.Errorf("invalid descriptor file: %w", err)
	}
	return targets, nil
}
