package verify

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/files"

	cmdutil "github.com/scan-io-git/wmverify/internal/cmd"
)

// Targets are the resolved positional arguments of the verify command.
type Targets struct {
	Debugger    string
	Executable  string
	Descriptors string
}

// determineTargets maps the positional arguments. With two arguments the debugger
// comes from the configuration.
func determineTargets(args []string, cfg *config.Config) (Targets, error) {
	var t Targets
	switch cmdutil.DetermineMode(args, 3) {
	case cmdutil.ModeExplicitDebugger:
		t = Targets{Debugger: args[0], Executable: args[1], Descriptors: args[2]}
	default:
		if cfg != nil {
			t.Debugger = cfg.Debugger.Path
		}
		t.Executable, t.Descriptors = args[0], args[1]
	}

	var err error
	for _, p := range []*string{&t.Debugger, &t.Executable, &t.Descriptors} {
		if *p, err = files.ExpandPath(*p); err != nil {
			return Targets{}, err
		}
	}
	return t, nil
}

// mergeOptions fills options that were not set on the command line from the configuration.
func mergeOptions(flags *pflag.FlagSet, cfg *config.Config, options *RunOptionsVerify) {
	if cfg == nil {
		return
	}
	if !flags.Changed("dialect") {
		options.Dialect = cfg.Debugger.Dialect
	}
	if !flags.Changed("max-hit-count") {
		options.MaxHitCount = config.MaxHitCount(cfg)
	}
	if !flags.Changed("timeout") {
		options.Timeout = cfg.Debugger.Timeout
	}
	if !flags.Changed("total-policy") {
		options.TotalPolicy = cfg.Verifier.TotalPolicy
	}
	if !flags.Changed("temp-folder") {
		options.TempFolder = cfg.Debugger.TempFolder
	}
	if !flags.Changed("format") {
		options.Format = cfg.Output.Format
	}
}

// inferDialect picks gdb for gdb binaries unless a dialect was given explicitly.
func inferDialect(debuggerPath, dialect string, explicit bool) string {
	if explicit {
		return strings.ToLower(dialect)
	}
	base := strings.ToLower(filepath.Base(debuggerPath))
	switch {
	case strings.Contains(base, "lldb"):
		return "lldb"
	case strings.Contains(base, "gdb"):
		return "gdb"
	default:
		return strings.ToLower(dialect)
	}
}
