package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/pflag"

	"github.com/scan-io-git/wmverify/internal/watermark"
)

// Mode constants
const (
	ModeExplicitDebugger   = "explicit-debugger"
	ModeConfiguredDebugger = "configured-debugger"
)

// DetermineMode determines whether the debugger is given on the command line or
// comes from the configuration, based on how many positional arguments the
// command expects in total.
func DetermineMode(args []string, full int) string {
	if len(args) >= full {
		return ModeExplicitDebugger
	}
	return ModeConfiguredDebugger
}

// HasFlags reports whether any flag was set on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	set := false
	flags.Visit(func(*pflag.Flag) { set = true })
	return set
}

// ResolveDebugger returns the absolute path of the debugger binary, searching PATH
// for bare names.
func ResolveDebugger(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("the debugger path must be specified as an argument or in the configuration")
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("the debugger %q cannot be found: %w", path, err)
	}
	return resolved, nil
}

// DescriptorFlags holds a single watermark descriptor given through flags.
type DescriptorFlags struct {
	Line     int
	Column   int
	HitCount int
	Variable string
	Expected int64
}

// AddDescriptorFlags registers the descriptor flags on fs.
func AddDescriptorFlags(fs *pflag.FlagSet, d *DescriptorFlags) {
	fs.IntVarP(&d.Line, "line", "l", 0, "Source line of the breakpoint.")
	fs.IntVarP(&d.Column, "column", "c", 1, "Source column of the breakpoint.")
	fs.IntVarP(&d.HitCount, "hit-count", "n", 1, "Which visit of the location to inspect (1 = first hit).")
	fs.StringVarP(&d.Variable, "variable", "v", "", "Name of the variable to read.")
	fs.Int64VarP(&d.Expected, "expected", "e", 0, "Expected watermark value.")
}

// Descriptor validates the flags and returns the descriptor they describe.
func (d *DescriptorFlags) Descriptor() (watermark.Descriptor, error) {
	desc := watermark.Descriptor{
		Index:    1,
		Line:     d.Line,
		Column:   d.Column,
		HitCount: d.HitCount,
		Variable: d.Variable,
		Expected: d.Expected,
	}
	if err := desc.Validate(); err != nil {
		return watermark.Descriptor{}, err
	}
	return desc, nil
}
