package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/debugger"
	errs "github.com/scan-io-git/wmverify/internal/errors"
	"github.com/scan-io-git/wmverify/internal/logger"
	"github.com/scan-io-git/wmverify/internal/printer"
	"github.com/scan-io-git/wmverify/internal/results"
	"github.com/scan-io-git/wmverify/internal/verifier"
	"github.com/scan-io-git/wmverify/internal/watermark"
)

// RunOptionsVerify holds the arguments for the verify command.
type RunOptionsVerify struct {
	Dialect      string
	MaxHitCount  int
	Timeout      time.Duration
	TotalPolicy  string
	TempFolder   string
	OutputPath   string
	Format       string
	SourceFile   string
	NoColor      bool
	Verbose      bool
	FailExitCode bool
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	verifyOptions      RunOptionsVerify
	exampleVerifyUsage = `  # Verifying all watermarks of a key file with lldb
  verify-watermarks verify /usr/bin/lldb ./watermarked ./key.txt

  # Using the debugger from the configuration or WMVERIFY_DEBUGGER
  verify-watermarks verify ./watermarked ./key.txt

  # Verifying with gdb, a per-session timeout and a SARIF report
  verify-watermarks verify --timeout 2m --format sarif -o results/ gdb ./watermarked ./key.txt

  # Failing the process when not every watermark is found
  verify-watermarks verify --fail-exit-code lldb ./watermarked ./key.txt`
)

// VerifyCmd represents the verify command.
var VerifyCmd = &cobra.Command{
	Use:                   "verify [flags] [DEBUGGER_PATH] EXECUTABLE_PATH DESCRIPTOR_FILE",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleVerifyUsage,
	Short:                 "Verifies every watermark of a descriptor file against an executable",
	Long: `Verifies watermarks by running a fresh debugger session per descriptor.

Each session stops at the requested hit of the descriptor's source location, reads
the named variable and compares it with the expected value. Outcomes are printed
as they are known, followed by a SUCCESS or FAILURE summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd, args, &verifyOptions)
	},
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// Run executes the verification with the given options. It is shared with the
// root command, which accepts the same arguments.
func Run(cmd *cobra.Command, args []string, options *RunOptionsVerify) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-verify")

	mergeOptions(cmd.Flags(), AppConfig, options)
	targets, err := validateVerifyArgs(options, args, AppConfig)
	if err != nil {
		logger.Error("invalid verify arguments", "error", err)
		return err
	}
	options.Dialect = inferDialect(targets.Debugger, options.Dialect, cmd.Flags().Changed("dialect"))

	descriptors, err := watermark.Load(targets.Descriptors)
	if err != nil {
		logger.Error("failed to load descriptors", "error", err)
		return errs.NewCommandError(err, errs.ExitError)
	}
	logger.Debug("descriptors loaded", "count", len(descriptors), "path", targets.Descriptors)

	dialect, err := debugger.Lookup(options.Dialect)
	if err != nil {
		return err
	}
	driver, err := debugger.NewDriver(debugger.Options{
		DebuggerPath: targets.Debugger,
		Executable:   targets.Executable,
		Dialect:      dialect,
		TempFolder:   options.TempFolder,
		Timeout:      options.Timeout,
	}, logger.Named("driver"))
	if err != nil {
		return err
	}

	colored := config.ColorEnabled(AppConfig) && !options.NoColor && !color.NoColor
	out := printer.New(cmd.OutOrStdout(), colored, options.Verbose)
	v := verifier.New(driver, out, options.MaxHitCount, options.TotalPolicy, logger)

	startedAt := time.Now()
	report, runErr := v.Run(cmd.Context(), descriptors)

	if options.OutputPath != "" {
		run := results.Run{
			Debugger:    targets.Debugger,
			Dialect:     dialect.Name(),
			Executable:  targets.Executable,
			Descriptors: targets.Descriptors,
			Source:      options.SourceFile,
			StartedAt:   startedAt,
		}
		path, err := results.Write(options.OutputPath, options.Format, run, report)
		if err != nil {
			logger.Error("failed to write result", "error", err)
			return err
		}
		logger.Info("result saved", "path", path, "format", options.Format)
	}

	if runErr != nil {
		return fmt.Errorf("verification interrupted: %w", runErr)
	}
	if options.FailExitCode && !report.Succeeded() {
		return errs.NewVerificationFailure(report.Ratio())
	}
	return nil
}

// AddFlags registers the verify flags on fs.
func AddFlags(fs *pflag.FlagSet, options *RunOptionsVerify) {
	fs.StringVarP(&options.Dialect, "dialect", "d", "lldb", fmt.Sprintf("Debugger dialect (%s). Inferred from the debugger name when omitted.", strings.Join(debugger.Names(), ", ")))
	fs.IntVar(&options.MaxHitCount, "max-hit-count", config.DefaultMaxHitCount, "Stop the run at the first descriptor with a larger hit count. 0 disables the limit.")
	fs.DurationVarP(&options.Timeout, "timeout", "t", 0, "Time limit of a single debugger session, e.g. 30s. 0 means no limit.")
	fs.StringVar(&options.TotalPolicy, "total-policy", config.TotalPolicyProcessed, "Descriptors counted in the total after a skip: 'processed' or 'loaded'.")
	fs.StringVar(&options.TempFolder, "temp-folder", "", "Folder for session scripts. Defaults to the system temp folder.")
	fs.StringVarP(&options.OutputPath, "output", "o", "", "Path to the output file or directory for the result report.")
	fs.StringVarP(&options.Format, "format", "f", config.FormatJSON, "Format of the result report: 'json', 'sarif' or 'html'.")
	fs.StringVar(&options.SourceFile, "source-file", "", "Source file the descriptor lines refer to, used as the SARIF artifact.")
	fs.BoolVar(&options.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&options.Verbose, "verbose", false, "Print descriptor details with every outcome.")
	fs.BoolVar(&options.FailExitCode, "fail-exit-code", false, "Exit with code 2 when the verdict is FAILURE.")
}

// Initialize flags for the verify command.
func init() {
	AddFlags(VerifyCmd.Flags(), &verifyOptions)
	VerifyCmd.Flags().BoolP("help", "h", false, "Show help for the verify command.")
}
