package inspect

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/debugger"
	"github.com/scan-io-git/wmverify/internal/logger"
	"github.com/scan-io-git/wmverify/internal/printer"
	"github.com/scan-io-git/wmverify/internal/verifier"
	"github.com/scan-io-git/wmverify/internal/watermark"

	cmdutil "github.com/scan-io-git/wmverify/internal/cmd"
)

// RunOptionsInspect holds the arguments for the inspect command.
type RunOptionsInspect struct {
	cmdutil.DescriptorFlags
	Dialect    string
	Timeout    time.Duration
	TempFolder string
	ShowOutput bool
	NoColor    bool
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	inspectOptions      RunOptionsInspect
	exampleInspectUsage = `  # Reading the variable "wm" at the third hit of line 10, column 4
  verify-watermarks inspect /usr/bin/lldb ./watermarked -l 10 -c 4 -n 3 -v wm

  # Checking the value against an expected watermark and showing the debugger output
  verify-watermarks inspect --show-output -d gdb gdb ./watermarked -l 10 -n 3 -v wm -e 42`
)

// InspectCmd represents the inspect command.
var InspectCmd = &cobra.Command{
	Use:                   "inspect [flags] [DEBUGGER_PATH] EXECUTABLE_PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleInspectUsage,
	Short:                 "Runs a single debugger session and prints what it extracted",
	Long: `Runs one debugger session for a descriptor given through flags and prints the
extracted value. When --expected is set the value is also checked like a watermark.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args, &inspectOptions)
	},
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func run(cmd *cobra.Command, args []string, options *RunOptionsInspect) error {
	if len(args) == 0 && !cmdutil.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-inspect")

	if AppConfig != nil {
		if !cmd.Flags().Changed("dialect") {
			options.Dialect = AppConfig.Debugger.Dialect
		}
		if !cmd.Flags().Changed("timeout") {
			options.Timeout = AppConfig.Debugger.Timeout
		}
		if !cmd.Flags().Changed("temp-folder") {
			options.TempFolder = AppConfig.Debugger.TempFolder
		}
	}

	target, desc, err := validateInspectArgs(options, args, AppConfig)
	if err != nil {
		logger.Error("invalid inspect arguments", "error", err)
		return err
	}

	dialect, err := debugger.Lookup(options.Dialect)
	if err != nil {
		return err
	}
	driver, err := debugger.NewDriver(debugger.Options{
		DebuggerPath: target.Debugger,
		Executable:   target.Executable,
		Dialect:      dialect,
		TempFolder:   options.TempFolder,
		Timeout:      options.Timeout,
	}, logger.Named("driver"))
	if err != nil {
		return err
	}

	session, err := driver.Inspect(cmd.Context(), desc)
	if err != nil {
		return err
	}
	ext := driver.Extract(session, desc.Variable)

	out := cmd.OutOrStdout()
	if options.ShowOutput {
		printSession(out, session)
	}
	printExtraction(out, desc, session, ext)

	if cmd.Flags().Changed("expected") {
		rec := verifier.Score(verifier.NewReport(1, config.TotalPolicyProcessed), desc, ext, nil)
		f := printer.Formatter{Color: config.ColorEnabled(AppConfig) && !options.NoColor && !color.NoColor}
		fmt.Fprintln(out, f.Outcome(rec.Outcome))
	}

	if ext.Kind == debugger.KindParseError {
		return fmt.Errorf("no value for %q in the debugger output: %w", desc.Variable, ext.Err)
	}
	return nil
}

func printSession(out io.Writer, session debugger.Session) {
	fmt.Fprintln(out, "--- script")
	fmt.Fprint(out, session.Script.String())
	fmt.Fprintln(out, "--- stdout")
	fmt.Fprint(out, ensureNewline(session.Result.Stdout))
	if session.Result.Stderr != "" {
		fmt.Fprintln(out, "--- stderr")
		fmt.Fprint(out, ensureNewline(session.Result.Stderr))
	}
	fmt.Fprintln(out, "---")
}

func printExtraction(out io.Writer, desc watermark.Descriptor, session debugger.Session, ext debugger.Extraction) {
	fmt.Fprintf(out, "Descriptor: ")
	_ = watermark.Write(out, []watermark.Descriptor{desc})
	fmt.Fprintf(out, "Session:    %s (%s)\n", session.ID, session.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "Kind:       %s\n", ext.Kind)
	if ext.Raw != "" {
		fmt.Fprintf(out, "Raw:        %s\n", ext.Raw)
	}
	if ext.Kind == debugger.KindValue {
		fmt.Fprintf(out, "Value:      %d\n", ext.Value)
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func addFlags(fs *pflag.FlagSet, options *RunOptionsInspect) {
	cmdutil.AddDescriptorFlags(fs, &options.DescriptorFlags)
	fs.StringVarP(&options.Dialect, "dialect", "d", "lldb", fmt.Sprintf("Debugger dialect (%s).", strings.Join(debugger.Names(), ", ")))
	fs.DurationVarP(&options.Timeout, "timeout", "t", 0, "Time limit of the debugger session, e.g. 30s. 0 means no limit.")
	fs.StringVar(&options.TempFolder, "temp-folder", "", "Folder for the session script. Defaults to the system temp folder.")
	fs.BoolVar(&options.ShowOutput, "show-output", false, "Print the session script and the raw debugger output.")
	fs.BoolVar(&options.NoColor, "no-color", false, "Disable colored output.")
}

// Initialize flags for the inspect command.
func init() {
	addFlags(InspectCmd.Flags(), &inspectOptions)
	InspectCmd.Flags().BoolP("help", "h", false, "Show help for the inspect command.")
}
