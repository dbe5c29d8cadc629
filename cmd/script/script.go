package script

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/debugger"

	cmdutil "github.com/scan-io-git/wmverify/internal/cmd"
)

// RunOptionsScript holds the arguments for the script command.
type RunOptionsScript struct {
	cmdutil.DescriptorFlags
	Dialect string
	Args    bool
}

var (
	AppConfig     *config.Config
	scriptOptions RunOptionsScript
)

// ScriptCmd prints the session script of a descriptor.
var ScriptCmd = &cobra.Command{
	Use:                   "script [flags]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               "  verify-watermarks script -d gdb -l 10 -n 3 -v wm",
	Short:                 "Prints the debugger script generated for a descriptor",
	Args:                  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, &scriptOptions)
	},
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func run(cmd *cobra.Command, options *RunOptionsScript) error {
	if !cmdutil.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}
	if AppConfig != nil && !cmd.Flags().Changed("dialect") {
		options.Dialect = AppConfig.Debugger.Dialect
	}

	desc, err := options.Descriptor()
	if err != nil {
		return err
	}
	dialect, err := debugger.Lookup(options.Dialect)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, debugger.BuildScript(dialect, desc).String())
	if options.Args {
		fmt.Fprintf(out, "# args: %s\n", strings.Join(dialect.BatchArgs("<script>", "<executable>"), " "))
	}
	return nil
}

func addFlags(fs *pflag.FlagSet, options *RunOptionsScript) {
	cmdutil.AddDescriptorFlags(fs, &options.DescriptorFlags)
	fs.StringVarP(&options.Dialect, "dialect", "d", "lldb", fmt.Sprintf("Debugger dialect (%s).", strings.Join(debugger.Names(), ", ")))
	fs.BoolVar(&options.Args, "args", false, "Also print the debugger arguments used to run the script.")
}

func init() {
	addFlags(ScriptCmd.Flags(), &scriptOptions)
	ScriptCmd.Flags().BoolP("help", "h", false, "Show help for the script command.")
}
