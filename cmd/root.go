package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/wmverify/cmd/inspect"
	"github.com/scan-io-git/wmverify/cmd/script"
	"github.com/scan-io-git/wmverify/cmd/verify"
	"github.com/scan-io-git/wmverify/cmd/version"
	"github.com/scan-io-git/wmverify/internal/config"
	errs "github.com/scan-io-git/wmverify/internal/errors"
)

var (
	cfgFile     string
	AppConfig   *config.Config
	rootOptions verify.RunOptionsVerify
	rootCmd     = &cobra.Command{
		Use:                   "verify-watermarks [flags] [DEBUGGER_PATH] EXECUTABLE_PATH DESCRIPTOR_FILE",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.RangeArgs(0, 3),
		Short:                 "verify-watermarks checks software watermarks with a debugger.",
		Long: `verify-watermarks checks that a watermarked executable still carries its watermarks.

For every descriptor of the key file it runs a debugger session that stops at the
given hit of a source location and reads a variable. The value is compared with
the expected watermark and a SUCCESS or FAILURE summary is printed at the end.

Called with positional arguments and no command it behaves like "verify".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return verify.Run(cmd, args, &rootOptions)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is %s in the working directory)", config.DefaultConfigFile))
	verify.AddFlags(rootCmd.Flags(), &rootOptions)

	rootCmd.AddCommand(verify.VerifyCmd)
	rootCmd.AddCommand(inspect.InspectCmd)
	rootCmd.AddCommand(script.ScriptCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errs.ExitCode(err)
	}
	return errs.ExitOK
}

func initConfig(cmd *cobra.Command) error {
	explicit := cfgFile != ""
	path := cfgFile
	if !explicit {
		path = config.DefaultConfigFile
	}

	cfg, err := config.LoadConfig(path, explicit)
	if err != nil {
		return errs.NewCommandError(fmt.Errorf("initializing config failed: %w", err), errs.ExitError)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return errs.NewCommandError(err, errs.ExitError)
	}
	AppConfig = cfg

	verify.Init(AppConfig)
	inspect.Init(AppConfig)
	script.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
