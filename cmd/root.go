package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/cmd/scan"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/cmd/version"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/config"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared/errors"
)

var AppConfig *config.Config

// NewRootCmd builds the command tree. Invoked with a plugin directory and no subcommand,
// the root command runs a scan.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	opts := &scan.RunOptionsScan{}

	rootCmd := &cobra.Command{
		Use:                   shared.AppName + " [command] | PLUGIN_DIR [--json] [--format/-f FORMAT] [--output/-o PATH] [--no-git]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		Example:               scan.ExampleScanUsage,
		Short:                 "Scan a WordPress plugin directory for WowRevenue <= 2.1.3 authz risk patterns.",
		Long: `wowrevenue-authz-guard is a best-effort lexical scanner for the WowRevenue <= 2.1.3
authorization flaw: plugin install/activation reachable from an AJAX handler without a
capability check. Exit codes: 0 lower risk, 2 high risk, 1 failure.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
				_ = cmd.Help()
				return errors.NewCommandError(fmt.Errorf("a plugin directory must be specified"), shared.ExitFailure)
			}
			return scan.Run(cmd, opts, args)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the YAML configuration file (env "+config.EnvConfigPath+").")
	scan.BindFlags(rootCmd.Flags(), opts)

	rootCmd.AddCommand(scan.NewScanCmd())
	rootCmd.AddCommand(version.NewVersionCmd())
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(NewRootCmd(), os.Args[1:])
}

func execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil && !errors.IsVerdict(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error executing command: %v\n", err)
	}
	return errors.ExitCode(err)
}

func initConfig(cfgFile string) error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return errors.NewCommandError(fmt.Errorf("failed to initialize configuration: %w", err), shared.ExitFailure)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return errors.NewCommandError(err, shared.ExitFailure)
	}

	scan.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
