package scan

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/cmd/version"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/config"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/git"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/logger"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/report"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/scanner"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared/errors"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared/files"
)

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	JSON       bool
	Format     string
	OutputPath string
	NoGit      bool
}

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	ExampleScanUsage = `  # Scanning a plugin checkout and printing a text verdict
  wowrevenue-authz-guard scan wp-content/plugins/revenue

  # Printing the verdict as JSON
  wowrevenue-authz-guard scan --json wp-content/plugins/revenue

  # Writing a SARIF report for code scanning dashboards
  wowrevenue-authz-guard scan --format sarif --output reports/ wp-content/plugins/revenue

  # Skipping repository metadata collection
  wowrevenue-authz-guard scan --no-git --format sarif /tmp/revenue`
)

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewScanCmd creates the scan command with its own set of options.
func NewScanCmd() *cobra.Command {
	opts := &RunOptionsScan{}
	cmd := &cobra.Command{
		Use:                   "scan [--json] [--format/-f FORMAT] [--output/-o PATH] [--no-git] PLUGIN_DIR",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Example:               ExampleScanUsage,
		Short:                 "Scan a WordPress plugin directory for WowRevenue <= 2.1.3 authz risk patterns",
		Long: `Scan a WordPress plugin directory for WowRevenue <= 2.1.3 authz risk patterns.

The verdict is HIGH RISK only when the declared plugin version is at most 2.1.3, an AJAX handler
shares a file with plugin install/activation calls, and that file has no strong capability check.
Exit codes: 0 lower risk, 2 high risk, 1 failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, opts, args)
		},
	}
	BindFlags(cmd.Flags(), opts)
	return cmd
}

// BindFlags registers the scan flags on a flag set.
func BindFlags(flags *pflag.FlagSet, opts *RunOptionsScan) {
	flags.BoolVar(&opts.JSON, "json", false, "Output results as JSON. Shorthand for --format json.")
	flags.StringVarP(&opts.Format, "format", "f", "", "Report format: text, json or sarif. Defaults to the configured output format.")
	flags.StringVarP(&opts.OutputPath, "output", "o", "", "Path to the output file or directory for the report. Defaults to stdout.")
	flags.BoolVar(&opts.NoGit, "no-git", false, "Do not collect git repository metadata for the report.")
}

// Run executes a scan of the plugin directory given in args and writes the report.
// A high risk verdict is returned as an error carrying exit code 2.
func Run(cmd *cobra.Command, opts *RunOptionsScan, args []string) error {
	lg := logger.NewLogger(AppConfig, "core-scan")

	if err := validateScanArgs(opts, args); err != nil {
		lg.Error("invalid scan arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid scan arguments: %w", err), shared.ExitFailure)
	}

	format, err := report.ParseFormat(opts.JSON, resolveFormat(opts))
	if err != nil {
		lg.Error("invalid report format", "error", err)
		return errors.NewCommandError(err, shared.ExitFailure)
	}

	target, err := files.ExpandPath(args[0])
	if err != nil {
		return errors.NewCommandError(fmt.Errorf("failed to expand target path: %w", err), shared.ExitFailure)
	}

	scanID := uuid.New().String()
	lg = lg.With("scan_id", scanID)
	lg.Info("starting scan", "target", target, "format", format)

	result, err := scanner.New(lg.Named("scanner")).Scan(target)
	if err != nil {
		lg.Error("scan failed", "error", err)
		return errors.NewCommandError(fmt.Errorf("scan failed: %w", err), shared.ExitFailure)
	}

	in := report.Input{
		Result:      result,
		ScanID:      scanID,
		Metadata:    collectMetadata(lg, target, opts),
		ToolVersion: version.CoreVersion,
	}
	if err := writeReport(lg, cmd.OutOrStdout(), format, resolveOutputPath(opts), in); err != nil {
		lg.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, shared.ExitFailure)
	}

	verdict := shared.Verdict(result.IsHighRisk())
	if result.IsHighRisk() {
		lg.Warn("scan completed", "verdict", verdict, "reasons", len(result.Reasons))
		return errors.NewHighRiskVerdict()
	}
	lg.Info("scan completed", "verdict", verdict, "reasons", len(result.Reasons))
	return nil
}

// resolveFormat prefers the flag, then the configured output format.
func resolveFormat(opts *RunOptionsScan) string {
	if opts.Format != "" {
		return opts.Format
	}
	if AppConfig != nil {
		return AppConfig.Output.Format
	}
	return ""
}

func resolveOutputPath(opts *RunOptionsScan) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	if AppConfig != nil {
		return AppConfig.Output.Path
	}
	return ""
}

// collectMetadata returns repository metadata for the target, or nil when it is disabled or unavailable.
func collectMetadata(lg hclog.Logger, target string, opts *RunOptionsScan) *git.RepositoryMetadata {
	if opts.NoGit || !config.IsGitEnabled(AppConfig) {
		return nil
	}
	md, err := git.CollectRepositoryMetadata(lg.Named("git"), target)
	if err != nil {
		lg.Debug("repository metadata unavailable", "target", target, "error", err)
		return nil
	}
	lg.Debug("repository metadata collected", "repo_root", md.RepoRootFolder, "subfolder", md.Subfolder)
	return md
}

// writeReport renders the report to stdout, or to a file when an output path is set.
func writeReport(lg hclog.Logger, stdout io.Writer, format, outputPath string, in report.Input) error {
	if outputPath == "" {
		return report.Write(stdout, format, in)
	}

	fullPath, _, err := files.DetermineFileFullPath(outputPath, report.DefaultFileName(format))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, in); err != nil {
		return err
	}
	if err := files.WriteFile(fullPath, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report to %q: %w", fullPath, err)
	}
	lg.Info("report written", "path", filepath.Clean(fullPath))
	return nil
}
