package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/config"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/scanner"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
)

// Build information, overridden with -ldflags at release time.
var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// CoreVersions holds version information for the binary and the rule set it enforces.
type CoreVersions struct {
	Versions          shared.Versions `json:"versions"`
	VulnerableCeiling string          `json:"vulnerable_ceiling"`
}

var versionOutputJSON bool

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// Current returns the build information of the running binary.
func Current() CoreVersions {
	return CoreVersions{
		Versions: shared.Versions{
			Version:       CoreVersion,
			GolangVersion: GolangVersion,
			BuildTime:     BuildTime,
		},
		VulnerableCeiling: scanner.VulnerableCeiling.String(),
	}
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "version [--json]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		Short:                 "Print the version number of the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersionInfo(cmd.OutOrStdout(), Current(), versionOutputJSON)
		},
	}
	cmd.Flags().BoolVar(&versionOutputJSON, "json", false, "Print version information as JSON.")
	return cmd
}

// printVersionInfo prints the version information for the application.
func printVersionInfo(w io.Writer, versions CoreVersions, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	}
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Versions.Version)
	fmt.Fprintf(w, "Go Version: %s\n", versions.Versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.Versions.BuildTime)
	fmt.Fprintf(w, "Vulnerable Ceiling: <= %s\n", versions.VulnerableCeiling)
	return nil
}
