package scan

import (
	"fmt"
	"strings"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared/files"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(opts *RunOptionsScan, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a plugin directory must be specified")
	}
	if len(args) > 1 {
		return fmt.Errorf("only one plugin directory can be scanned at a time, got %d", len(args))
	}

	if opts.Format != "" {
		format := strings.ToLower(opts.Format)
		if !shared.IsValidFormat(format) {
			return fmt.Errorf("unsupported format %q, expected one of %s", opts.Format, strings.Join(shared.OutputFormats, ", "))
		}
		if opts.JSON && format != shared.FormatJSON {
			return fmt.Errorf("the 'json' flag cannot be combined with format %q", opts.Format)
		}
	}

	targetPath, err := files.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand target path %q: %w", args[0], err)
	}
	if err := files.ValidateDirPath(targetPath); err != nil {
		return fmt.Errorf("the target path is not a readable directory: %w", err)
	}
	return nil
}
