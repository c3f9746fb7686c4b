package scanner

import (
	"fmt"
	"path/filepath"
)

// Reason lines recorded in Result.Reasons.
const (
	ReasonNoFiles           = "No PHP files found."
	ReasonVulnerableVersion = "Detected plugin version <= 2.1.3."
	ReasonSafeVersion       = "Plugin version appears above 2.1.3 or unavailable."
	ReasonNoFlow            = "No install/activation flow tied to AJAX handlers detected."

	reasonFlowFormat       = "Potential install/activation flow reachable from AJAX handler in %s."
	reasonMissingCapFormat = "Missing strong capability checks in %s for install/activation path."
)

// Result is the verdict of one scan together with the reasons that produced it.
type Result struct {
	VulnerableVersion          bool
	FoundInstallActivationFlow bool
	MissingAdminCapability     bool
	Reasons                    []string

	// Root is the scanned directory.
	Root string
	// MainFile is the file carrying the plugin header, empty when none was found.
	MainFile string
	Version  Version
	Files    []string
	// Findings holds the files that tie an AJAX handler to an install/activation call.
	Findings []FlowFinding
}

// IsHighRisk is true only when all three risk signals hold.
func (r *Result) IsHighRisk() bool {
	return r.VulnerableVersion && r.FoundInstallActivationFlow && r.MissingAdminCapability
}

// emptyResult is the verdict for a directory without any PHP file.
func emptyResult(root string) *Result {
	return &Result{
		Root:    root,
		Reasons: []string{ReasonNoFiles},
	}
}

// accumulate folds one file's finding into the result. Flags only ever flip to true,
// and each counting file appends its own reasons.
func accumulate(result *Result, finding FlowFinding) {
	if !finding.Counts() {
		return
	}

	name := filepath.Base(finding.Path)
	result.FoundInstallActivationFlow = true
	result.Findings = append(result.Findings, finding)
	result.Reasons = append(result.Reasons, fmt.Sprintf(reasonFlowFormat, name))

	if !finding.HasCapabilityGuard {
		result.MissingAdminCapability = true
		result.Reasons = append(result.Reasons, fmt.Sprintf(reasonMissingCapFormat, name))
	}
}
