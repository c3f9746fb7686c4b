package report

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/git"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/scanner"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
)

// SARIF rule identifiers.
const (
	RuleVulnerableVersion = "WRAG001"
	RuleInstallFlow       = "WRAG002"
	RuleMissingCapability = "WRAG003"
)

const (
	toolInformationURI = "https://github.com/victorstack-ai/wp-wowrevenue-authz-guard"
	srcRootBaseID      = "%SRCROOT%"
	levelError         = "error"
	levelWarning       = "warning"
)

type ruleDefinition struct {
	id          string
	name        string
	description string
	help        string
	level       string
}

var rules = []ruleDefinition{
	{
		id:          RuleVulnerableVersion,
		name:        "VulnerablePluginVersion",
		description: "WowRevenue plugin version is within the affected range (<= 2.1.3).",
		help:        "Upgrade the WowRevenue plugin to a release newer than 2.1.3.",
		level:       levelWarning,
	},
	{
		id:          RuleInstallFlow,
		name:        "AjaxInstallActivationFlow",
		description: "An AJAX handler registered with wp_ajax_ shares a file with plugin install or activation calls.",
		help:        "Review the AJAX handler and make sure it cannot install or activate plugins on behalf of low-privileged users.",
		level:       levelWarning,
	},
	{
		id:          RuleMissingCapability,
		name:        "MissingAdminCapabilityCheck",
		description: "An install/activation path reachable from AJAX has no install_plugins, activate_plugins or manage_options capability check.",
		help:        "Guard the handler with current_user_can('install_plugins') or current_user_can('activate_plugins') and a nonce check.",
		level:       levelError,
	},
}

// BuildSARIF converts a scan into a SARIF 2.1.0 log with a single run.
func BuildSARIF(in Input) (*sarif.Report, error) {
	if in.Result == nil {
		return nil, fmt.Errorf("nothing to report: scan result is nil")
	}
	result := in.Result

	sarifReport, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(shared.AppName, toolInformationURI)
	if in.ToolVersion != "" {
		run.Tool.Driver.WithVersion(in.ToolVersion)
	}
	for _, def := range rules {
		run.AddRule(def.id).
			WithName(def.name).
			WithDescription(def.description).
			WithTextHelp(def.help).
			WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel(def.level))
	}

	if in.ScanID != "" {
		run.WithAutomationDetails(sarif.NewRunAutomationDetails().WithGUID(in.ScanID))
	}
	addVersionControlProvenance(run, in.Metadata)

	props := sarif.NewPropertyBag()
	props.AddBoolean("high_risk", result.IsHighRisk())
	props.AddBoolean("vulnerable_version", result.VulnerableVersion)
	props.AddBoolean("found_install_activation_flow", result.FoundInstallActivationFlow)
	props.AddBoolean("missing_admin_capability", result.MissingAdminCapability)
	props.AddString("verdict", shared.Verdict(result.IsHighRisk()))
	props.AddString("plugin_version", result.Version.String())
	props.Add("reasons", append([]string{}, result.Reasons...))
	run.AttachPropertyBag(props)

	prefix := subfolderPrefix(in.Metadata)
	for _, file := range result.Files {
		run.AddDistinctArtifact(artifactURI(result.Root, file, prefix))
	}

	escalate := result.IsHighRisk()
	if result.VulnerableVersion {
		msg := fmt.Sprintf("Plugin version %s is within the affected range (<= %s).", result.Version, scanner.VulnerableCeiling)
		res := newResult(RuleVulnerableVersion, levelWarning, escalate, msg)
		if result.MainFile != "" {
			res.AddLocation(newLocation(artifactURI(result.Root, result.MainFile, prefix), 0))
		}
		run.AddResult(res)
	}

	for _, finding := range result.Findings {
		uri := artifactURI(result.Root, finding.Path, prefix)

		msg := fmt.Sprintf("AJAX action %q is registered in a file that installs or activates plugins.", finding.Handler)
		res := newResult(RuleInstallFlow, levelWarning, escalate, msg)
		res.AddLocation(newLocation(uri, finding.RemoteEntryLine))
		res.AddRelatedLocation(newLocation(uri, finding.InstallCallLine))
		run.AddResult(res)

		if !finding.HasCapabilityGuard {
			msg := fmt.Sprintf("No strong capability check guards the install/activation call reachable from AJAX action %q.", finding.Handler)
			res := newResult(RuleMissingCapability, levelError, escalate, msg)
			res.AddLocation(newLocation(uri, finding.InstallCallLine))
			run.AddResult(res)
		}
	}

	run.AddInvocation(true).WithExitCode(exitCode(result))

	sarifReport.AddRun(run)
	return sarifReport, nil
}

func writeSARIF(w io.Writer, in Input) error {
	sarifReport, err := BuildSARIF(in)
	if err != nil {
		return err
	}
	if err := sarifReport.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

// newResult reports every contributing result at error level when the verdict is high risk.
// Otherwise no result is above warning.
func newResult(ruleID, level string, escalate bool, text string) *sarif.Result {
	if escalate {
		level = levelError
	} else if level == levelError {
		level = levelWarning
	}
	return sarif.NewRuleResult(ruleID).
		WithLevel(level).
		WithMessage(sarif.NewTextMessage(text))
}

func newLocation(uri string, line int) *sarif.Location {
	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewSimpleArtifactLocation(uri).WithUriBaseId(srcRootBaseID))
	if line > 0 {
		physical.WithRegion(sarif.NewRegion().WithStartLine(line))
	}
	return sarif.NewLocationWithPhysicalLocation(physical)
}

func addVersionControlProvenance(run *sarif.Run, md *git.RepositoryMetadata) {
	if md == nil || md.RepositoryURI == nil {
		return
	}
	vcs := sarif.NewVersionControlDetails().
		WithRepositoryURI(*md.RepositoryURI).
		WithMappedTo(sarif.NewArtifactLocation().WithUriBaseId(srcRootBaseID))
	if md.CommitHash != nil {
		vcs.WithRevisionID(*md.CommitHash)
	}
	if md.BranchName != nil {
		vcs.WithBranch(*md.BranchName)
	}
	run.AddVersionControlProvenance(vcs)
}

// subfolderPrefix returns the scanned folder relative to the repository root,
// so artifact URIs resolve against the repository checkout.
func subfolderPrefix(md *git.RepositoryMetadata) string {
	if md == nil {
		return ""
	}
	return strings.Trim(strings.ReplaceAll(md.Subfolder, "\\", "/"), "/")
}

func artifactURI(root, file, prefix string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(file)
	}
	rel = filepath.ToSlash(rel)
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

func exitCode(result *scanner.Result) int {
	if result.IsHighRisk() {
		return shared.ExitHighRisk
	}
	return shared.ExitLowerRisk
}
