package report

import (
	"bytes"
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/git"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
)

func stringPtr(s string) *string {
	return &s
}

func resultRuleIDs(run *sarif.Run) []string {
	var ids []string
	for _, res := range run.Results {
		ids = append(ids, *res.RuleID)
	}
	return ids
}

func TestBuildSARIFHighRisk(t *testing.T) {
	report, err := BuildSARIF(Input{
		Result:      highRiskResult(),
		ScanID:      "3f0c1d2e-1111-4222-8333-444455556666",
		ToolVersion: "1.0.0",
	})
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	run := report.Runs[0]

	assert.Equal(t, "2.1.0", report.Version)
	assert.Equal(t, shared.AppName, run.Tool.Driver.Name)
	require.NotNil(t, run.Tool.Driver.Version)
	assert.Equal(t, "1.0.0", *run.Tool.Driver.Version)
	assert.Len(t, run.Tool.Driver.Rules, 3)

	require.NotNil(t, run.AutomationDetails)
	assert.Equal(t, "3f0c1d2e-1111-4222-8333-444455556666", *run.AutomationDetails.GUID)
	assert.Empty(t, run.VersionControlProvenance)

	assert.Equal(t, []string{RuleVulnerableVersion, RuleInstallFlow, RuleMissingCapability}, resultRuleIDs(run))
	for _, res := range run.Results {
		assert.Equal(t, "error", *res.Level)
	}

	mainLoc := run.Results[0].Locations[0].PhysicalLocation
	assert.Equal(t, "wowrevenue.php", *mainLoc.ArtifactLocation.URI)
	assert.Nil(t, mainLoc.Region)

	flow := run.Results[1]
	assert.Contains(t, *flow.Message.Text, `"wr_install_plugin"`)
	assert.Equal(t, "includes/ajax.php", *flow.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 3, *flow.Locations[0].PhysicalLocation.Region.StartLine)
	require.Len(t, flow.RelatedLocations, 1)
	assert.Equal(t, 7, *flow.RelatedLocations[0].PhysicalLocation.Region.StartLine)

	missing := run.Results[2]
	assert.Equal(t, 7, *missing.Locations[0].PhysicalLocation.Region.StartLine)

	assert.Equal(t, true, run.Properties["high_risk"])
	assert.Equal(t, "HIGH RISK", run.Properties["verdict"])
	assert.Equal(t, "2.1.3", run.Properties["plugin_version"])
	assert.Len(t, run.Artifacts, 2)

	require.Len(t, run.Invocations, 1)
	assert.Equal(t, shared.ExitHighRisk, *run.Invocations[0].ExitCode)
}

func TestBuildSARIFLowerRiskLevels(t *testing.T) {
	result := highRiskResult()
	result.VulnerableVersion = false
	result.Reasons = result.Reasons[1:]

	report, err := BuildSARIF(Input{Result: result})
	require.NoError(t, err)
	run := report.Runs[0]

	assert.Nil(t, run.AutomationDetails)
	assert.Equal(t, []string{RuleInstallFlow, RuleMissingCapability}, resultRuleIDs(run))
	for _, res := range run.Results {
		assert.Equal(t, "warning", *res.Level)
	}
	assert.Equal(t, false, run.Properties["high_risk"])
	assert.Equal(t, shared.ExitLowerRisk, *run.Invocations[0].ExitCode)
}

func TestBuildSARIFNoFindings(t *testing.T) {
	report, err := BuildSARIF(Input{Result: lowerRiskResult()})
	require.NoError(t, err)
	assert.Empty(t, report.Runs[0].Results)
	assert.Len(t, report.Runs[0].Tool.Driver.Rules, 3)
}

func TestBuildSARIFVersionControlProvenance(t *testing.T) {
	md := &git.RepositoryMetadata{
		BranchName:    stringPtr("main"),
		CommitHash:    stringPtr("0123456789abcdef0123456789abcdef01234567"),
		RepositoryURI: stringPtr("https://github.com/acme/site"),
		Subfolder:     "wp-content/plugins/wowrevenue",
	}

	report, err := BuildSARIF(Input{Result: highRiskResult(), Metadata: md})
	require.NoError(t, err)
	run := report.Runs[0]

	require.Len(t, run.VersionControlProvenance, 1)
	vcs := run.VersionControlProvenance[0]
	assert.Equal(t, "https://github.com/acme/site", *vcs.RepositoryURI)
	assert.Equal(t, "main", *vcs.Branch)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", *vcs.RevisionID)

	uri := *run.Results[1].Locations[0].PhysicalLocation.ArtifactLocation.URI
	assert.Equal(t, "wp-content/plugins/wowrevenue/includes/ajax.php", uri)
}

func TestWriteSARIFRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, shared.FormatSARIF, Input{Result: highRiskResult(), ScanID: "scan-1"}))

	parsed, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.Runs, 1)
	assert.Len(t, parsed.Runs[0].Results, 3)
}
