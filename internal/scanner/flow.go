package scanner

import (
	"regexp"
	"strings"
)

var (
	// ajaxHookRe matches a callback registered on an authenticated-AJAX hook, capturing the action name.
	ajaxHookRe = regexp.MustCompile(`add_action\(\s*['"]wp_ajax_([^'"]+)['"]`)

	// installationFnRe matches a call into the plugin installer or activation API.
	installationFnRe = regexp.MustCompile(`(?i)(Plugin_Upgrader|install_plugin_install_status|activate_plugin|plugins_api)\s*\(`)

	// capabilityGuards are the literal checks accepted as an administrator capability guard.
	capabilityGuards = []string{
		"current_user_can('activate_plugins'",
		`current_user_can("activate_plugins"`,
		"current_user_can('install_plugins'",
		`current_user_can("install_plugins"`,
		"manage_options",
	}
)

// FlowFinding is the evidence gathered from a single source file.
type FlowFinding struct {
	Path                     string
	HasRemoteEntry           bool
	HasInstallActivationCall bool
	HasCapabilityGuard       bool

	// Handler is the first AJAX action name registered in the file.
	Handler string
	// RemoteEntryLine and InstallCallLine are 1-based, zero when there is no match.
	RemoteEntryLine int
	InstallCallLine int
}

// Counts reports whether the file ties an AJAX entry point to an install/activation call.
func (f FlowFinding) Counts() bool {
	return f.HasRemoteEntry && f.HasInstallActivationCall
}

// EvaluateFile applies the lexical heuristics to the text of one file.
func EvaluateFile(path, text string) FlowFinding {
	finding := FlowFinding{Path: path}

	if loc := ajaxHookRe.FindStringSubmatchIndex(text); loc != nil {
		finding.HasRemoteEntry = true
		finding.Handler = text[loc[2]:loc[3]]
		finding.RemoteEntryLine = lineAt(text, loc[0])
	}
	if loc := installationFnRe.FindStringIndex(text); loc != nil {
		finding.HasInstallActivationCall = true
		finding.InstallCallLine = lineAt(text, loc[0])
	}
	finding.HasCapabilityGuard = hasCapabilityGuard(text)

	return finding
}

func hasCapabilityGuard(text string) bool {
	for _, guard := range capabilityGuards {
		if strings.Contains(text, guard) {
			return true
		}
	}
	return false
}

func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
