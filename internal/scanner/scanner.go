package scanner

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// mainFileMarker identifies the file carrying the WordPress plugin header.
const mainFileMarker = "Plugin Name:"

// Scanner represents the configuration and behavior of the authz heuristic scanner.
type Scanner struct {
	extension string       // Extension of the source files to inspect
	logger    hclog.Logger // Logger for logging messages and errors
}

// New creates a new Scanner for PHP sources.
func New(logger hclog.Logger) *Scanner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Scanner{
		extension: PHPExtension,
		logger:    logger,
	}
}

// Scan inspects the plugin directory at root and returns the aggregated verdict.
// File system failures abort the scan and are returned as is; an empty directory is a valid result.
func (s *Scanner) Scan(root string) (*Result, error) {
	files, err := DiscoverFiles(root, s.extension)
	if err != nil {
		return nil, fmt.Errorf("failed to discover source files: %w", err)
	}
	s.logger.Debug("source files discovered", "root", root, "count", len(files))

	if len(files) == 0 {
		s.logger.Info("no source files found", "root", root, "extension", s.extension)
		return emptyResult(root), nil
	}

	result := &Result{Root: root, Files: files}

	mainFile, mainText, err := s.findMainFile(files)
	if err != nil {
		return nil, err
	}
	result.MainFile = mainFile
	result.Version = ExtractVersion(mainText)
	result.VulnerableVersion = IsVulnerable(result.Version)
	if result.VulnerableVersion {
		result.Reasons = append(result.Reasons, ReasonVulnerableVersion)
	} else {
		result.Reasons = append(result.Reasons, ReasonSafeVersion)
	}
	s.logger.Debug("plugin version resolved", "main_file", mainFile, "version", result.Version.String(), "vulnerable", result.VulnerableVersion)

	for _, path := range files {
		text, err := readSource(path)
		if err != nil {
			return nil, err
		}
		finding := EvaluateFile(path, text)
		s.logger.Trace("file evaluated",
			"path", path,
			"remote_entry", finding.HasRemoteEntry,
			"install_call", finding.HasInstallActivationCall,
			"capability_guard", finding.HasCapabilityGuard,
		)
		accumulate(result, finding)
	}

	if !result.FoundInstallActivationFlow {
		result.Reasons = append(result.Reasons, ReasonNoFlow)
	}

	s.logger.Debug("scan finished",
		"high_risk", result.IsHighRisk(),
		"flows", len(result.Findings),
	)
	return result, nil
}

// findMainFile returns the first file, in discovery order, containing the plugin header marker.
// Both return values are empty when no file qualifies.
func (s *Scanner) findMainFile(files []string) (string, string, error) {
	for _, path := range files {
		text, err := readSource(path)
		if err != nil {
			return "", "", err
		}
		if strings.Contains(text, mainFileMarker) {
			return path, text, nil
		}
	}
	s.logger.Debug("no plugin header found, version unavailable")
	return "", "", nil
}
