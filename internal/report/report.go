package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/git"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/scanner"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
)

// DefaultFileBaseName is used when the output path names a folder.
const DefaultFileBaseName = "authz-guard-report"

var fileExtensions = map[string]string{
	shared.FormatText:  ".txt",
	shared.FormatJSON:  ".json",
	shared.FormatSARIF: ".sarif",
}

// Input is everything a renderer may put into a report.
type Input struct {
	Result *scanner.Result

	// ScanID identifies the scan in logs and in SARIF automation details.
	ScanID      string
	Metadata    *git.RepositoryMetadata
	ToolVersion string
}

// Payload is the JSON shape of a verdict. Field order and names are part of the CLI contract.
type Payload struct {
	HighRisk                   bool     `json:"high_risk"`
	VulnerableVersion          bool     `json:"vulnerable_version"`
	FoundInstallActivationFlow bool     `json:"found_install_activation_flow"`
	MissingAdminCapability     bool     `json:"missing_admin_capability"`
	Reasons                    []string `json:"reasons"`
}

// NewPayload converts a scan result into its JSON payload.
func NewPayload(result *scanner.Result) Payload {
	reasons := make([]string, 0, len(result.Reasons))
	reasons = append(reasons, result.Reasons...)
	return Payload{
		HighRisk:                   result.IsHighRisk(),
		VulnerableVersion:          result.VulnerableVersion,
		FoundInstallActivationFlow: result.FoundInstallActivationFlow,
		MissingAdminCapability:     result.MissingAdminCapability,
		Reasons:                    reasons,
	}
}

// ParseFormat resolves the report format from the --json switch and the --format value.
// The switch wins over any format value.
func ParseFormat(jsonFlag bool, format string) (string, error) {
	if jsonFlag {
		return shared.FormatJSON, nil
	}
	if format == "" {
		return shared.FormatText, nil
	}
	format = strings.ToLower(format)
	if !shared.IsValidFormat(format) {
		return "", fmt.Errorf("unsupported format %q, expected one of %s", format, strings.Join(shared.OutputFormats, ", "))
	}
	return format, nil
}

// DefaultFileName returns the report file name for a format.
func DefaultFileName(format string) string {
	ext, ok := fileExtensions[format]
	if !ok {
		ext = ".txt"
	}
	return DefaultFileBaseName + ext
}

// Write renders the report in the requested format.
func Write(w io.Writer, format string, in Input) error {
	if in.Result == nil {
		return fmt.Errorf("nothing to report: scan result is nil")
	}

	switch format {
	case shared.FormatText, "":
		return writeText(w, in.Result)
	case shared.FormatJSON:
		return writeJSON(w, in.Result)
	case shared.FormatSARIF:
		return writeSARIF(w, in)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeJSON(w io.Writer, result *scanner.Result) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewPayload(result)); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	if _, err := w.Write(escapeNonASCII(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// escapeNonASCII rewrites every rune outside printable ASCII as a \uXXXX escape,
// using a UTF-16 surrogate pair above U+FFFF. Such runes only occur inside JSON strings.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, r := range string(data) {
		if r < 0x7f {
			out = append(out, byte(r))
			continue
		}
		if r > 0xffff {
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, "\\u%04x\\u%04x", hi, lo)
			continue
		}
		out = fmt.Appendf(out, "\\u%04x", r)
	}
	return out
}
