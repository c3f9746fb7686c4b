package shared

// Process exit codes. A completed scan ends with one of the two verdict codes.
const (
	ExitLowerRisk = 0
	ExitFailure   = 1
	ExitHighRisk  = 2
)

// Human readable verdicts.
const (
	VerdictHighRisk  = "HIGH RISK"
	VerdictLowerRisk = "LOWER RISK"
)

// AppName is the name of the binary.
const AppName = "wowrevenue-authz-guard"

// Versions holds build information for the application.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// Verdict returns the human readable verdict for a high risk flag.
func Verdict(highRisk bool) string {
	if highRisk {
		return VerdictHighRisk
	}
	return VerdictLowerRisk
}

// Report output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// OutputFormats lists the supported report formats.
var OutputFormats = []string{FormatText, FormatJSON, FormatSARIF}

// IsValidFormat reports whether format is one of OutputFormats.
func IsValidFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
