package scanner

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Version is a dotted plugin version split into its numeric components.
type Version []int

// VulnerableCeiling is the highest WowRevenue release still carrying the authorization flaw.
// The comparison against it is inclusive.
var VulnerableCeiling = Version{2, 1, 3}

// headerSpace is Unicode whitespace, including separators such as NBSP and U+2028.
const headerSpace = `[\s\p{Z}\x{1c}-\x{1f}\x{85}]`

// pluginHeaderVersionRe matches the "Version:" line of a WordPress plugin header comment.
var pluginHeaderVersionRe = regexp.MustCompile(
	`(?m)^` + headerSpace + `*\*` + headerSpace + `*Version:` + headerSpace + `*([0-9.]+)` + headerSpace + `*$`,
)

// unknownVersion is returned when no version can be recovered. It sorts below every real release,
// so an undeclared version is treated as vulnerable.
func unknownVersion() Version {
	return Version{0}
}

// ParseVersion converts a dotted version string into a Version.
// Components that are not plain ASCII digits are dropped; an empty outcome yields Version{0}.
func ParseVersion(raw string) Version {
	var parts Version
	for _, p := range strings.Split(raw, ".") {
		if !isDigits(p) {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			// only a range error is possible here
			n = math.MaxInt
		}
		parts = append(parts, n)
	}
	if len(parts) == 0 {
		return unknownVersion()
	}
	return parts
}

// ExtractVersion returns the version declared in a plugin header, or Version{0} when there is none.
func ExtractVersion(text string) Version {
	match := pluginHeaderVersionRe.FindStringSubmatch(text)
	if match == nil {
		return unknownVersion()
	}
	return ParseVersion(match[1])
}

// Compare orders versions component by component; when one is a prefix of the other the shorter
// one sorts first. It returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	for i := 0; i < len(v) && i < len(other); i++ {
		switch {
		case v[i] < other[i]:
			return -1
		case v[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(v) < len(other):
		return -1
	case len(v) > len(other):
		return 1
	}
	return 0
}

// AtMost reports whether v <= other.
func (v Version) AtMost(other Version) bool {
	return v.Compare(other) <= 0
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// IsVulnerable reports whether v falls at or below VulnerableCeiling.
func IsVulnerable(v Version) bool {
	return v.AtMost(VulnerableCeiling)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
