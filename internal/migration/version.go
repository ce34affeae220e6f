package migration

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// newRulesConstraint gates the match: window rule syntax.
var newRulesConstraint = mustConstraint(">= 0.53.0")

var reVersion = regexp.MustCompile(`v(\d+\.\d+\.\d+)`)

func mustConstraint(c string) *semver.Constraints {
	cons, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cons
}

// ParseVersion extracts the compositor version from `hyprctl version` output.
// Both "Hyprland 0.53.0 built from branch v0.53.0" style lines and a
// "Tag: v0.53.0" line are accepted.
func ParseVersion(output string) (*semver.Version, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Tag:") {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				if v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimRight(fields[1], ","), "v")); err == nil {
					return v, nil
				}
			}
			continue
		}
		if strings.Contains(line, "Hyprland l") {
			continue
		}
		if m := reVersion.FindStringSubmatch(line); m != nil {
			if v, err := semver.NewVersion(m[1]); err == nil {
				return v, nil
			}
		}
	}
	return nil, fmt.Errorf("parse %q: %w", firstLine(output), ErrUnknownVersion)
}

// SupportsNewWindowRules reports whether v understands match: rules.
// Pre-release suffixes from git tags are ignored.
func SupportsNewWindowRules(v *semver.Version) bool {
	if v == nil {
		return false
	}
	core, err := semver.NewVersion(fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch()))
	if err != nil {
		return false
	}
	return newRulesConstraint.Check(core)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
