// Package migration rewrites legacy Hyprland window and layer rules into the
// match: syntax introduced in 0.53 and renames options that were replaced.
package migration

import (
	"fmt"
	"strconv"
	"strings"
)

const focusUnderFullscreen = "misc:on_focus_under_fullscreen"

// Line is one "key = value" line of a config file. Value is everything
// after the first "=" with surrounding space trimmed.
type Line struct {
	Key   string
	Value string
}

// Result counts what Migrate changed.
type Result struct {
	MigratedRules  int
	RenamedOptions int
}

// Changed reports whether anything was rewritten.
func (r Result) Changed() bool {
	return r.MigratedRules > 0 || r.RenamedOptions > 0
}

var matchKeys = map[string]string{
	"class":        "class",
	"title":        "title",
	"initialclass": "initialclass",
	"initialtitle": "initialtitle",
	"floating":     "float",
	"xwayland":     "xwayland",
	"pinned":       "pinned",
	"workspace":    "workspace",
	"fullscreen":   "fullscreen",
	"monitor":      "monitor",
	"address":      "address",
	"pid":          "pid",
	"uid":          "uid",
	"group":        "group",
}

func isLegacyWindowRule(l Line) bool {
	k := strings.ToLower(l.Key)
	return k == "windowrulev2" || (k == "windowrule" && !strings.Contains(l.Value, "match:"))
}

func isLegacyLayerRule(l Line) bool {
	return strings.ToLower(l.Key) == "layerrule" && !strings.Contains(l.Value, "match:")
}

func isOldFullscreenOption(l Line) bool {
	return strings.Contains(strings.ToLower(l.Key), "new_window_takes_over_fullscreen")
}

func isInheritFullscreen(l Line) bool {
	return strings.ToLower(l.Key) == "master:inherit_fullscreen"
}

// NeedsMigration reports whether any line uses legacy syntax.
func NeedsMigration(lines []Line) bool {
	for _, l := range lines {
		if isLegacyWindowRule(l) || isLegacyLayerRule(l) || isOldFullscreenOption(l) || isInheritFullscreen(l) {
			return true
		}
	}
	return false
}

// Summary describes pending changes, one bullet per category. It is empty
// when nothing needs migrating.
func Summary(lines []Line) string {
	var rules, layers int
	var oldFullscreen, inherit bool
	for _, l := range lines {
		switch {
		case isLegacyWindowRule(l):
			rules++
		case isLegacyLayerRule(l):
			layers++
		}
		oldFullscreen = oldFullscreen || isOldFullscreenOption(l)
		inherit = inherit || isInheritFullscreen(l)
	}

	var parts []string
	if rules > 0 {
		parts = append(parts, fmt.Sprintf("• %d legacy window rules → windowrule (new syntax)", rules))
	}
	if layers > 0 {
		parts = append(parts, fmt.Sprintf("• %d legacy layer rules → layerrule (new syntax)", layers))
	}
	if oldFullscreen {
		parts = append(parts, "• misc:new_window_takes_over_fullscreen → "+focusUnderFullscreen)
	}
	if inherit {
		parts = append(parts, "• master:inherit_fullscreen → "+focusUnderFullscreen)
	}
	return strings.Join(parts, "\n")
}

// Migrate rewrites lines in place.
func Migrate(lines []Line) Result {
	var res Result
	for i := range lines {
		l := &lines[i]
		switch {
		case isLegacyWindowRule(*l):
			l.Key = "windowrule"
			if v, ok := migrateWindowRule(l.Value); ok {
				l.Value = v
			}
			res.MigratedRules++
		case isLegacyLayerRule(*l):
			if v, ok := migrateLayerRule(l.Value); ok {
				l.Value = v
				res.MigratedRules++
			}
		}

		if isOldFullscreenOption(*l) || isInheritFullscreen(*l) {
			l.Key = focusUnderFullscreen
			res.RenamedOptions++
		}
	}
	return res
}

func migrateWindowRule(raw string) (string, bool) {
	head := splitGrouped(raw, ',', 1)
	if len(head) < 2 {
		return "", false
	}
	all := append([]string{head[0]}, splitGrouped(head[1], ',', 0)...)

	var out []string
	explicitMatch := false
	for _, p := range all {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if k, v, ok := strings.Cut(p, ":"); ok {
			if mapped, known := matchKeys[strings.ToLower(strings.TrimSpace(k))]; known {
				out = append(out, "match:"+mapped+" "+strings.TrimSpace(v))
				explicitMatch = true
				continue
			}
		}

		if strings.HasPrefix(p, "ignorealpha") {
			p = strings.Replace(p, "ignorealpha", "ignore_alpha", 1)
		}
		if strings.HasPrefix(p, "move onscreen cursor") {
			if f := strings.Fields(p); len(f) >= 5 {
				out = append(out, "move cursor_x"+cursorOffset(f[3], "window_w")+" cursor_y"+cursorOffset(f[4], "window_h"))
				continue
			}
		}
		out = append(out, withArgument(p))
	}

	if !explicitMatch && len(out) > 0 {
		last := strings.TrimSuffix(out[len(out)-1], " on")
		out[len(out)-1] = "match:class " + last
	}
	return strings.Join(out, ", "), true
}

func migrateLayerRule(raw string) (string, bool) {
	parts := splitGrouped(raw, ',', 1)
	if len(parts) < 2 {
		return "", false
	}
	effect := strings.TrimSpace(parts[0])
	switch {
	case effect == "stayfocused":
		effect = "stay_focused"
	case effect == "ignorezero":
		effect = "ignore_alpha 0"
	case strings.HasPrefix(effect, "ignorealpha"):
		effect = strings.Replace(effect, "ignorealpha", "ignore_alpha", 1)
	}
	if !strings.Contains(effect, " ") {
		effect += " on"
	}
	return effect + ", match:namespace " + strings.TrimSpace(parts[1]), true
}

// withArgument gives a bare effect the explicit "on" argument.
func withArgument(effect string) string {
	if f := strings.Fields(effect); len(f) >= 2 {
		return effect
	}
	return effect + " on"
}

// cursorOffset converts a percentage offset into a window-relative
// expression ("50%" → "+window_w*0.5"); plain pixel values get a sign.
func cursorOffset(arg, dimension string) string {
	if strings.HasSuffix(arg, "%") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64); err == nil {
			v := f / 100
			sign := "+"
			if v < 0 {
				sign = ""
			}
			return sign + dimension + "*" + strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	if !strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "+") {
		return "+" + arg
	}
	return strings.Replace(arg, "+-", "-", 1)
}

// splitGrouped splits s on sep outside (), [] and {}. A positive max limits
// the number of splits; the remainder stays in the last element.
func splitGrouped(s string, sep rune, max int) []string {
	var (
		parts  []string
		cur    strings.Builder
		depth  [3]int
		splits int
	)
	for _, c := range s {
		if max > 0 && splits >= max {
			cur.WriteRune(c)
			continue
		}
		switch c {
		case '(':
			depth[0]++
		case ')':
			if depth[0] > 0 {
				depth[0]--
			}
		case '[':
			depth[1]++
		case ']':
			if depth[1] > 0 {
				depth[1]--
			}
		case '{':
			depth[2]++
		case '}':
			if depth[2] > 0 {
				depth[2]--
			}
		}
		if c == sep && depth == [3]int{} {
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
			splits++
			continue
		}
		cur.WriteRune(c)
	}
	return append(parts, strings.TrimSpace(cur.String()))
}
