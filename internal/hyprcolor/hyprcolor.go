// Package hyprcolor converts between the color encodings found in Hyprland,
// hyprlock and waybar configs and the #rrggbb form used by color pickers.
//
// Decoding never fails: unrecognized input maps to a defined fallback so a
// preview can always be rendered. Encoding back keeps the family of the
// original value (prefix, alpha, separator style) and only swaps the RGB part.
package hyprcolor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/revati108/arch-board/internal/validation"
)

// Fallback colors for values that cannot be decoded.
const (
	FallbackHex    = "#ffffff"
	ForegroundHex  = "#ffffff"
	BackgroundHex  = "#000000"
	UnknownVarHex  = "#aaaaaa"
	opaqueAlphaHex = "ff"
)

// Family identifies the textual shape of a color value.
type Family int

const (
	FamilyUnknown   Family = iota
	FamilyHex              // #RRGGBB
	FamilyHexShort         // #RGB
	FamilyHexAlpha         // #RRGGBBAA
	Family0xARGB           // 0xAARRGGBB
	Family0xRGB            // 0xRRGGBB
	FamilyCSSRGBA          // rgba(r, g, b, a)
	FamilyCSSRGB           // rgb(r, g, b)
	FamilyHyprRGBA         // rgba(RRGGBBAA)
	FamilyHyprRGB          // rgb(RRGGBB) or rgba(RRGGBB)
	FamilyBare             // RRGGBB
	FamilyBareAlpha        // RRGGBBAA
	FamilyVariable         // $name
	FamilyGradient         // several stops plus an optional angle
)

var familyNames = map[Family]string{
	FamilyUnknown:   "unknown",
	FamilyHex:       "hex",
	FamilyHexShort:  "hex-short",
	FamilyHexAlpha:  "hex-alpha",
	Family0xARGB:    "0xargb",
	Family0xRGB:     "0xrgb",
	FamilyCSSRGBA:   "css-rgba",
	FamilyCSSRGB:    "css-rgb",
	FamilyHyprRGBA:  "hypr-rgba",
	FamilyHyprRGB:   "hypr-rgb",
	FamilyBare:      "bare",
	FamilyBareAlpha: "bare-alpha",
	FamilyVariable:  "variable",
	FamilyGradient:  "gradient",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "unknown"
}

var (
	reHash    = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	re0x      = regexp.MustCompile(`^(0[xX])([0-9a-fA-F]{8}|[0-9a-fA-F]{6})$`)
	reHypr    = regexp.MustCompile(`(?i)^(rgba?)\(\s*([0-9a-f]{6}(?:[0-9a-f]{2})?)\s*\)$`)
	reCSS     = regexp.MustCompile(`(?i)^(rgba?)\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([^)]*?)\s*)?\)$`)
	reBare    = regexp.MustCompile(`^[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)
	reAngle   = regexp.MustCompile(`(?i)^-?\d+(\.\d+)?deg$`)
	commaStep = regexp.MustCompile(`,\s+`)
)

// Classify reports the encoding family of s.
func Classify(s string) Family {
	s = strings.TrimSpace(s)
	if s == "" {
		return FamilyUnknown
	}
	if IsGradient(s) {
		return FamilyGradient
	}
	if strings.HasPrefix(s, "$") {
		return FamilyVariable
	}
	if m := reHash.FindStringSubmatch(s); m != nil {
		switch len(m[1]) {
		case 3:
			return FamilyHexShort
		case 8:
			return FamilyHexAlpha
		default:
			return FamilyHex
		}
	}
	if m := re0x.FindStringSubmatch(s); m != nil {
		if len(m[2]) == 8 {
			return Family0xARGB
		}
		return Family0xRGB
	}
	if m := reHypr.FindStringSubmatch(s); m != nil {
		if len(m[2]) == 8 {
			return FamilyHyprRGBA
		}
		return FamilyHyprRGB
	}
	if m := reCSS.FindStringSubmatch(s); m != nil {
		if m[5] != "" {
			return FamilyCSSRGBA
		}
		return FamilyCSSRGB
	}
	if m := reBare.FindStringSubmatch(s); m != nil {
		if m[1] != "" {
			return FamilyBareAlpha
		}
		return FamilyBare
	}
	return FamilyUnknown
}

// ToHex decodes any recognized encoding into lowercase #rrggbb.
// Gradients are previewed by their first stop.
func ToHex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return FallbackHex
	}
	if stops := Stops(s); len(stops) > 1 {
		return ToHex(stops[0])
	}

	if strings.HasPrefix(s, "$") {
		switch s {
		case "$foreground":
			return ForegroundHex
		case "$background":
			return BackgroundHex
		default:
			return UnknownVarHex
		}
	}

	if m := reHash.FindStringSubmatch(s); m != nil {
		digits := m[1]
		if len(digits) == 3 {
			digits = expandShort(digits)
		}
		return "#" + strings.ToLower(digits[:6])
	}

	if m := re0x.FindStringSubmatch(s); m != nil {
		digits := m[2]
		if len(digits) == 8 {
			digits = digits[2:]
		}
		return "#" + strings.ToLower(digits)
	}

	if m := reHypr.FindStringSubmatch(s); m != nil {
		return "#" + strings.ToLower(m[2][:6])
	}

	if m := reCSS.FindStringSubmatch(s); m != nil {
		return colorful.Color{
			R: float64(clampByte(m[2])) / 255,
			G: float64(clampByte(m[3])) / 255,
			B: float64(clampByte(m[4])) / 255,
		}.Hex()
	}

	if reBare.MatchString(s) {
		return "#" + strings.ToLower(s[:6])
	}

	return FallbackHex
}

// ToHyprColor synthesizes an opaque 0xAARRGGBB value from a picker hex.
func ToHyprColor(hex string) (string, error) {
	rgb, err := normalizeHex(hex)
	if err != nil {
		return "", err
	}
	return "0x" + opaqueAlphaHex + rgb, nil
}

// FormatUpdate returns original with its RGB replaced by newHex, keeping the
// encoding family and any alpha. Values with no family to preserve (empty,
// variables, unrecognized text) become an opaque 0xAARRGGBB literal.
func FormatUpdate(original, newHex string) (string, error) {
	rgb, err := normalizeHex(newHex)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(original)

	if IsGradient(s) {
		return "", fmt.Errorf("%w: %w", ErrGradientWriteBack,
			validation.New("color", "is a gradient; edit the stops individually"))
	}

	if m := reHash.FindStringSubmatch(s); m != nil {
		if len(m[1]) == 8 {
			return "#" + rgb + m[1][6:], nil
		}
		return "#" + rgb, nil
	}

	if m := re0x.FindStringSubmatch(s); m != nil {
		if len(m[2]) == 8 {
			return m[1] + m[2][:2] + rgb, nil
		}
		return m[1] + rgb, nil
	}

	if m := reHypr.FindStringSubmatch(s); m != nil {
		alpha := ""
		if len(m[2]) == 8 {
			alpha = m[2][6:]
		}
		return m[1] + "(" + rgb + alpha + ")", nil
	}

	if m := reCSS.FindStringSubmatch(s); m != nil {
		c, _ := colorful.Hex("#" + rgb)
		r, g, b := c.RGB255()
		sep := ","
		if commaStep.MatchString(s) {
			sep = ", "
		}
		parts := []string{strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
		if m[5] != "" {
			parts = append(parts, m[5])
		}
		return m[1] + "(" + strings.Join(parts, sep) + ")", nil
	}

	if m := reBare.FindStringSubmatch(s); m != nil {
		return rgb + m[1], nil
	}

	return "0x" + opaqueAlphaHex + rgb, nil
}

// IsGradient reports whether s holds more than one color stop.
func IsGradient(s string) bool {
	return len(Stops(s)) > 1
}

// Stops splits a gradient value into its color stops, dropping a trailing
// angle. A plain color yields a single stop.
func Stops(s string) []string {
	var (
		stops []string
		depth int
		start = -1
	)
	flush := func(end int) {
		if start >= 0 {
			tok := s[start:end]
			if !reAngle.MatchString(tok) {
				stops = append(stops, tok)
			}
			start = -1
		}
	}
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case (r == ' ' || r == '\t') && depth == 0:
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(s))
	return stops
}

// normalizeHex validates a picker value and returns six lowercase digits.
func normalizeHex(hex string) (string, error) {
	h := strings.TrimSpace(hex)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidHex, hex,
			validation.New("hex", "must be #rgb or #rrggbb"))
	}
	return c.Hex()[1:], nil
}

func expandShort(d string) string {
	var b strings.Builder
	for _, r := range d {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

func clampByte(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
