// Package match builds window-rule match expressions from the attributes of
// an open window.
package match

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/revati108/arch-board/internal/backend"
)

// Attribute is a window property a rule can match on.
type Attribute string

const (
	AttrClass        Attribute = "class"
	AttrTitle        Attribute = "title"
	AttrInitialClass Attribute = "initialClass"
	AttrInitialTitle Attribute = "initialTitle"
)

// Attributes lists every attribute in the order fragments are emitted.
var Attributes = []Attribute{AttrClass, AttrTitle, AttrInitialClass, AttrInitialTitle}

// Key is the attribute's name in Hyprland's match: syntax.
func (a Attribute) Key() string {
	return strings.ToLower(string(a))
}

// Value reads the attribute from w.
func (a Attribute) Value(w backend.Window) string {
	switch a {
	case AttrClass:
		return w.Class
	case AttrTitle:
		return w.Title
	case AttrInitialClass:
		return w.InitialClass
	case AttrInitialTitle:
		return w.InitialTitle
	}
	return ""
}

// ParseAttribute accepts either spelling ("initialClass" or "initialclass").
func ParseAttribute(s string) (Attribute, error) {
	for _, a := range Attributes {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown match attribute %q", s)
}

// Mode controls how an escaped value is wrapped.
type Mode string

const (
	ModeExact    Mode = "exact"
	ModeStarts   Mode = "starts"
	ModeContains Mode = "contains"
	// Any other mode emits the escaped value unwrapped.
	ModeLiteral Mode = "literal"
)

// Wrap escapes regex metacharacters in value and applies mode.
func Wrap(value string, mode Mode) string {
	v := regexp.QuoteMeta(value)
	switch mode {
	case ModeExact:
		return "^(" + v + ")$"
	case ModeStarts:
		return "^" + v + ".*"
	case ModeContains:
		return ".*" + v + ".*"
	default:
		return v
	}
}

// Generate returns "match:key regex" fragments for the selected attributes
// of w, joined with ", ". Attributes are emitted in canonical order and
// duplicates are ignored. No attributes yields "".
func Generate(w backend.Window, attrs []Attribute, mode Mode) string {
	var parts []string
	for _, a := range Attributes {
		if !slices.Contains(attrs, a) {
			continue
		}
		parts = append(parts, "match:"+a.Key()+" "+Wrap(a.Value(w), mode))
	}
	return strings.Join(parts, ", ")
}

const labelTitleWidth = 30

// Label is the picker text for w: "class - title", the title cut to 30
// display cells.
func Label(w backend.Window) string {
	title := "No Title"
	if w.Title != "" {
		title = runewidth.Truncate(w.Title, labelTitleWidth, "")
	}
	return w.Class + " - " + title
}
