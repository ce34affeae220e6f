// Package schema describes the option catalog the backend publishes for the
// Hyprland tool and the path keys used to address option values.
package schema

import (
	"strings"
)

// OptionType is the declared editor type of an option.
type OptionType string

const (
	TypeBool     OptionType = "bool"
	TypeInt      OptionType = "int"
	TypeFloat    OptionType = "float"
	TypeColor    OptionType = "color"
	TypeGradient OptionType = "gradient"
	TypeEnum     OptionType = "enum"
	TypeVec2     OptionType = "vec2"
	TypeString   OptionType = "string"
)

// Option is one schema-declared, read-only option descriptor.
type Option struct {
	Name        string     `json:"name"`
	Type        OptionType `json:"type"`
	Default     any        `json:"default"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Step        *float64   `json:"step,omitempty"`
	Choices     []string   `json:"choices,omitempty"`
	Description string     `json:"description"`
}

// Section groups options under one config block, e.g. "general".
type Section struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Options []Option `json:"options"`
}

// Tab is an ordered list of sections shown together.
type Tab struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Icon     string    `json:"icon,omitempty"`
	Sections []Section `json:"sections"`
}

// Schema is the ordered list of tabs.
type Schema []Tab

// Path returns the value-map key for an option. The trailing space is part
// of the key the backend uses and must not be trimmed.
func Path(section, option string) string {
	return section + ":" + option + " "
}

// SplitPath is the inverse of Path. It tolerates a missing trailing space.
func SplitPath(path string) (section, option string, ok bool) {
	p := strings.TrimSuffix(path, " ")
	i := strings.LastIndex(p, ":")
	if i <= 0 || i == len(p)-1 {
		return "", "", false
	}
	return p[:i], p[i+1:], true
}

// Tab returns the tab with the given id.
func (s Schema) Tab(id string) (Tab, bool) {
	for _, t := range s {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// Lookup finds the option addressed by path.
func (s Schema) Lookup(path string) (Option, bool) {
	section, name, ok := SplitPath(path)
	if !ok {
		return Option{}, false
	}
	for _, t := range s {
		for _, sec := range t.Sections {
			if sec.Name != section {
				continue
			}
			for _, o := range sec.Options {
				if o.Name == name {
					return o, true
				}
			}
		}
	}
	return Option{}, false
}

// Paths lists every option path in schema order.
func (s Schema) Paths() []string {
	var out []string
	for _, t := range s {
		for _, sec := range t.Sections {
			for _, o := range sec.Options {
				out = append(out, Path(sec.Name, o.Name))
			}
		}
	}
	return out
}

// Resolve returns the configured value for path, or the option default when
// the config map has no entry.
func (s Schema) Resolve(path string, values map[string]any) any {
	if v, ok := values[path]; ok {
		return v
	}
	if o, ok := s.Lookup(path); ok {
		return o.Default
	}
	return nil
}
