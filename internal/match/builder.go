package match

import (
	"slices"

	"github.com/revati108/arch-board/internal/backend"
)

// Builder holds the picker state for one rule form. Every change
// regenerates the whole match string.
type Builder struct {
	windows  []backend.Window
	selected int
	attrs    []Attribute
	mode     Mode
	match    string
}

// NewBuilder starts with no window selected, class checked and exact mode.
func NewBuilder(windows []backend.Window) *Builder {
	return &Builder{
		windows:  windows,
		selected: -1,
		attrs:    []Attribute{AttrClass},
		mode:     ModeExact,
	}
}

// Match returns the current expression.
func (b *Builder) Match() string { return b.match }

// Selected returns the selected window index, or -1.
func (b *Builder) Selected() int { return b.selected }

// Select picks the window at index. A negative index clears the selection
// and the match.
func (b *Builder) Select(index int) string {
	if index < 0 || index >= len(b.windows) {
		b.selected = -1
		b.match = ""
		return b.match
	}
	b.selected = index
	return b.regenerate()
}

// Toggle checks or unchecks attr.
func (b *Builder) Toggle(attr Attribute, on bool) string {
	has := slices.Contains(b.attrs, attr)
	switch {
	case on && !has:
		b.attrs = append(b.attrs, attr)
	case !on && has:
		b.attrs = slices.DeleteFunc(b.attrs, func(a Attribute) bool { return a == attr })
	}
	return b.regenerate()
}

// SetAttributes replaces the checked set.
func (b *Builder) SetAttributes(attrs []Attribute) string {
	b.attrs = slices.Clone(attrs)
	return b.regenerate()
}

func (b *Builder) SetMode(mode Mode) string {
	b.mode = mode
	return b.regenerate()
}

// regenerate leaves the match untouched while no window is selected.
func (b *Builder) regenerate() string {
	if b.selected < 0 {
		return b.match
	}
	b.match = Generate(b.windows[b.selected], b.attrs, b.mode)
	return b.match
}
