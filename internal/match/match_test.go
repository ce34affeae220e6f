package match

import (
	"strings"
	"testing"

	"github.com/revati108/arch-board/internal/backend"
)

func TestGenerate_Modes(t *testing.T) {
	w := backend.Window{Class: "Fire.fox"}
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeExact, `match:class ^(Fire\.fox)$`},
		{ModeStarts, `match:class ^Fire\.fox.*`},
		{ModeContains, `match:class .*Fire\.fox.*`},
		{ModeLiteral, `match:class Fire\.fox`},
		{Mode("bogus"), `match:class Fire\.fox`},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := Generate(w, []Attribute{AttrClass}, tt.mode); got != tt.want {
				t.Errorf("Generate(%s) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestGenerate_EscapesEveryMetacharacter(t *testing.T) {
	w := backend.Window{Title: `a.b*c+d?e^f$g{h}i(j)k|l[m]n\o`}
	got := Generate(w, []Attribute{AttrTitle}, ModeLiteral)
	want := `match:title a\.b\*c\+d\?e\^f\$g\{h\}i\(j\)k\|l\[m\]n\\o`
	if got != want {
		t.Errorf("Generate = %q\nwant       %q", got, want)
	}
}

func TestGenerate_KeysOrderAndJoin(t *testing.T) {
	w := backend.Window{Class: "kitty", Title: "~", InitialClass: "kitty", InitialTitle: "kitty"}
	got := Generate(w, []Attribute{AttrInitialTitle, AttrClass, AttrInitialClass, AttrClass}, ModeExact)
	want := "match:class ^(kitty)$, match:initialclass ^(kitty)$, match:initialtitle ^(kitty)$"
	if got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
	if got := Generate(w, nil, ModeExact); got != "" {
		t.Errorf("Generate(no attrs) = %q, want empty", got)
	}
}

func TestBuilder_RegeneratesIdempotently(t *testing.T) {
	windows := []backend.Window{
		{Class: "firefox", Title: "Mozilla Firefox"},
		{Class: "org.gnome.Nautilus", Title: "Home"},
	}
	b := NewBuilder(windows)
	if b.Toggle(AttrTitle, true) != "" {
		t.Error("match changed with no window selected")
	}

	first := b.Select(1)
	want := `match:class ^(org\.gnome\.Nautilus)$, match:title ^(Home)$`
	if first != want {
		t.Fatalf("Select(1) = %q, want %q", first, want)
	}
	if again := b.Select(1); again != first {
		t.Errorf("Select(1) twice = %q, want %q", again, first)
	}

	b.SetMode(ModeContains)
	if got := b.Toggle(AttrTitle, false); got != `match:class .*org\.gnome\.Nautilus.*` {
		t.Errorf("after toggle = %q", got)
	}
	if got := b.SetAttributes(nil); got != "" {
		t.Errorf("no attributes = %q, want empty", got)
	}
	if got := b.Select(-1); got != "" || b.Selected() != -1 {
		t.Errorf("Select(-1) = %q, selected %d", got, b.Selected())
	}
}

func TestParseAttribute(t *testing.T) {
	for _, in := range []string{"initialclass", "initialClass", "INITIALCLASS"} {
		a, err := ParseAttribute(in)
		if err != nil || a != AttrInitialClass {
			t.Errorf("ParseAttribute(%q) = %q, %v", in, a, err)
		}
	}
	if _, err := ParseAttribute("pid"); err == nil {
		t.Error("ParseAttribute(pid) = nil error")
	}
}

func TestLabel(t *testing.T) {
	if got := Label(backend.Window{Class: "foot"}); got != "foot - No Title" {
		t.Errorf("Label(no title) = %q", got)
	}
	long := strings.Repeat("x", 40)
	if got := Label(backend.Window{Class: "foot", Title: long}); got != "foot - "+strings.Repeat("x", 30) {
		t.Errorf("Label(long) = %q", got)
	}
	// Wide runes count two cells each.
	if got := Label(backend.Window{Class: "c", Title: strings.Repeat("漢", 20)}); got != "c - "+strings.Repeat("漢", 15) {
		t.Errorf("Label(wide) = %q", got)
	}
}
