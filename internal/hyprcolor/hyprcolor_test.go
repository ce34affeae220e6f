package hyprcolor

import (
	"errors"
	"testing"

	"github.com/revati108/arch-board/internal/validation"
)

func TestToHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hex", "#33CCFF", "#33ccff"},
		{"hex short", "#3cf", "#33ccff"},
		{"hex alpha dropped", "#33ccffee", "#33ccff"},
		{"0x argb", "0xffaabbcc", "#aabbcc"},
		{"0x rgb", "0xaabbcc", "#aabbcc"},
		{"css rgba", "rgba(17, 17, 17, 1.0)", "#111111"},
		{"css rgb", "rgb(0,0,0)", "#000000"},
		{"css clamps", "rgb(300, 0, 256)", "#ff00ff"},
		{"hypr rgba", "rgba(33ccffee)", "#33ccff"},
		{"hypr rgb", "rgb(595959)", "#595959"},
		{"bare", "33ccff", "#33ccff"},
		{"bare alpha", "33ccffee", "#33ccff"},
		{"foreground", "$foreground", "#ffffff"},
		{"background", "$background", "#000000"},
		{"other variable", "$accent", "#aaaaaa"},
		{"gradient first stop", "rgba(33ccffee) rgba(00ff99ee) 45deg", "#33ccff"},
		{"empty", "", "#ffffff"},
		{"garbage", "not a color", "#ffffff"},
		{"hypr seven digits", "rgba(33ccffe)", "#ffffff"},
		{"surrounding space", "  0xff112233 ", "#112233"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHex(tt.in); got != tt.want {
				t.Errorf("ToHex(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatUpdate(t *testing.T) {
	tests := []struct {
		name     string
		original string
		hex      string
		want     string
	}{
		{"0x argb keeps alpha", "0xffaabbcc", "#112233", "0xff112233"},
		{"0x argb translucent", "0x80aabbcc", "#112233", "0x80112233"},
		{"0x rgb", "0xaabbcc", "#112233", "0x112233"},
		{"css rgba keeps alpha", "rgba(17, 17, 17, 0.5)", "#ff8000", "rgba(255, 128, 0, 0.5)"},
		{"css rgba compact", "rgba(1,2,3,1.0)", "#0a0b0c", "rgba(10,11,12,1.0)"},
		{"css rgb", "rgb(0,0,0)", "#ffffff", "rgb(255,255,255)"},
		{"hypr rgba keeps alpha", "rgba(33ccffee)", "#112233", "rgba(112233ee)"},
		{"hypr rgb", "rgb(595959)", "#112233", "rgb(112233)"},
		{"hex", "#000000", "#ABCDEF", "#abcdef"},
		{"hex alpha", "#000000cc", "#abcdef", "#abcdefcc"},
		{"hex short expands", "#000", "#abcdef", "#abcdef"},
		{"bare alpha", "000000cc", "#abcdef", "abcdefcc"},
		{"variable replaced", "$foreground", "#112233", "0xff112233"},
		{"empty synthesized", "", "#112233", "0xff112233"},
		{"picker short hex", "0xff000000", "#abc", "0xffaabbcc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatUpdate(tt.original, tt.hex)
			if err != nil {
				t.Fatalf("FormatUpdate(%q, %q) error = %v", tt.original, tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("FormatUpdate(%q, %q) = %q, want %q", tt.original, tt.hex, got, tt.want)
			}
		})
	}
}

func TestFormatUpdate_RoundTripPerFamily(t *testing.T) {
	originals := []string{
		"#33ccff",
		"0xee33ccff",
		"0x33ccff",
		"rgba(51, 204, 255, 0.8)",
		"rgb(51, 204, 255)",
		"rgba(33ccffee)",
	}
	picks := []string{"#000000", "#ffffff", "#123abc", "#7f7f7f"}

	for _, orig := range originals {
		for _, pick := range picks {
			t.Run(orig+"->"+pick, func(t *testing.T) {
				encoded, err := FormatUpdate(orig, ToHex(pick))
				if err != nil {
					t.Fatalf("FormatUpdate error = %v", err)
				}
				if got, want := Classify(encoded), Classify(orig); got != want {
					t.Errorf("family of %q = %s, want %s", encoded, got, want)
				}
				if got := ToHex(encoded); got != pick {
					t.Errorf("ToHex(%q) = %q, want %q", encoded, got, pick)
				}
			})
		}
	}
}

func TestFormatUpdate_GradientRejected(t *testing.T) {
	_, err := FormatUpdate("rgba(33ccffee) rgba(00ff99ee) 45deg", "#112233")
	if !errors.Is(err, ErrGradientWriteBack) {
		t.Fatalf("error = %v, want ErrGradientWriteBack", err)
	}
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %T, want wrapped *validation.ValidationError", err)
	}
	if ve.Field != "color" {
		t.Errorf("Field = %q, want color", ve.Field)
	}
}

func TestFormatUpdate_InvalidPick(t *testing.T) {
	_, err := FormatUpdate("0xffffffff", "#zzzzzz")
	if !errors.Is(err, ErrInvalidHex) {
		t.Fatalf("error = %v, want ErrInvalidHex", err)
	}
	if !errors.Is(err, validation.ErrInvalid) {
		t.Error("invalid pick should be a validation error")
	}
}

func TestToHyprColor(t *testing.T) {
	got, err := ToHyprColor("#A1B2C3")
	if err != nil {
		t.Fatalf("ToHyprColor error = %v", err)
	}
	if got != "0xffa1b2c3" {
		t.Errorf("ToHyprColor = %q, want 0xffa1b2c3", got)
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]Family{
		"#abc":             FamilyHexShort,
		"#aabbcc":          FamilyHex,
		"#aabbccdd":        FamilyHexAlpha,
		"0xffaabbcc":       Family0xARGB,
		"0xaabbcc":         Family0xRGB,
		"rgba(1, 2, 3, 1)": FamilyCSSRGBA,
		"rgb(1, 2, 3)":     FamilyCSSRGB,
		"rgba(aabbccdd)":   FamilyHyprRGBA,
		"rgb(aabbcc)":      FamilyHyprRGB,
		"rgba(33ccffe)":    FamilyUnknown,
		"aabbcc":           FamilyBare,
		"aabbccdd":         FamilyBareAlpha,
		"$foreground":      FamilyVariable,
		"":                 FamilyUnknown,
	}
	tests["rgb(aabbcc) rgb(001122) 0deg"] = FamilyGradient
	for in, want := range tests {
		if got := Classify(in); got != want {
			t.Errorf("Classify(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestStops(t *testing.T) {
	stops := Stops("rgba(33ccffee)  rgba(00ff99ee) 45deg")
	if len(stops) != 2 || stops[0] != "rgba(33ccffee)" || stops[1] != "rgba(00ff99ee)" {
		t.Errorf("Stops = %q", stops)
	}
	if got := Stops("rgba(17, 17, 17, 1.0)"); len(got) != 1 {
		t.Errorf("Stops(css) = %q, want one stop", got)
	}
}
