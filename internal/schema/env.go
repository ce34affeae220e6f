package schema

import "strings"

// Env var categories shown next to environment entries.
const (
	EnvGTK      = "GTK/GDK"
	EnvQT       = "QT"
	EnvXDG      = "XDG"
	EnvXCursor  = "XCURSOR"
	EnvNvidia   = "NVIDIA"
	EnvAQ       = "AQ (Aquamarine)"
	EnvHyprland = "HYPRLAND"
	EnvOther    = "Other"
)

// EnvCategory classifies an environment variable by name.
func EnvCategory(name string) string {
	n := strings.ToUpper(name)
	switch {
	case strings.HasPrefix(n, "GTK"), strings.HasPrefix(n, "GDK"):
		return EnvGTK
	case strings.HasPrefix(n, "QT"):
		return EnvQT
	case strings.HasPrefix(n, "XDG"):
		return EnvXDG
	case strings.HasPrefix(n, "XCURSOR"):
		return EnvXCursor
	case strings.Contains(n, "NVIDIA"), strings.HasPrefix(n, "__GL"),
		n == "GBM_BACKEND", n == "LIBVA_DRIVER_NAME":
		return EnvNvidia
	case strings.HasPrefix(n, "AQ_"):
		return EnvAQ
	case strings.HasPrefix(n, "HYPRLAND"):
		return EnvHyprland
	default:
		return EnvOther
	}
}
