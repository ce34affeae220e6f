package scene

import (
	"regexp"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// PreviewEnv supplies the values substituted into label text.
type PreviewEnv struct {
	User string
	Now  time.Time
}

var (
	reCmd      = regexp.MustCompile(`^cmd\[.*?\](.*)`)
	reEcho     = regexp.MustCompile(`echo\s+["'](.*)["']`)
	reDate     = regexp.MustCompile(`\$\(date\s*\+?"([^"]+)"\)`)
	reSpanOpen = regexp.MustCompile(`<span[^>]*>`)
	unescape   = strings.NewReplacer(`\"`, `"`, `\'`, `'`)
)

// PreviewText approximates what hyprlock would show for a label's text.
// Commands are not run; an echo is shown by its argument.
func PreviewText(text string, env PreviewEnv) string {
	if m := reCmd.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
		if e := reEcho.FindStringSubmatch(text); e != nil {
			text = unescape.Replace(e[1])
		}
	}

	text = strings.ReplaceAll(text, "$USER", env.User)
	text = reDate.ReplaceAllStringFunc(text, func(s string) string {
		layout := reDate.FindStringSubmatch(s)[1]
		layout = strings.ReplaceAll(layout, "%-I", formatHour12(env.Now))
		return strftime.Format(layout, env.Now)
	})
	text = strings.ReplaceAll(text, "$TIME12", env.Now.Format("3:04 PM"))
	text = strings.ReplaceAll(text, "$TIME", env.Now.Format("15:04"))

	text = reSpanOpen.ReplaceAllString(text, "")
	return strings.ReplaceAll(text, "</span>", "")
}

func formatHour12(t time.Time) string {
	return t.Format("3")
}
