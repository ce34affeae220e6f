package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/notify"
	"github.com/revati108/arch-board/internal/preset"
	"github.com/revati108/arch-board/internal/session"
	"github.com/revati108/arch-board/internal/settings"
)

var errNotInteractive = errors.New("confirmation needed but stdin is not a terminal; pass --yes")

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func newClient() *backend.Client {
	return backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout.Std())
}

// loadPrefs reads the stored preferences. A broken settings file is
// logged and treated as defaults.
func loadPrefs(ctx context.Context) settings.Settings {
	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		slog.Warn("settings unavailable, using defaults", "path", cfg.Settings.Path, "error", err)
		return settings.Defaults()
	}
	defer store.Close()
	prefs, err := store.Load(ctx)
	if err != nil {
		slog.Warn("settings unreadable, using defaults", "error", err)
		return settings.Defaults()
	}
	return prefs
}

// sessionOptions builds container options for one command. Notices go to
// stderr, honoring the toasts preference.
func sessionOptions(cmd *cobra.Command, assumeYes bool) (session.Options, error) {
	prefs := loadPrefs(cmd.Context())
	opts, err := session.NewOptions(cfg, prefs)
	if err != nil {
		return session.Options{}, err
	}
	// One-shot commands save explicitly.
	opts.Autosave = false
	opts.Notifier = notify.Logged(notify.NewWriter(cmd.ErrOrStderr(), prefs.ToastsEnabled))
	opts.Confirm = promptConfirmer(cmd, assumeYes)
	return opts, nil
}

// promptConfirmer asks on stderr and reads y/N from the command input.
// Real stdin must be a terminal.
func promptConfirmer(cmd *cobra.Command, assumeYes bool) preset.Confirmer {
	return preset.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		if assumeYes {
			return true, nil
		}
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
			return false, errNotInteractive
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	})
}

// parseAssignments splits "key=value" arguments.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		out[k] = v
	}
	return out, nil
}

// dash renders empty cells.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
