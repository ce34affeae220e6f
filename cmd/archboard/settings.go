package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write local preferences",
	Long:  "Local preferences: toasts_enabled, autosave_enabled, active_tab. Stored in a SQLite file, not on the backend.",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print every preference",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), s)
	}
	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintf(w, "toasts_enabled\t%t\n", s.ToastsEnabled)
	fmt.Fprintf(w, "autosave_enabled\t%t\n", s.AutosaveEnabled)
	fmt.Fprintf(w, "active_tab\t%s\n", s.ActiveTab)
	return w.Flush()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Update(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"name": args[0], "value": args[1]})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}
