package main

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/preset"
)

var (
	presetsTool        string
	presetsDescription string
	presetsYes         bool
)

var presetTools = []string{backend.ToolHyprland, backend.ToolHyprlock, backend.ToolWaybar}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage named configuration snapshots",
	Long:  "Presets snapshot a tool's whole config. Activating one overwrites the live config; the backend keeps a backup of what it replaced.",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets of a tool",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Snapshot the live config as a new active preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsCreate,
}

var presetsUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Rename a preset or change its description",
	Args:  cobra.ExactArgs(2),
	RunE:  runPresetsUpdate,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsDelete,
}

var presetsActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make a preset the live config",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsActivate,
}

var presetsDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Clear the active preset, leaving the live config as is",
	Args:  cobra.NoArgs,
	RunE:  runPresetsDeactivate,
}

var presetsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy the live config into the active preset",
	Args:  cobra.NoArgs,
	RunE:  runPresetsSync,
}

var presetsSwitchCmd = &cobra.Command{
	Use:   "switch [id]",
	Short: "Activate a preset, or deactivate with no id",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPresetsSwitch,
}

func init() {
	presetsCmd.PersistentFlags().StringVar(&presetsTool, "tool", backend.ToolHyprland,
		"Tool the presets belong to: hyprland, hyprlock or waybar")
	presetsCreateCmd.Flags().StringVar(&presetsDescription, "description", "", "Preset description")
	presetsUpdateCmd.Flags().StringVar(&presetsDescription, "description", "", "Preset description")
	presetsDeleteCmd.Flags().BoolVar(&presetsYes, "yes", false, "Skip confirmation prompt")

	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsCreateCmd)
	presetsCmd.AddCommand(presetsUpdateCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)
	presetsCmd.AddCommand(presetsActivateCmd)
	presetsCmd.AddCommand(presetsDeactivateCmd)
	presetsCmd.AddCommand(presetsSyncCmd)
	presetsCmd.AddCommand(presetsSwitchCmd)
}

// loadPresets returns a manager for --tool with its list loaded.
func loadPresets(cmd *cobra.Command) (*preset.Manager, error) {
	if !slices.Contains(presetTools, presetsTool) {
		return nil, fmt.Errorf("unknown tool %q: want hyprland, hyprlock or waybar", presetsTool)
	}
	m := preset.NewManager(newClient(), presetsTool, preset.Hooks{
		Confirm: promptConfirmer(cmd, presetsYes),
	})
	if _, err := m.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return m, nil
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	presets := m.Presets()

	if jsonOutput {
		var active any
		if id := m.Active(); id != "" {
			active = id
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"tool":          presetsTool,
			"presets":       presets,
			"active_preset": active,
			"total":         len(presets),
		})
	}

	if len(presets) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s presets.\n", presetsTool)
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "\tID\tNAME\tCREATED\tDESCRIPTION")
	for _, p := range presets {
		marker := ""
		if p.ID == m.Active() {
			marker = "*"
		}
		created := p.CreatedAt
		if t, ok := p.Created(); ok {
			created = humanize.Time(t)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, p.ID, p.Name, dash(created), dash(p.Description))
	}
	return w.Flush()
}

func printPreset(cmd *cobra.Command, verb string, p *backend.Preset) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s preset %q (%s)\n", verb, presetsTool, p.Name, p.ID)
	return nil
}

func runPresetsCreate(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	p, err := m.Create(cmd.Context(), args[0], presetsDescription)
	if err != nil {
		return err
	}
	return printPreset(cmd, "Created", p)
}

func runPresetsUpdate(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	p, err := m.Update(cmd.Context(), args[0], args[1], presetsDescription)
	if err != nil {
		return err
	}
	return printPreset(cmd, "Updated", p)
}

func runPresetsDelete(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	p, ok := m.Find(args[0])
	if !ok {
		return fmt.Errorf("no %s preset with id %s", presetsTool, args[0])
	}

	prompt := fmt.Sprintf("Delete %s preset %q?", presetsTool, p.Name)
	confirmed, err := promptConfirmer(cmd, presetsYes).Confirm(cmd.Context(), prompt)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
		return nil
	}

	if err := m.Delete(cmd.Context(), p.ID); err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"id": p.ID, "deleted": true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s preset %q\n", presetsTool, p.Name)
	return nil
}

func runPresetsActivate(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	if err := m.Activate(cmd.Context(), args[0]); err != nil {
		return err
	}
	return printActive(cmd, m)
}

func runPresetsDeactivate(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	if err := m.Deactivate(cmd.Context()); err != nil {
		return err
	}
	return printActive(cmd, m)
}

func runPresetsSync(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	if err := m.SyncContentToActive(cmd.Context()); err != nil {
		return err
	}
	return printActive(cmd, m)
}

func runPresetsSwitch(cmd *cobra.Command, args []string) error {
	m, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	if err := m.Switch(cmd.Context(), id); err != nil {
		return err
	}
	return printActive(cmd, m)
}

func printActive(cmd *cobra.Command, m *preset.Manager) error {
	id := m.Active()
	if jsonOutput {
		var active any
		if id != "" {
			active = id
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"tool": presetsTool, "active_preset": active})
	}
	if id == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "No active %s preset\n", presetsTool)
		return nil
	}
	name := id
	if p, ok := m.Find(id); ok {
		name = p.Name
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Active %s preset: %s\n", presetsTool, name)
	return nil
}
