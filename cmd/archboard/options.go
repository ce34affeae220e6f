package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/hyprcolor"
	"github.com/revati108/arch-board/internal/schema"
	"github.com/revati108/arch-board/internal/session"
)

var (
	optionsTab   string
	optionsColor bool
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Read and write Hyprland options",
	Long:  `Options are addressed as "section:option", e.g. "general:gaps_in" or "decoration:blur:size".`,
}

var optionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List options with their current values",
	Args:  cobra.NoArgs,
	RunE:  runOptionsList,
}

var optionsGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value of one option",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptionsGet,
}

var optionsSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set one option and save it",
	Args:  cobra.ExactArgs(2),
	RunE:  runOptionsSet,
}

var optionsSaveCmd = &cobra.Command{
	Use:   "save <path=value>...",
	Short: "Set several options and save them in one request",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOptionsSave,
}

func init() {
	optionsListCmd.Flags().StringVar(&optionsTab, "tab", "", "Only list options of this tab")
	optionsSetCmd.Flags().BoolVar(&optionsColor, "color", false,
		"Treat value as a picked #rrggbb and keep the option's color format")

	optionsCmd.AddCommand(optionsListCmd)
	optionsCmd.AddCommand(optionsGetCmd)
	optionsCmd.AddCommand(optionsSetCmd)
	optionsCmd.AddCommand(optionsSaveCmd)
}

// optionPath accepts paths with or without the trailing space the backend
// keys carry.
func optionPath(p string) (string, error) {
	section, name, ok := schema.SplitPath(p)
	if !ok {
		return "", fmt.Errorf("invalid option path %q: want section:option", p)
	}
	return schema.Path(section, name), nil
}

func openHyprland(cmd *cobra.Command) (*session.Hyprland, error) {
	opts, err := sessionOptions(cmd, false)
	if err != nil {
		return nil, err
	}
	return session.OpenHyprland(cmd.Context(), newClient(), opts)
}

type optionRow struct {
	Path    string            `json:"path"`
	Label   string            `json:"label"`
	Type    schema.OptionType `json:"type"`
	Value   any               `json:"value"`
	Default any               `json:"default"`
}

func runOptionsList(cmd *cobra.Command, args []string) error {
	h, err := openHyprland(cmd)
	if err != nil {
		return err
	}
	defer h.Close()

	tabs := h.Schema()
	if optionsTab != "" {
		tab, ok := tabs.Tab(optionsTab)
		if !ok {
			return fmt.Errorf("unknown tab %q", optionsTab)
		}
		tabs = schema.Schema{tab}
	}

	var rows []optionRow
	for _, tab := range tabs {
		for _, sec := range tab.Sections {
			for _, o := range sec.Options {
				path := schema.Path(sec.Name, o.Name)
				rows = append(rows, optionRow{
					Path:    path,
					Label:   schema.FormatLabel(o.Name),
					Type:    o.Type,
					Value:   h.Value(path),
					Default: o.Default,
				})
			}
		}
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"options": rows,
			"path":    h.ConfigPath(),
			"total":   len(rows),
		})
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "PATH\tLABEL\tTYPE\tVALUE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Path, r.Label, r.Type, displayValue(r.Type, r.Value))
	}
	return w.Flush()
}

func displayValue(t schema.OptionType, v any) string {
	if v == nil {
		return "-"
	}
	s := fmt.Sprint(v)
	if t == schema.TypeColor || t == schema.TypeGradient {
		return s + " (" + hyprcolor.ToHex(s) + ")"
	}
	return s
}

func runOptionsGet(cmd *cobra.Command, args []string) error {
	path, err := optionPath(args[0])
	if err != nil {
		return err
	}
	h, err := openHyprland(cmd)
	if err != nil {
		return err
	}
	defer h.Close()

	v := h.Value(path)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"path": path, "value": v})
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runOptionsSet(cmd *cobra.Command, args []string) error {
	path, err := optionPath(args[0])
	if err != nil {
		return err
	}
	h, err := openHyprland(cmd)
	if err != nil {
		return err
	}
	defer h.Close()

	if optionsColor {
		if err := h.SetColor(path, args[1]); err != nil {
			return err
		}
	} else if err := h.Set(path, args[1]); err != nil {
		return err
	}
	return saveOptions(cmd, h)
}

func runOptionsSave(cmd *cobra.Command, args []string) error {
	updates, err := parseAssignments(args)
	if err != nil {
		return err
	}
	h, err := openHyprland(cmd)
	if err != nil {
		return err
	}
	defer h.Close()

	for _, k := range slices.Sorted(maps.Keys(updates)) {
		path, err := optionPath(k)
		if err != nil {
			return err
		}
		if err := h.Set(path, updates[k]); err != nil {
			return err
		}
	}
	return saveOptions(cmd, h)
}

func saveOptions(cmd *cobra.Command, h *session.Hyprland) error {
	rep, err := h.Save(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), rep)
	}
	for _, p := range rep.Saved {
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s = %v\n", p, h.Value(p))
	}
	for _, p := range rep.Failed {
		fmt.Fprintf(cmd.OutOrStdout(), "rejected %s\n", p)
	}
	if len(rep.Failed) > 0 {
		return fmt.Errorf("%d option(s) rejected by the backend", len(rep.Failed))
	}
	return nil
}
