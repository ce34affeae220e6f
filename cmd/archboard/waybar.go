package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/session"
	"github.com/revati108/arch-board/internal/waybar"
)

var waybarCmd = &cobra.Command{
	Use:   "waybar",
	Short: "Inspect and edit waybar modules",
}

var waybarModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List modules and where they are placed",
	Args:  cobra.NoArgs,
	RunE:  runWaybarModules,
}

var waybarSetCmd = &cobra.Command{
	Use:   "set <module> <json>",
	Short: "Replace the config object of a module",
	Long: `Replace the config object of a module.

  archboard waybar set clock '{"format": "{:%H:%M}"}'`,
	Args: cobra.ExactArgs(2),
	RunE: runWaybarSet,
}

func init() {
	waybarCmd.AddCommand(waybarModulesCmd)
	waybarCmd.AddCommand(waybarSetCmd)
}

func openWaybar(cmd *cobra.Command) (*session.Waybar, error) {
	opts, err := sessionOptions(cmd, false)
	if err != nil {
		return nil, err
	}
	return session.OpenWaybar(cmd.Context(), newClient(), opts)
}

func runWaybarModules(cmd *cobra.Command, args []string) error {
	w, err := openWaybar(cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	modules := w.Config().Modules()
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"modules": modules,
			"bars":    w.Config().Bars(),
			"total":   len(modules),
		})
	}

	tw := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(tw, "MODULE\tBAR\tPOSITION\tCONFIGURED")
	for _, m := range modules {
		pos := string(m.Position)
		if m.Position == waybar.Unplaced {
			pos = "unplaced"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%t\n", m.Name, m.Bar, pos, m.Defined)
	}
	return tw.Flush()
}

func runWaybarSet(cmd *cobra.Command, args []string) error {
	w, err := openWaybar(cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.SetModule(cmd.Context(), args[0], json.RawMessage(args[1])); err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"module": args[0], "updated": true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Module %s updated\n", args[0])
	return nil
}
