package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/match"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List open windows",
	Args:  cobra.NoArgs,
	RunE:  runWindows,
}

func runWindows(cmd *cobra.Command, args []string) error {
	windows, err := newClient().Windows(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"windows": windows,
			"total":   len(windows),
		})
	}

	if len(windows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No open windows.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "#\tWINDOW\tWORKSPACE\tADDRESS")
	for i, win := range windows {
		fmt.Fprintf(w, "%d\t%s\t%v\t%s\n", i, match.Label(win), win.Workspace, win.Address)
	}
	return w.Flush()
}
