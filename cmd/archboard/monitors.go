package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List monitor lines (read only)",
	Args:  cobra.NoArgs,
	RunE:  runMonitors,
}

func runMonitors(cmd *cobra.Command, args []string) error {
	monitors, err := newClient().Monitors(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"monitors": monitors,
			"total":    len(monitors),
		})
	}

	if len(monitors) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No monitors configured.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "NAME\tRESOLUTION\tPOSITION\tSCALE\tEXTRA")
	for _, m := range monitors {
		res := m.Resolution
		if m.Disabled {
			res = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			dash(m.Name),
			dash(res),
			dash(m.Position),
			dash(m.Scale),
			dash(strings.Join(m.Extras, ",")),
		)
	}
	return w.Flush()
}
