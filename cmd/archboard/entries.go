package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/entry"
)

var entriesRef string

var entriesCmd = &cobra.Command{
	Use:   "entries <kind> <list|add|update|delete> [field=value...]",
	Short: "Manage binds, rules, exec, env and gesture lines",
	Long: `Manage raw-line config entries. Kinds: binds, windowrules, layerrules, exec, env, gestures.

Entries are addressed by their raw line as printed by "list". Update only
changes the fields given; the others keep their current value.

  archboard entries binds add mods="SUPER SHIFT" key=F dispatcher=togglefloating
  archboard entries binds delete --ref "bind = SUPER SHIFT,F,togglefloating"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEntries,
}

func init() {
	entriesCmd.Flags().StringVar(&entriesRef, "ref", "",
		"Raw line of the entry to update or delete")
}

func runEntries(cmd *cobra.Command, args []string) error {
	kind, action := args[0], args[1]
	fields, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}

	coll, err := entry.Open(kind, newClient())
	if err != nil {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(entry.Names(), ", "))
	}

	ctx := cmd.Context()
	var records []entry.Record
	switch action {
	case "list":
		records, err = coll.List(ctx)
	case "add":
		records, err = coll.Add(ctx, fields)
	case "update", "delete":
		if entriesRef == "" {
			return fmt.Errorf("%s needs --ref", action)
		}
		ref := entry.Ref(entriesRef)
		if action == "update" {
			records, err = coll.Update(ctx, ref, fields)
		} else {
			records, err = coll.Delete(ctx, ref)
		}
	default:
		return fmt.Errorf("unknown action %q: want list, add, update or delete", action)
	}
	if err != nil {
		return err
	}

	return printRecords(cmd, coll, records)
}

func printRecords(cmd *cobra.Command, coll entry.Collection, records []entry.Record) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			coll.Name(): records,
			"total":     len(records),
		})
	}

	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s found.\n", coll.Name())
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	header := make([]string, 0, len(coll.Fields())+1)
	for _, f := range coll.Fields() {
		header = append(header, strings.ToUpper(f))
	}
	fmt.Fprintln(w, strings.Join(append(header, "RAW"), "\t"))
	for _, r := range records {
		cells := make([]string, 0, len(r.Values)+1)
		for _, v := range r.Values {
			cells = append(cells, dash(v))
		}
		fmt.Fprintln(w, strings.Join(append(cells, r.Ref.Raw()), "\t"))
	}
	return w.Flush()
}
