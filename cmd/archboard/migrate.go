package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move a Hyprland config to the 0.53 rule syntax",
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the config uses legacy syntax",
	Args:  cobra.NoArgs,
	RunE:  runMigrateStatus,
}

var migrateRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Rewrite legacy rules and options, keeping a backup",
	Args:  cobra.NoArgs,
	RunE:  runMigrateRun,
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateRunCmd)
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	st, err := newClient().MigrationStatus(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), st)
	}

	out := cmd.OutOrStdout()
	if st.Version != nil {
		supported := "no"
		if st.Version.SupportsNewWindowRules {
			supported = "yes"
		}
		fmt.Fprintf(out, "Hyprland %s (new rule syntax: %s)\n", st.Version.Version, supported)
	}
	if !st.NeedsMigration {
		fmt.Fprintln(out, "Config is already using new syntax")
		return nil
	}
	fmt.Fprintln(out, st.Summary)
	return nil
}

func runMigrateRun(cmd *cobra.Command, args []string) error {
	res, err := newClient().Migrate(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}
