package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/hyprcolor"
)

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Convert Hyprland color values",
	Long:  "Decode config color values to #rrggbb and encode picked colors back in the value's own format. Works offline.",
}

var colorDecodeCmd = &cobra.Command{
	Use:   "decode <value>",
	Short: "Show the #rrggbb a color value previews as",
	Args:  cobra.ExactArgs(1),
	RunE:  runColorDecode,
}

var colorEncodeCmd = &cobra.Command{
	Use:   "encode <original> <hex>",
	Short: "Replace the color of original with hex, keeping its format",
	Args:  cobra.ExactArgs(2),
	RunE:  runColorEncode,
}

func init() {
	colorCmd.AddCommand(colorDecodeCmd)
	colorCmd.AddCommand(colorEncodeCmd)
}

func runColorDecode(cmd *cobra.Command, args []string) error {
	value := args[0]
	hex := hyprcolor.ToHex(value)
	family := hyprcolor.Classify(value)

	if jsonOutput {
		out := map[string]any{
			"value":  value,
			"hex":    hex,
			"family": family.String(),
		}
		if family == hyprcolor.FamilyGradient {
			out["stops"] = hyprcolor.Stops(value)
		}
		return printJSON(cmd.OutOrStdout(), out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", hex, family)
	return nil
}

func runColorEncode(cmd *cobra.Command, args []string) error {
	encoded, err := hyprcolor.FormatUpdate(args[0], args[1])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"original": args[0],
			"value":    encoded,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), encoded)
	return nil
}
