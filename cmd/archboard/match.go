package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/backend"
	"github.com/revati108/arch-board/internal/match"
)

var (
	matchBy   []string
	matchMode string
)

var matchCmd = &cobra.Command{
	Use:   "match <window>",
	Short: "Build a window-rule match expression from an open window",
	Long: `Build a match expression from an open window. <window> is an index from
"archboard windows" or a class name.

  archboard match firefox --by class,title --mode starts`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringSliceVar(&matchBy, "by", []string{string(match.AttrClass)},
		"Attributes to match: class, title, initialClass, initialTitle")
	matchCmd.Flags().StringVar(&matchMode, "mode", string(match.ModeExact),
		"exact, starts, contains or literal")
}

func runMatch(cmd *cobra.Command, args []string) error {
	attrs := make([]match.Attribute, 0, len(matchBy))
	for _, s := range matchBy {
		a, err := match.ParseAttribute(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		attrs = append(attrs, a)
	}

	windows, err := newClient().Windows(cmd.Context())
	if err != nil {
		return err
	}
	index, err := findWindow(windows, args[0])
	if err != nil {
		return err
	}

	b := match.NewBuilder(windows)
	b.SetAttributes(attrs)
	b.SetMode(match.Mode(matchMode))
	expr := b.Select(index)

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"window": match.Label(windows[index]),
			"match":  expr,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), expr)
	return nil
}

func findWindow(windows []backend.Window, sel string) (int, error) {
	if i, err := strconv.Atoi(sel); err == nil {
		if i < 0 || i >= len(windows) {
			return -1, fmt.Errorf("window index %d out of range (%d open)", i, len(windows))
		}
		return i, nil
	}
	for i, w := range windows {
		if strings.EqualFold(w.Class, sel) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no open window with class %q", sel)
}
