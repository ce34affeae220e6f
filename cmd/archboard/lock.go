package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/revati108/arch-board/internal/scene"
	"github.com/revati108/arch-board/internal/session"
)

var (
	lockColor bool
	lockZoom  float64
	lockProps bool
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Edit the hyprlock lock screen",
	Long: `Edit hyprlock widgets. Widget ids ("w-0", "w-1", ...) follow the order
printed by "lock widgets" and are reassigned every time the config is read.`,
}

var lockWidgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "List widgets in list order",
	Args:  cobra.NoArgs,
	RunE:  runLockWidgets,
}

var lockAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Add a widget with defaults (background, input-field, label, image, shape)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLockAdd,
}

var lockSetCmd = &cobra.Command{
	Use:   "set <id> <field> <value>",
	Short: "Set one widget field",
	Args:  cobra.ExactArgs(3),
	RunE:  runLockSet,
}

var lockMoveCmd = &cobra.Command{
	Use:   "move <id> <dx> <dy>",
	Short: "Drag a widget by screen pixels at the given zoom",
	Args:  cobra.ExactArgs(3),
	RunE:  runLockMove,
}

var lockRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a widget",
	Args:  cobra.ExactArgs(1),
	RunE:  runLockRemove,
}

var lockPreviewCmd = &cobra.Command{
	Use:   "preview [text]",
	Short: "Show label text as hyprlock would render it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLockPreview,
}

func init() {
	lockWidgetsCmd.Flags().BoolVar(&lockProps, "properties", false, "Print every field, defaults included")
	lockSetCmd.Flags().BoolVar(&lockColor, "color", false,
		"Treat value as a picked #rrggbb and keep the field's color format")
	lockMoveCmd.Flags().Float64Var(&lockZoom, "zoom", scene.DefaultZoom, "Canvas zoom the drag was measured at")

	lockCmd.AddCommand(lockWidgetsCmd)
	lockCmd.AddCommand(lockAddCmd)
	lockCmd.AddCommand(lockSetCmd)
	lockCmd.AddCommand(lockMoveCmd)
	lockCmd.AddCommand(lockRemoveCmd)
	lockCmd.AddCommand(lockPreviewCmd)
}

func openLockscreen(cmd *cobra.Command) (*session.Lockscreen, error) {
	opts, err := sessionOptions(cmd, false)
	if err != nil {
		return nil, err
	}
	return session.OpenLockscreen(cmd.Context(), newClient(), opts)
}

func previewEnv() scene.PreviewEnv {
	return scene.PreviewEnv{User: os.Getenv("USER"), Now: time.Now()}
}

// widgetLayout is where the editor canvas draws a widget.
type widgetLayout struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Anchor    scene.Point     `json:"anchor"`
	Translate scene.Point     `json:"translate"`
	Image     *scene.ImageBox `json:"image,omitempty"`
}

func layoutOf(w scene.Widget) widgetLayout {
	p := scene.Place(w.Data, scene.Canvas)
	out := widgetLayout{ID: w.ID, Type: string(w.Type), Anchor: p.Anchor, Translate: p.Translate}
	if w.Type == scene.TypeImage {
		natural, err := scene.NaturalSize(scene.FormatValue(w.Data["path"]))
		if err != nil {
			slog.Debug("image size unknown", "widget", w.ID, "error", err)
		}
		box := scene.ImageLayout(w.Data, natural)
		out.Image = &box
	}
	return out
}

func runLockWidgets(cmd *cobra.Command, args []string) error {
	l, err := openLockscreen(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	widgets := l.Scene().Widgets()
	ordered := scene.RenderOrder(widgets)
	if jsonOutput {
		layouts := make([]widgetLayout, 0, len(ordered))
		for _, w := range ordered {
			layouts = append(layouts, layoutOf(w))
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"widgets":      widgets,
			"render_order": layouts,
			"total":        len(widgets),
		})
	}

	out := cmd.OutOrStdout()
	if lockProps {
		for _, w := range widgets {
			fmt.Fprintf(out, "%s (%s)\n", w.ID, w.Type)
			tw := newTabWriter(out)
			for _, p := range scene.Properties(w) {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Group, p.Spec.Key, scene.FormatValue(p.Value))
			}
			tw.Flush()
		}
		return nil
	}

	// Rows follow draw order, bottom layer first.
	w := newTabWriter(out)
	fmt.Fprintln(w, "ID\tTYPE\tPOSITION\tANCHOR\tZ\tTEXT")
	for _, wd := range ordered {
		lay := layoutOf(wd)
		text := "-"
		switch {
		case wd.Type == scene.TypeLabel:
			text = scene.PreviewText(scene.FormatValue(wd.Data["text"]), previewEnv())
		case lay.Image != nil:
			text = fmt.Sprintf("%gx%g", lay.Image.W, lay.Image.H)
			if lay.Image.Provisional {
				text += " (provisional)"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g,%g\t%d\t%s\n",
			wd.ID, wd.Type, dash(scene.FormatValue(wd.Data["position"])),
			lay.Anchor.X, lay.Anchor.Y, scene.DisplayZ(wd), text)
	}
	return w.Flush()
}

func runLockAdd(cmd *cobra.Command, args []string) error {
	t, err := scene.ParseType(args[0])
	if err != nil {
		return err
	}
	l, err := openLockscreen(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	if _, err := l.Scene().Add(t); err != nil {
		return err
	}
	if err := l.Save(cmd.Context()); err != nil {
		return err
	}
	// Ids are positional once reloaded; report the one the next listing uses.
	if err := l.Refresh(cmd.Context()); err != nil {
		return err
	}
	id := lastOfType(l.Scene().Widgets(), t)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "type": t})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", t, id)
	return nil
}

func lastOfType(widgets []scene.Widget, t scene.WidgetType) string {
	id := ""
	for _, w := range widgets {
		if w.Type == t {
			id = w.ID
		}
	}
	return id
}

func runLockSet(cmd *cobra.Command, args []string) error {
	id, key, value := args[0], args[1], args[2]
	l, err := openLockscreen(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	if lockColor {
		err = l.Scene().SetColor(id, key, value)
	} else {
		err = l.Scene().Update(id, key, value)
	}
	if err != nil {
		return err
	}
	if err := l.Save(cmd.Context()); err != nil {
		return err
	}

	w, err := l.Scene().Get(id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", id, key, scene.FormatValue(w.Data[key]))
	return nil
}

func runLockMove(cmd *cobra.Command, args []string) error {
	dx, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("dx: %w", err)
	}
	dy, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("dy: %w", err)
	}
	l, err := openLockscreen(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	zoom := l.Scene().SetZoom(lockZoom)
	x, y, err := l.Scene().Move(args[0], dx, dy)
	if err != nil {
		return err
	}
	if err := l.Save(cmd.Context()); err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"id": args[0], "x": x, "y": y, "zoom": zoom})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s position = %s\n", args[0], scene.FormatVec2(x, y))
	return nil
}

func runLockRemove(cmd *cobra.Command, args []string) error {
	l, err := openLockscreen(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.Scene().Remove(args[0]); err != nil {
		return err
	}
	if err := l.Save(cmd.Context()); err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"id": args[0], "removed": true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runLockPreview(cmd *cobra.Command, args []string) error {
	env := previewEnv()
	if len(args) == 1 {
		fmt.Fprintln(cmd.OutOrStdout(), scene.PreviewText(args[0], env))
		return nil
	}

	l, err := openLockscreen(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	previews := map[string]string{}
	for _, w := range l.Scene().Widgets() {
		if w.Type == scene.TypeLabel {
			previews[w.ID] = scene.PreviewText(scene.FormatValue(w.Data["text"]), env)
		}
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), previews)
	}
	for _, w := range l.Scene().Widgets() {
		if p, ok := previews[w.ID]; ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", w.ID, p)
		}
	}
	return nil
}
