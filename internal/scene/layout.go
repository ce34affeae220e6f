package scene

import (
	"cmp"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Canvas is the reference monitor the editor lays widgets out on.
var Canvas = Size{W: 1920, H: 1080}

// Zoom limits for the editor canvas.
const (
	DefaultZoom = 0.5
	MinZoom     = 0.1
	MaxZoom     = 1.5
)

// Size is a width and height in canvas pixels.
type Size struct {
	W, H float64
}

// Point is a canvas coordinate with the origin top left.
type Point struct {
	X, Y float64
}

// ParseVec2 reads "x, y". Missing or malformed components are zero.
func ParseVec2(v any) (x, y float64) {
	x, y, _ = parseVec2(str(v))
	return x, y
}

func parseVec2(s string) (x, y float64, ok bool) {
	parts := strings.Split(s, ",")
	ok = len(parts) == 2
	var err error
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		x, ok = 0, false
	}
	if len(parts) > 1 {
		if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
			y, ok = 0, false
		}
	}
	return x, y, ok
}

// FormatVec2 writes the "x, y" form hyprlock reads.
func FormatVec2(x, y float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + ", " + strconv.FormatFloat(y, 'f', -1, 64)
}

// Placement is where a widget is drawn. Translate is the fraction of the
// widget's own size to shift it by, so (-0.5, -0.5) centers it on Anchor.
type Placement struct {
	Anchor    Point
	Translate Point
}

// String renders the placement as CSS, which is what the editor preview uses.
func (p Placement) String() string {
	return fmt.Sprintf("left:%gpx; top:%gpx; transform:translate(%g%%, %g%%)",
		p.Anchor.X, p.Anchor.Y, p.Translate.X*100, p.Translate.Y*100)
}

// basePoint is the canvas point halign and valign measure from.
func basePoint(halign, valign string, c Size) Point {
	p := Point{X: c.W / 2, Y: c.H / 2}
	switch halign {
	case "left":
		p.X = 0
	case "right":
		p.X = c.W
	}
	switch valign {
	case "top":
		p.Y = 0
	case "bottom":
		p.Y = c.H
	}
	return p
}

func translate(align, far string) float64 {
	switch align {
	case "center":
		return -0.5
	case far:
		return -1
	}
	return 0
}

// Place converts a widget's stored position to its on-canvas placement.
// Hyprlock's y axis points up, so a positive y moves the widget toward the top.
func Place(d Data, c Size) Placement {
	halign, valign := align(d, "halign"), align(d, "valign")
	x, y := ParseVec2(d["position"])
	base := basePoint(halign, valign, c)
	return Placement{
		Anchor:    Point{X: base.X + x, Y: base.Y - y},
		Translate: Point{X: translate(halign, "right"), Y: translate(valign, "bottom")},
	}
}

// StoredPosition is the inverse of Place for the anchor point.
func StoredPosition(d Data, anchor Point, c Size) (x, y float64) {
	base := basePoint(align(d, "halign"), align(d, "valign"), c)
	return anchor.X - base.X, base.Y - anchor.Y
}

// Drag returns the position after dragging a widget that started at
// position (x0, y0) by (dx, dy) screen pixels at the given zoom.
func Drag(x0, y0, dx, dy, zoom float64) (x, y float64) {
	return jsRound(x0 + dx/zoom), jsRound(y0 - dy/zoom)
}

// jsRound rounds half up, matching what the browser editor stores.
func jsRound(f float64) float64 {
	return math.Floor(f + 0.5)
}

func align(d Data, key string) string {
	if s := str(d[key]); s != "" {
		return s
	}
	return "center"
}

// ZIndex is the widget's stacking value, defaulting by type.
func ZIndex(w Widget) float64 {
	if z, ok := number(w.Data["zindex"]); ok {
		return z
	}
	return DefaultZ(w.Type)
}

// DisplayZ lifts zindex above the canvas so background (-1) stays visible.
func DisplayZ(w Widget) int {
	return int(ZIndex(w)) + 10
}

// RenderOrder returns widgets sorted for drawing, lowest first. Ties keep
// their list order.
func RenderOrder(widgets []Widget) []Widget {
	out := slices.Clone(widgets)
	slices.SortStableFunc(out, func(a, b Widget) int {
		return cmp.Compare(ZIndex(a), ZIndex(b))
	})
	return out
}

// ClampZoom bounds an editor zoom factor.
func ClampZoom(z float64) float64 {
	return min(max(z, MinZoom), MaxZoom)
}

// ImageBox is the drawn size of an image widget.
type ImageBox struct {
	W, H   float64
	Radius float64
	// Provisional is set while the natural size is unknown and the box
	// is a size x size square.
	Provisional bool
}

// ImageLayout sizes an image so its shorter side equals the widget's size.
// natural is the decoded image size, or zero when not yet known.
func ImageLayout(d Data, natural Size) ImageBox {
	size, ok := number(d["size"])
	if !ok {
		size = 150
	}
	rounding, ok := number(d["rounding"])
	if !ok {
		rounding = -1
	}

	box := ImageBox{W: size, H: size, Provisional: true}
	if natural.W > 0 && natural.H > 0 {
		scale := size / min(natural.W, natural.H)
		box = ImageBox{W: jsRound(natural.W * scale), H: jsRound(natural.H * scale)}
	}
	switch {
	case rounding == -1:
		box.Radius = min(box.W, box.H) / 2
	case rounding != 0:
		box.Radius = rounding
	}
	return box
}

// NaturalSize decodes just the header of the image at path.
func NaturalSize(path string) (Size, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return Size{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return Size{W: float64(cfg.Width), H: float64(cfg.Height)}, nil
}

// ExpandHome resolves a leading "~/" the way hyprlock does.
func ExpandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return home + "/" + rest
		}
	}
	return path
}
