package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/revati108/arch-board/internal/validation"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// FormatLabel turns an option name such as "col.active_border" into
// "Col Active Border".
func FormatLabel(name string) string {
	r := strings.NewReplacer("_", " ", ".", " ")
	return titleCaser.String(r.Replace(name))
}

// Truthy interprets the loose boolean spellings found in config files.
func Truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case int:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}

// Vec2 is a two-component option value written as "x y".
type Vec2 struct {
	X, Y float64
}

// ParseVec2 reads "x y". Missing or malformed components are zero.
func ParseVec2(v any) Vec2 {
	s := strings.TrimSpace(fmt.Sprint(v))
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	var out Vec2
	if len(fields) > 0 {
		out.X, _ = strconv.ParseFloat(fields[0], 64)
	}
	if len(fields) > 1 {
		out.Y, _ = strconv.ParseFloat(fields[1], 64)
	}
	return out
}

func (v Vec2) String() string {
	return strconv.FormatFloat(v.X, 'f', -1, 64) + " " + strconv.FormatFloat(v.Y, 'f', -1, 64)
}

// Coerce converts raw editor input into the value type the option declares.
// Unparsable numbers fall back to the option default.
func (o Option) Coerce(input string) any {
	switch o.Type {
	case TypeBool:
		return Truthy(input)
	case TypeInt:
		if n, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
			return n
		}
		return o.Default
	case TypeFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(input), 64); err == nil {
			return f
		}
		return o.Default
	case TypeVec2:
		return ParseVec2(input).String()
	default:
		return input
	}
}

// CheckRange rejects a numeric value outside the option's min and max.
// Non-numeric values and unbounded options always pass.
func (o Option) CheckRange(v any) *validation.ValidationError {
	if o.Min == nil && o.Max == nil {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	if o.Min != nil {
		lo = *o.Min
	}
	if o.Max != nil {
		hi = *o.Max
	}
	return validation.ValidateRange(o.Name, f, lo, hi)
}
