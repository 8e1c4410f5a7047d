// render/raylib/styling.go
package raylib

import (
	"log"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/menukit/menukit/render"
)

// Recognized styling attributes. Anything else on an element is left for
// application code to interpret.
const (
	attrBackground  = "background"
	attrColor       = "color"
	attrBorderColor = "border-color"
	attrBorder      = "border"
	attrPadding     = "padding"
	attrWidth       = "width"
	attrHeight      = "height"
	attrFontSize    = "font-size"
	attrAlign       = "align"
	attrHidden      = "hidden"
)

var namedColors = map[string]rl.Color{
	"transparent": rl.Blank,
	"white":       rl.RayWhite,
	"black":       rl.Black,
	"gray":        rl.Gray,
	"darkgray":    rl.DarkGray,
	"red":         rl.Red,
	"green":       rl.Green,
	"blue":        rl.Blue,
	"yellow":      rl.Yellow,
	"orange":      rl.Orange,
}

// resolveStylingRecursive applies el's styling attributes to its visual
// fields and propagates inheritable properties (foreground color, font
// size, text alignment) down the tree, mirroring the resolution order of
// style-then-inheritance.
func (r *RaylibRenderer) resolveStylingRecursive(el *render.Element, inheritedFg rl.Color, inheritedFontSize float32, inheritedAlign uint8) {
	r.applyStyleAttributes(el)
	r.applyContextualDefaults(el)

	if el.FgColor.A == 0 {
		el.FgColor = inheritedFg
	}
	if el.ResolvedFontSize == 0.0 {
		el.ResolvedFontSize = inheritedFontSize
	}

	for _, child := range el.Children {
		r.resolveStylingRecursive(child, el.FgColor, el.ResolvedFontSize, el.TextAlignment)
	}
}

func (r *RaylibRenderer) applyStyleAttributes(el *render.Element) {
	for _, attr := range el.Attrs() {
		switch attr.Name {
		case attrBackground:
			if c, ok := parseColor(attr.Value); ok {
				el.BgColor = c
			} else {
				log.Printf("WARN applyStyleAttributes: element '%s' has unparseable background %q", el, attr.Value)
			}
		case attrColor:
			if c, ok := parseColor(attr.Value); ok {
				el.FgColor = c
			} else {
				log.Printf("WARN applyStyleAttributes: element '%s' has unparseable color %q", el, attr.Value)
			}
		case attrBorderColor:
			if c, ok := parseColor(attr.Value); ok {
				el.BorderColor = c
			}
		case attrBorder:
			if edges, ok := parseEdges(attr.Value); ok {
				el.BorderWidths = edges
			}
		case attrPadding:
			if edges, ok := parseEdges(attr.Value); ok {
				el.Padding = edges
			}
		case attrWidth:
			if v, err := strconv.ParseFloat(attr.Value, 32); err == nil && v > 0 {
				el.ExplicitW = float32(v)
			}
		case attrHeight:
			if v, err := strconv.ParseFloat(attr.Value, 32); err == nil && v > 0 {
				el.ExplicitH = float32(v)
			}
		case attrFontSize:
			if v, err := strconv.ParseFloat(attr.Value, 32); err == nil && v > 0 {
				el.ResolvedFontSize = float32(v)
			}
		case attrAlign:
			switch strings.ToLower(attr.Value) {
			case "center":
				el.TextAlignment = render.AlignCenter
			case "end", "right":
				el.TextAlignment = render.AlignEnd
			case "start", "left":
				el.TextAlignment = render.AlignStart
			default:
				log.Printf("WARN applyStyleAttributes: element '%s' has unknown align %q", el, attr.Value)
			}
		case attrHidden:
			el.IsVisible = (attr.Value == "false")
		}
	}
}

// applyContextualDefaults mirrors the border conventions: a border color
// with all widths zero implies a 1px border, and nonzero widths without a
// color take the window default.
func (r *RaylibRenderer) applyContextualDefaults(el *render.Element) {
	hasBorderColor := el.BorderColor.A > 0
	allBorderWidthsZero := true
	for _, bw := range el.BorderWidths {
		if bw > 0 {
			allBorderWidthsZero = false
			break
		}
	}
	if hasBorderColor && allBorderWidthsZero {
		el.BorderWidths = [4]uint8{1, 1, 1, 1}
	} else if !allBorderWidthsZero && !hasBorderColor {
		el.BorderColor = r.config.DefaultBorderColor
	}
}

// parseColor accepts "#rgb"/"#rrggbb" hex values (parsed with go-colorful)
// and a small set of named colors.
func parseColor(value string) (rl.Color, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return rl.Blank, false
	}
	if c, ok := namedColors[value]; ok {
		return c, true
	}
	if strings.HasPrefix(value, "#") {
		// colorful.Hex handles #rgb and #rrggbb; peel off an alpha byte first.
		alpha := uint8(255)
		if len(value) == 9 {
			if a, err := strconv.ParseUint(value[7:9], 16, 8); err == nil {
				alpha = uint8(a)
				value = value[:7]
			}
		}
		c, err := colorful.Hex(value)
		if err != nil {
			return rl.Blank, false
		}
		cr, cg, cb := c.RGB255()
		return rl.NewColor(cr, cg, cb, alpha), true
	}
	return rl.Blank, false
}

// hoverShade lightens a background for hover feedback, working in HSL so
// dark and light themes both shift perceptibly.
func hoverShade(c rl.Color) rl.Color {
	base := colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
	h, s, l := base.Hsl()
	l += 0.12
	if l > 1.0 {
		l = 1.0
	}
	shaded := colorful.Hsl(h, s, l)
	sr, sg, sb := shaded.Clamped().RGB255()
	return rl.NewColor(sr, sg, sb, c.A)
}

// parseEdges parses 1, 2, or 4 space-separated integers into
// Top/Right/Bottom/Left edge widths, CSS-shorthand style.
func parseEdges(value string) ([4]uint8, bool) {
	fields := strings.Fields(value)
	vals := make([]uint8, 0, 4)
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return [4]uint8{}, false
		}
		vals = append(vals, uint8(n))
	}
	switch len(vals) {
	case 1:
		return [4]uint8{vals[0], vals[0], vals[0], vals[0]}, true
	case 2:
		return [4]uint8{vals[0], vals[1], vals[0], vals[1]}, true
	case 4:
		return [4]uint8{vals[0], vals[1], vals[2], vals[3]}, true
	default:
		return [4]uint8{}, false
	}
}
