// render/raylib/layout.go
package raylib

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/menukit/menukit/render"
)

// measureIntrinsic computes IntrinsicW/IntrinsicH for el's subtree,
// bottom-up. An element's intrinsic size is its text extent plus the
// vertical flow of its non-floating children, padding and borders
// included. Explicit width/height override the computed value.
func (r *RaylibRenderer) measureIntrinsic(el *render.Element) {
	for _, child := range el.Children {
		r.measureIntrinsic(child)
	}

	scale := r.scaleFactor
	textW, textH := 0, 0
	if el.Text != "" {
		fontSize := int32(maxF(1.0, el.ResolvedFontSize*scale))
		textW = int(rl.MeasureText(el.Text, fontSize))
		textH = int(fontSize)
	}

	flowW, flowH := 0, 0
	for _, child := range el.Children {
		if !child.IsVisible || child.Floating {
			continue
		}
		if child.IntrinsicW > flowW {
			flowW = child.IntrinsicW
		}
		flowH += child.IntrinsicH
	}

	w := textW
	if flowW > w {
		w = flowW
	}
	h := textH + flowH

	edgeW, edgeH := r.edgeExtents(el)
	el.IntrinsicW = w + edgeW
	el.IntrinsicH = h + edgeH

	if el.ExplicitW > 0 {
		el.IntrinsicW = int(el.ExplicitW * scale)
	}
	if el.ExplicitH > 0 {
		el.IntrinsicH = int(el.ExplicitH * scale)
	}
}

// edgeExtents returns the horizontal and vertical space consumed by el's
// scaled borders and padding.
func (r *RaylibRenderer) edgeExtents(el *render.Element) (int, int) {
	scale := r.scaleFactor
	horiz := int(scaledI32(el.BorderWidths[1], scale) + scaledI32(el.BorderWidths[3], scale) +
		scaledI32(el.Padding[1], scale) + scaledI32(el.Padding[3], scale))
	vert := int(scaledI32(el.BorderWidths[0], scale) + scaledI32(el.BorderWidths[2], scale) +
		scaledI32(el.Padding[0], scale) + scaledI32(el.Padding[2], scale))
	return horiz, vert
}

// layoutElement assigns el's render box and positions its children:
// non-floating children stack vertically inside the content area at their
// intrinsic height; floating children (menus, overlays) are placed at
// their own PosX/PosY with intrinsic or explicit size, clamped so they
// stay inside the window.
func (r *RaylibRenderer) layoutElement(el *render.Element, x, y, w, h float32) {
	if !el.IsVisible {
		el.RenderW, el.RenderH = 0, 0
		for _, child := range el.Children {
			r.layoutElement(child, x, y, 0, 0)
		}
		return
	}

	el.RenderX, el.RenderY = x, y
	el.RenderW, el.RenderH = w, h

	scale := r.scaleFactor
	contentX := x + float32(scaledI32(el.BorderWidths[3], scale)) + float32(scaledI32(el.Padding[3], scale))
	contentY := y + float32(scaledI32(el.BorderWidths[0], scale)) + float32(scaledI32(el.Padding[0], scale))
	edgeW, _ := r.edgeExtents(el)
	contentW := maxF(0, w-float32(edgeW))

	// Text occupies the top of the content area; flow children follow.
	cursorY := contentY
	if el.Text != "" {
		cursorY += maxF(1.0, el.ResolvedFontSize*scale)
	}

	for _, child := range el.Children {
		if child.Floating {
			r.layoutFloating(child)
			continue
		}
		if !child.IsVisible {
			r.layoutElement(child, contentX, cursorY, 0, 0)
			continue
		}
		childW := contentW
		if child.ExplicitW > 0 {
			childW = child.ExplicitW * scale
		}
		r.layoutElement(child, contentX, cursorY, childW, float32(child.IntrinsicH))
		cursorY += float32(child.IntrinsicH)
	}
}

// layoutFloating places an absolutely positioned element at its PosX/PosY,
// shifting it back inside the window when it would overflow an edge.
func (r *RaylibRenderer) layoutFloating(el *render.Element) {
	w := float32(el.IntrinsicW)
	h := float32(el.IntrinsicH)
	if el.ExplicitW > 0 {
		w = el.ExplicitW * r.scaleFactor
	}
	if el.ExplicitH > 0 {
		h = el.ExplicitH * r.scaleFactor
	}

	x := el.PosX
	y := el.PosY
	winW := float32(r.config.Width)
	winH := float32(r.config.Height)
	if x+w > winW {
		x = maxF(0, winW-w)
	}
	if y+h > winH {
		y = maxF(0, winH-h)
	}

	r.layoutElement(el, x, y, w, h)
}
