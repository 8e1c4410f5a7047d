// render/raylib/raylib_renderer.go
package raylib

import (
	"fmt"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/menukit/menukit/render"
)

// RaylibRenderer draws an element tree into a raylib window and dispatches
// mouse input to element listeners and global subscribers.
type RaylibRenderer struct {
	config      render.WindowConfig
	root        *render.Element
	scaleFactor float32

	mouseSubscribers map[int]render.MouseHandler
	nextSubscriberID int

	hovered *render.Element
}

func NewRaylibRenderer() *RaylibRenderer {
	return &RaylibRenderer{
		root:             render.NewRoot(),
		scaleFactor:      1.0,
		mouseSubscribers: make(map[int]render.MouseHandler),
	}
}

func (r *RaylibRenderer) Root() *render.Element {
	return r.root
}

func (r *RaylibRenderer) Init(config render.WindowConfig) error {
	r.config = config
	r.scaleFactor = float32(math.Max(1.0, float64(config.ScaleFactor)))

	log.Printf("RaylibRenderer Init: Initializing window %dx%d. Title: '%s'. UI Scale: %.2f.",
		config.Width, config.Height, config.Title, r.scaleFactor)

	rl.InitWindow(int32(config.Width), int32(config.Height), config.Title)

	if config.Resizable {
		rl.SetWindowState(rl.FlagWindowResizable)
	} else {
		rl.ClearWindowState(rl.FlagWindowResizable)
		rl.SetWindowSize(config.Width, config.Height) // Enforce fixed size
	}

	rl.SetTargetFPS(60)

	if !rl.IsWindowReady() {
		return fmt.Errorf("RaylibRenderer Init: rl.InitWindow failed or window is not ready")
	}
	log.Println("RaylibRenderer Init: Raylib window is ready.")
	return nil
}

func (r *RaylibRenderer) Cleanup() {
	if rl.IsWindowReady() {
		log.Println("RaylibRenderer Cleanup: Closing Raylib window...")
		rl.CloseWindow()
	} else {
		log.Println("RaylibRenderer Cleanup: Raylib window was already closed or not initialized.")
	}
}

func (r *RaylibRenderer) ShouldClose() bool {
	return rl.IsWindowReady() && rl.WindowShouldClose()
}

func (r *RaylibRenderer) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(r.config.DefaultBg)
}

func (r *RaylibRenderer) EndFrame() {
	rl.EndDrawing()
}

// SubscribeMouse registers a handler invoked on every mouse press. The
// returned func removes exactly this subscription and is safe to call
// more than once.
func (r *RaylibRenderer) SubscribeMouse(h render.MouseHandler) func() {
	if h == nil {
		log.Println("WARN SubscribeMouse: attempted to subscribe a nil handler.")
		return func() {}
	}
	id := r.nextSubscriberID
	r.nextSubscriberID++
	r.mouseSubscribers[id] = h
	return func() {
		delete(r.mouseSubscribers, id)
	}
}

// UpdateLayout resolves styling and computes element positions and sizes.
// Called once per frame before event polling and drawing.
func (r *RaylibRenderer) UpdateLayout() {
	if rl.IsWindowResized() && r.config.Resizable {
		newWidth := int(rl.GetScreenWidth())
		newHeight := int(rl.GetScreenHeight())
		if newWidth != r.config.Width || newHeight != r.config.Height {
			r.config.Width = newWidth
			r.config.Height = newHeight
			log.Printf("UpdateLayout: Window resized to %dx%d. Recalculating layout.", newWidth, newHeight)
		}
	}

	r.resolveStylingRecursive(r.root, r.config.DefaultFgColor, r.config.DefaultFontSize, render.AlignStart)
	r.measureIntrinsic(r.root)
	r.layoutElement(r.root, 0, 0, float32(r.config.Width), float32(r.config.Height))
}

// PollEventsAndProcessInteractions resolves the topmost interactive element
// under the cursor against the fresh layout, updates the cursor shape, and
// dispatches click/contextmenu listeners. Global subscribers are notified
// of every press after element-level dispatch.
func (r *RaylibRenderer) PollEventsAndProcessInteractions() {
	if !rl.IsWindowReady() {
		return
	}

	mousePos := rl.GetMousePosition()
	leftPressed := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	rightPressed := rl.IsMouseButtonPressed(rl.MouseButtonRight)

	target := hitTest(r.root, mousePos.X, mousePos.Y)
	r.hovered = target

	cursor := int32(rl.MouseCursorDefault)
	if target != nil {
		cursor = rl.MouseCursorPointingHand
	}
	rl.SetMouseCursor(cursor)

	if target != nil {
		if leftPressed {
			log.Printf("INFO PollEvents: click on '%s'", target)
			target.Dispatch("click")
		}
		if rightPressed {
			log.Printf("INFO PollEvents: contextmenu on '%s'", target)
			target.Dispatch("contextmenu")
		}
	}

	if leftPressed {
		r.notifyMouseSubscribers(render.MouseEvent{X: mousePos.X, Y: mousePos.Y, Button: render.MouseLeft})
	}
	if rightPressed {
		r.notifyMouseSubscribers(render.MouseEvent{X: mousePos.X, Y: mousePos.Y, Button: render.MouseRight})
	}
}

func (r *RaylibRenderer) notifyMouseSubscribers(ev render.MouseEvent) {
	for _, h := range r.mouseSubscribers {
		h(ev)
	}
}

// hitTest returns the topmost visible interactive element containing the
// point. Children are painted over their parents and later siblings over
// earlier ones, so the tree is searched children-first in reverse order.
func hitTest(el *render.Element, x, y float32) *render.Element {
	if el == nil || !el.IsVisible {
		return nil
	}
	for i := len(el.Children) - 1; i >= 0; i-- {
		if found := hitTest(el.Children[i], x, y); found != nil {
			return found
		}
	}
	if el.IsInteractive && el.RenderW > 0 && el.RenderH > 0 && el.ContainsPoint(x, y) {
		if disabled, ok := el.Attr("disabled"); ok && disabled != "false" {
			return nil
		}
		return el
	}
	return nil
}

// DrawFrame draws the tree using the layout computed by UpdateLayout.
func (r *RaylibRenderer) DrawFrame() {
	for _, child := range r.root.Children {
		r.renderElementRecursive(child)
	}
}

func (r *RaylibRenderer) renderElementRecursive(el *render.Element) {
	if el == nil || !el.IsVisible {
		return
	}

	renderXf, renderYf, renderWf, renderHf := el.RenderX, el.RenderY, el.RenderW, el.RenderH
	if renderWf <= 0 || renderHf <= 0 {
		for _, child := range el.Children {
			r.renderElementRecursive(child)
		}
		return
	}

	renderX, renderY := int32(renderXf), int32(renderYf)
	renderW, renderH := int32(renderWf), int32(renderHf)

	bgColor := el.BgColor
	if el == r.hovered && bgColor.A > 0 {
		bgColor = hoverShade(bgColor)
	}
	if bgColor.A > 0 {
		rl.DrawRectangle(renderX, renderY, renderW, renderH, bgColor)
	}

	scale := r.scaleFactor
	topBorder := scaledI32(el.BorderWidths[0], scale)
	rightBorder := scaledI32(el.BorderWidths[1], scale)
	bottomBorder := scaledI32(el.BorderWidths[2], scale)
	leftBorder := scaledI32(el.BorderWidths[3], scale)
	clampedTop, clampedBottom := clampOpposingBorders(int(topBorder), int(bottomBorder), int(renderH))
	clampedLeft, clampedRight := clampOpposingBorders(int(leftBorder), int(rightBorder), int(renderW))
	drawBorders(int(renderX), int(renderY), int(renderW), int(renderH),
		clampedTop, clampedRight, clampedBottom, clampedLeft, el.BorderColor)

	paddingTop := scaledI32(el.Padding[0], scale)
	paddingRight := scaledI32(el.Padding[1], scale)
	paddingBottom := scaledI32(el.Padding[2], scale)
	paddingLeft := scaledI32(el.Padding[3], scale)

	contentX := int32(renderXf + float32(clampedLeft) + float32(paddingLeft))
	contentY := int32(renderYf + float32(clampedTop) + float32(paddingTop))
	contentWidth := maxI32(0, int32(renderWf-float32(clampedLeft+clampedRight)-float32(paddingLeft+paddingRight)))
	contentHeight := maxI32(0, int32(renderHf-float32(clampedTop+clampedBottom)-float32(paddingTop+paddingBottom)))

	if contentWidth > 0 && contentHeight > 0 {
		rl.BeginScissorMode(contentX, contentY, contentWidth, contentHeight)
		scaledFontSize := maxF(1.0, el.ResolvedFontSize*scale)
		r.drawContent(el, int(contentX), int(contentY), int(contentWidth), int(contentHeight), scaledFontSize)
		rl.EndScissorMode()
	}

	for _, child := range el.Children {
		r.renderElementRecursive(child)
	}
}

func (r *RaylibRenderer) drawContent(el *render.Element, cx, cy, cw, ch int, scaledFontSize float32) {
	if el.Text == "" {
		return
	}
	fontSize := int32(scaledFontSize)
	if fontSize < 1 {
		fontSize = 1
	}

	textWidthMeasured := rl.MeasureText(el.Text, fontSize)
	textDrawX := int32(cx)
	textDrawY := int32(cy + (ch-int(fontSize))/2)

	switch el.TextAlignment {
	case render.AlignCenter:
		textDrawX = int32(cx + (cw-int(textWidthMeasured))/2)
	case render.AlignEnd:
		textDrawX = int32(cx + cw - int(textWidthMeasured))
	}

	fgColor := el.FgColor
	if disabled, ok := el.Attr("disabled"); ok && disabled != "false" {
		fgColor = rl.Fade(fgColor, 0.4)
	}
	rl.DrawText(el.Text, textDrawX, textDrawY, fontSize, fgColor)
}

func drawBorders(x, y, w, h, top, right, bottom, left int, color rl.Color) {
	if color.A == 0 {
		return
	}
	if top > 0 {
		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(top), color)
	}
	if bottom > 0 {
		rl.DrawRectangle(int32(x), int32(y+h-bottom), int32(w), int32(bottom), color)
	}
	sideY := y + top
	sideH := h - top - bottom
	if sideH > 0 {
		if left > 0 {
			rl.DrawRectangle(int32(x), int32(sideY), int32(left), int32(sideH), color)
		}
		if right > 0 {
			rl.DrawRectangle(int32(x+w-right), int32(sideY), int32(right), int32(sideH), color)
		}
	}
}

func clampOpposingBorders(borderA, borderB, totalSize int) (int, int) {
	if totalSize <= 0 {
		return 0, 0
	}
	if borderA < 0 {
		borderA = 0
	}
	if borderB < 0 {
		borderB = 0
	}
	if borderA+borderB > totalSize {
		sum := float32(borderA + borderB)
		borderA = int(float32(borderA) / sum * float32(totalSize))
		borderB = totalSize - borderA
	}
	return borderA, borderB
}

func scaledI32(v uint8, scale float32) int32 {
	return int32(float32(v) * scale)
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
