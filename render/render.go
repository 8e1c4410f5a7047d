// render/render.go
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BaseFontSize = 18.0 // Base default font size, also used for WindowConfig.DefaultFontSize
)

// Text alignment values for Element.TextAlignment.
const (
	AlignStart uint8 = iota
	AlignCenter
	AlignEnd
)

// MouseButton identifies a pointer button in a MouseEvent.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
)

// MouseEvent is delivered to global mouse subscribers on every button press,
// regardless of which element (if any) was hit.
type MouseEvent struct {
	X, Y   float32
	Button MouseButton
}

// MouseHandler receives global mouse press notifications.
type MouseHandler func(ev MouseEvent)

// Listener is an event callback attached to an element. Handlers receive
// the element the event fired on. Once-listeners are removed after their
// first invocation.
type Listener struct {
	Type    string
	Handler func(*Element)
	Once    bool
}

// Element is one node of the UI tree. The template engine constructs
// elements from parsed line descriptors; the renderer lays them out,
// draws them, and dispatches input to their listeners.
type Element struct {
	Tag     string
	ID      string
	Classes []string
	Text    string

	Parent   *Element
	Children []*Element

	attrs     []Attr
	listeners []Listener

	// Visuals, resolved by the backend's styling pass.
	BgColor          rl.Color
	FgColor          rl.Color
	BorderColor      rl.Color
	BorderWidths     [4]uint8 // Top, Right, Bottom, Left
	Padding          [4]uint8 // Top, Right, Bottom, Left
	ResolvedFontSize float32  // 0.0 means "unset", filled by styling/inheritance
	TextAlignment    uint8

	// Explicit geometry. Floating elements (menus, overlays) are positioned
	// at PosX/PosY instead of participating in the parent's flow.
	PosX, PosY float32
	ExplicitW  float32
	ExplicitH  float32
	Floating   bool

	// Layout output, written by the backend each frame.
	RenderX, RenderY float32
	RenderW, RenderH float32
	IntrinsicW       int
	IntrinsicH       int

	IsVisible     bool
	IsInteractive bool
	IsActive      bool
}

// Attr is one ordered attribute on an element.
type Attr struct {
	Name  string
	Value string
}

// NewElement returns a visible, detached element of the given tag.
func NewElement(tag string) *Element {
	return &Element{
		Tag:         tag,
		BgColor:     rl.Blank,
		FgColor:     rl.Blank,
		BorderColor: rl.Blank,
		IsVisible:   true,
	}
}

// NewRoot returns the top-level container every render target descends
// from (the document-body equivalent).
func NewRoot() *Element {
	return NewElement("body")
}

// String returns a compact identity for logging, e.g. "li#save.menu-item".
func (el *Element) String() string {
	s := el.Tag
	if el.ID != "" {
		s += "#" + el.ID
	}
	for _, c := range el.Classes {
		s += "." + c
	}
	return s
}

// AppendChild adds child as the last child of el, reparenting it.
func (el *Element) AppendChild(child *Element) {
	if child == nil {
		return
	}
	child.detach()
	child.Parent = el
	el.Children = append(el.Children, child)
}

// PrependChild adds child as the first child of el, reparenting it.
func (el *Element) PrependChild(child *Element) {
	if child == nil {
		return
	}
	child.detach()
	child.Parent = el
	el.Children = append([]*Element{child}, el.Children...)
}

// RemoveChild detaches child from el. No-op when child is not a child of el.
func (el *Element) RemoveChild(child *Element) {
	for i, c := range el.Children {
		if c == child {
			el.Children = append(el.Children[:i], el.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// RemoveAllChildren detaches every child of el.
func (el *Element) RemoveAllChildren() {
	for _, c := range el.Children {
		c.Parent = nil
	}
	el.Children = nil
}

func (el *Element) detach() {
	if el.Parent != nil {
		el.Parent.RemoveChild(el)
	}
}

// SetAttr appends or replaces the named attribute, preserving order.
func (el *Element) SetAttr(name, value string) {
	for i := range el.attrs {
		if el.attrs[i].Name == name {
			el.attrs[i].Value = value
			return
		}
	}
	el.attrs = append(el.attrs, Attr{Name: name, Value: value})
}

// Attr returns the named attribute's value and whether it is present.
func (el *Element) Attr(name string) (string, bool) {
	for _, a := range el.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns the element's attributes in insertion order.
func (el *Element) Attrs() []Attr {
	return el.attrs
}

// HasClass reports whether el carries the given class token.
func (el *Element) HasClass(class string) bool {
	for _, c := range el.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// FindByID searches el's subtree (el included) depth-first for an element
// with the given id.
func (el *Element) FindByID(id string) *Element {
	if el.ID == id {
		return el
	}
	for _, c := range el.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// AddListener attaches a listener. Elements with listeners are interactive.
func (el *Element) AddListener(l Listener) {
	if l.Handler == nil {
		return
	}
	el.listeners = append(el.listeners, l)
	el.IsInteractive = true
}

// Listeners returns the element's listeners in attachment order.
func (el *Element) Listeners() []Listener {
	return el.listeners
}

// Dispatch invokes every listener registered for eventType, front to back,
// and reports whether any fired. Once-listeners are dropped after firing.
func (el *Element) Dispatch(eventType string) bool {
	fired := false
	kept := el.listeners[:0]
	for _, l := range el.listeners {
		if l.Type != eventType {
			kept = append(kept, l)
			continue
		}
		fired = true
		l.Handler(el)
		if !l.Once {
			kept = append(kept, l)
		}
	}
	el.listeners = kept
	return fired
}

// ContainsPoint reports whether the last computed layout box contains (x, y).
func (el *Element) ContainsPoint(x, y float32) bool {
	return x >= el.RenderX && x < el.RenderX+el.RenderW &&
		y >= el.RenderY && y < el.RenderY+el.RenderH
}

type WindowConfig struct {
	Width              int
	Height             int
	Title              string
	Resizable          bool
	ScaleFactor        float32  // Global UI scale factor
	DefaultBg          rl.Color // Window clear color
	DefaultFgColor     rl.Color // Root default foreground/text color for inheritance
	DefaultBorderColor rl.Color // Default for borders if width is set but color isn't
	DefaultFontSize    float32  // Root default font size for inheritance
}

// Renderer defines the core interface that all rendering backends must implement.
type Renderer interface {
	// --- Initialization and Setup ---
	Init(config WindowConfig) error
	Root() *Element // The backend-owned top-level container ("body")
	Cleanup()
	ShouldClose() bool

	// --- Frame Lifecycle ---
	BeginFrame()                       // Prepares for drawing (e.g. BeginDrawing, ClearBackground)
	UpdateLayout()                     // Calculates all element positions and sizes
	PollEventsAndProcessInteractions() // Handles input, triggers listeners based on fresh layout
	DrawFrame()                        // Draws the UI using the computed layout
	EndFrame()                         // Finalizes frame drawing (e.g. EndDrawing)

	// --- Global input subscription ---
	// SubscribeMouse registers a handler for every mouse press and returns
	// the matching unsubscribe func. Subscriptions are scoped to their
	// holder's lifetime; there is no singleton handler to clobber.
	SubscribeMouse(h MouseHandler) (unsubscribe func())
}

// DefaultWindowConfig provides sensible default values for the application window.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:              800,
		Height:             600,
		Title:              "Menukit Application",
		Resizable:          true,
		ScaleFactor:        1.0,
		DefaultBg:          rl.NewColor(30, 30, 30, 255), // Dark Gray
		DefaultFgColor:     rl.RayWhite,                  // White text
		DefaultBorderColor: rl.Gray,                      // Neutral gray
		DefaultFontSize:    BaseFontSize,
	}
}
