// menu/menu.go
package menu

import (
	"fmt"
	"log"
	"strings"

	"github.com/menukit/menukit/render"
	"github.com/menukit/menukit/template"
)

// Item describes one entry of a context menu. Items with Children open a
// nested submenu instead of firing OnClick.
type Item struct {
	ID       string // optional; generated when empty
	Label    string
	Disabled bool
	OnClick  func() // leaf items: invoked on click, after the menu closes
	OnOpen   func() // parent items: invoked when their submenu opens
	Children []Item
}

// Menu is a right-click context menu. It composes a template from its
// items, binds their callbacks into the engine's event registry, and
// renders into the attached renderer's root as a floating element.
//
// Attach subscribes the menu to the renderer's mouse events; Detach
// releases exactly that subscription (the menu never clobbers another
// handler).
type Menu struct {
	items    []Item
	registry *template.Registry
	builder  *template.Builder

	container   *render.Element
	unsubscribe func()
}

func New(items []Item) *Menu {
	registry := template.NewRegistry()
	return &Menu{
		items:    items,
		registry: registry,
		builder:  template.NewBuilder(registry),
	}
}

// SetItems replaces the menu's items. Takes effect on the next open.
func (m *Menu) SetItems(items []Item) {
	m.items = items
}

// Attach wires the menu to a renderer: a right press opens the menu at
// the cursor, a left press closes it (after any item listener has fired).
func (m *Menu) Attach(r render.Renderer) {
	m.Detach()
	m.builder.SetParent(r.Root())
	m.unsubscribe = r.SubscribeMouse(func(ev render.MouseEvent) {
		switch ev.Button {
		case render.MouseRight:
			if err := m.ShowAt(ev.X, ev.Y); err != nil {
				log.Printf("ERROR Menu: failed to open at (%.0f, %.0f): %v", ev.X, ev.Y, err)
			}
		case render.MouseLeft:
			// Leaf item listeners close the menu themselves; a press
			// anywhere outside the menu (submenus included) dismisses it.
			if m.IsOpen() && !m.containsPoint(ev.X, ev.Y) {
				m.Close()
			}
		}
	})
}

// Detach unsubscribes from the renderer and closes the menu. Idempotent.
func (m *Menu) Detach() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.Close()
}

// IsOpen reports whether the menu is currently rendered.
func (m *Menu) IsOpen() bool {
	return m.container != nil
}

// Container returns the menu's root element while open, or nil.
func (m *Menu) Container() *render.Element {
	return m.container
}

// ShowAt (re)builds the menu template, binds item callbacks, renders the
// tree, and floats it at the given screen position.
func (m *Menu) ShowAt(x, y float32) error {
	m.Close()

	tmpl := m.composeTemplate()
	parent := m.builder.Parent()
	before := len(parent.Children)
	if err := m.builder.Render(tmpl); err != nil {
		return fmt.Errorf("menu: render failed: %w", err)
	}
	if len(parent.Children) == before {
		return fmt.Errorf("menu: template produced no elements")
	}

	m.container = parent.Children[len(parent.Children)-1]
	m.container.Floating = true
	m.container.PosX = x
	m.container.PosY = y
	return nil
}

// containsPoint reports whether (x, y) lies inside any visible box of the
// open menu, floated submenus included.
func (m *Menu) containsPoint(x, y float32) bool {
	return m.container != nil && subtreeContains(m.container, x, y)
}

func subtreeContains(el *render.Element, x, y float32) bool {
	if !el.IsVisible {
		return false
	}
	if el.ContainsPoint(x, y) {
		return true
	}
	for _, child := range el.Children {
		if subtreeContains(child, x, y) {
			return true
		}
	}
	return false
}

// Close removes the menu from its parent. Idempotent.
func (m *Menu) Close() {
	if m.container == nil {
		return
	}
	if m.container.Parent != nil {
		m.container.Parent.RemoveChild(m.container)
	}
	m.container = nil
}

// composeTemplate builds the full menu template and registers one click
// binding per item. Submenu fragments are built at relative depth zero
// and embedded with template.Indent.
func (m *Menu) composeTemplate() string {
	nextID := 0
	body := m.composeItems(m.items, &nextID)
	head := "ul.context-menu[background=#2d2d30;border=1;border-color=#454545;padding=4 0;width=220]"
	if body == "" {
		return head
	}
	return head + "\n" + template.Indent(body, 1)
}

func (m *Menu) composeItems(items []Item, nextID *int) string {
	var lines []string
	for i := range items {
		item := items[i]
		id := item.ID
		if id == "" {
			id = fmt.Sprintf("mi-%d", *nextID)
		}
		*nextID++

		classes := ".menu-item"
		attrs := "[height=26;padding=4 10;font-size=16"
		if item.Disabled {
			attrs += ";disabled"
		}
		attrs += "]"

		if len(item.Children) > 0 {
			classes += ".has-children"
			name := id + "-open"
			m.bindOpen(name, id, item.OnOpen)
			lines = append(lines, "li"+classes+"#"+id+"("+escapeContent(item.Label)+" ▸)"+attrs+"@"+name)

			submenu := "ul.submenu[hidden;background=#2d2d30;border=1;border-color=#454545;width=200]"
			if childBody := m.composeItems(item.Children, nextID); childBody != "" {
				submenu += "\n" + template.Indent(childBody, 1)
			}
			lines = append(lines, template.Indent(submenu, 1))
			continue
		}

		if !item.Disabled {
			m.bindClick(id, item.OnClick)
			lines = append(lines, "li"+classes+"#"+id+"("+escapeContent(item.Label)+")"+attrs+"@"+id)
		} else {
			lines = append(lines, "li"+classes+"#"+id+"("+escapeContent(item.Label)+")"+attrs)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Menu) bindClick(name string, onClick func()) {
	err := m.registry.Bind(template.EventBinding{
		Name: name,
		Type: "click",
		Callback: func(*render.Element) {
			m.Close()
			if onClick != nil {
				onClick()
			}
		},
	})
	if err != nil {
		log.Printf("WARN Menu: could not bind click for %q: %v", name, err)
	}
}

// bindOpen toggles the item's submenu on click. The submenu is the li's
// nested ul; visibility is driven through its "hidden" attribute so the
// styling pass and programmatic toggles agree.
func (m *Menu) bindOpen(name, itemID string, onOpen func()) {
	err := m.registry.Bind(template.EventBinding{
		Name: name,
		Type: "click",
		Callback: func(el *render.Element) {
			var submenu *render.Element
			for _, child := range el.Children {
				if child.Tag == "ul" {
					submenu = child
					break
				}
			}
			if submenu == nil {
				log.Printf("WARN Menu: item %q has no submenu to open", itemID)
				return
			}
			if hidden, _ := submenu.Attr("hidden"); hidden == "false" {
				submenu.SetAttr("hidden", "true")
				submenu.IsVisible = false
				return
			}
			submenu.SetAttr("hidden", "false")
			submenu.IsVisible = true
			// Float the submenu beside its item, using the item's box
			// from the current layout pass.
			submenu.Floating = true
			submenu.PosX = el.RenderX + el.RenderW
			submenu.PosY = el.RenderY
			if onOpen != nil {
				onOpen()
			}
		},
	})
	if err != nil {
		log.Printf("WARN Menu: could not bind open for %q: %v", name, err)
	}
}

// escapeContent protects parenthesized content: the wire format has no
// escaping beyond HTML-entity decoding, so parens in labels are encoded
// as numeric entities and restored by the parser's entity decode.
func escapeContent(s string) string {
	s = strings.ReplaceAll(s, "(", "&#40;")
	s = strings.ReplaceAll(s, ")", "&#41;")
	return s
}
